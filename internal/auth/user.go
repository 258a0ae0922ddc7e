package auth

import (
	"context"
	"strings"
)

type User struct {
	Email    string
	Nickname string
}

// NicknameFromEmail returns the local part of the email address.
func NicknameFromEmail(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

func NewUser(email string) User {
	return User{
		Email:    email,
		Nickname: NicknameFromEmail(email),
	}
}

type userCtxKey struct{}

func NewContext(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func FromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(User)
	return user, ok
}

// NicknameFrom returns the nickname of the authenticated user, or "" outside an authenticated request.
func NicknameFrom(ctx context.Context) string {
	user, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return user.Nickname
}
