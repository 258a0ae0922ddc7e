package auth

import (
	"errors"
	"net/http"
	"strings"
)

const (
	// IAPEmailHeader carries the email verified by the identity aware proxy.
	IAPEmailHeader = "X-Goog-Authenticated-User-Email"
	iapEmailPrefix = "accounts.google.com:"
)

var ErrUnauthorized = errors.New("user not authorized")

// Gate admits only the allow-listed user. The proxy in front of the service
// does the actual authentication, the gate only trusts its header.
type Gate struct {
	allowedEmail string
	devEmail     string
	development  bool
}

func NewGate(allowedEmail, devEmail string, development bool) *Gate {
	return &Gate{
		allowedEmail: strings.TrimSpace(allowedEmail),
		devEmail:     strings.TrimSpace(devEmail),
		development:  development,
	}
}

// Resolve returns the user behind the request, or ErrUnauthorized.
func (g *Gate) Resolve(r *http.Request) (User, error) {
	email := strings.TrimSpace(r.Header.Get(IAPEmailHeader))
	email = strings.TrimPrefix(email, iapEmailPrefix)
	if email == "" && g.development {
		email = g.devEmail
	}

	if email == "" || g.allowedEmail == "" {
		return User{}, ErrUnauthorized
	}
	if !strings.EqualFold(email, g.allowedEmail) {
		return User{}, ErrUnauthorized
	}

	// records are owned by the configured spelling, whatever case the proxy sends
	return NewUser(g.allowedEmail), nil
}
