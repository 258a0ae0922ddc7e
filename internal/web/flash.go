package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const flashCookieName = "eridanus_flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func SetFlash(w http.ResponseWriter, kind, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		clearFlash(w)
		return
	}

	serialized, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(serialized),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

// PopFlash reads the pending flash, if any, and clears its cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return nil
	}
	clearFlash(w)

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil {
		return nil
	}

	var flash Flash
	if err := json.Unmarshal(decoded, &flash); err != nil || flash.Message == "" {
		return nil
	}
	return &flash
}

func clearFlash(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Redirect stores the flash and sends the browser to location with a 302.
func Redirect(w http.ResponseWriter, r *http.Request, location, flashKind, message string) {
	SetFlash(w, flashKind, message)
	http.Redirect(w, r, location, http.StatusFound)
}
