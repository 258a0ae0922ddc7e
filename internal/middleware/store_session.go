package middleware

import (
	"net/http"

	"github.com/2beens/eridanus/internal/db"

	log "github.com/sirupsen/logrus"
)

// StoreSession binds a store session to each request and releases it once the
// handler returns, panics included.
func StoreSession(sessions db.Sessions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, release, err := sessions.Begin(r.Context())
			if err != nil {
				log.Errorf("begin store session for %s: %s", r.URL.Path, err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			defer release()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
