package middleware

import (
	"net/http"

	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/internal/telemetry/metrics"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const UnauthorizedMessage = "You're not authorized to use this website"

type userResolver interface {
	Resolve(r *http.Request) (auth.User, error)
}

// AuthCheck lets through only requests of the allow-listed user, whose
// identity is then available to handlers via auth.FromContext.
func AuthCheck(resolver userResolver, metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			user, err := resolver.Resolve(r)
			if err != nil {
				log.Warnf("[auth middleware] unauthorized => %s from %s", r.URL.Path, pkg.ReadUserIP(r))
				if metricsManager != nil {
					metricsManager.CounterUnauthorized.Inc()
				}
				span.SetStatus(codes.Error, "unauthorized")
				pkg.WriteResponse(w, pkg.ContentType.Text, UnauthorizedMessage, http.StatusUnauthorized)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.NewContext(ctx, user)))
		})
	}
}
