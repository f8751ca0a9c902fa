package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

// SchedulerSecret guards the sweep endpoints with a shared bearer secret
// from the environment. An unset secret disables the endpoints entirely.
func SchedulerSecret(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Warn("Scheduler endpoint hit but no secret configured",
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Scheduler disabled")
				return
			}

			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logger.Warn("Scheduler endpoint rejected bad secret",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid scheduler token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
