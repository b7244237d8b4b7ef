package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// ServiceTokenMiddleware guards the account-backend routes (registration,
// team invitation, subscription changes), which are invoked with a shared
// bearer token rather than a user session.
func ServiceTokenMiddleware(serviceToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing service token", nil,
				)
				return
			}
			presented := strings.TrimPrefix(h, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(serviceToken)) != 1 {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid service token", nil,
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
