package middleware

import (
	"net/http"
	"time"

	"aeroportal/flightops/internal/auth"
	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/constants"
)

// RequireRole rejects callers whose role does not cover required.
func RequireRole(required constants.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())
			if claims == nil {
				common.RespondError(w, time.Now(), nil, "Unauthorized: missing claims", http.StatusUnauthorized)
				return
			}

			if !claims.HasRole(required) {
				common.RespondError(w, time.Now(), nil, "Forbidden. Need "+required.String()+" role", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func IsOperatorMiddleware() func(http.Handler) http.Handler {
	return RequireRole(constants.RoleOperator)
}

func IsAdminMiddleware() func(http.Handler) http.Handler {
	return RequireRole(constants.RoleAdmin)
}
