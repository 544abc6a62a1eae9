package middleware

import (
	"net/http"
	"strings"
	"time"

	"aeroportal/flightops/internal/auth"
	"aeroportal/flightops/internal/common"
)

// AuthMiddleware verifies the bearer token and stores its claims on the request.
// With a nil signer every request runs with LocalClaims.
func AuthMiddleware(signer *common.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			var claims auth.UserClaims

			switch {
			case signer == nil:
				claims = auth.LocalClaims{}

			case strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "):
				raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
				token, err := signer.Validate(raw)
				if err != nil {
					common.RespondError(w, initTime, nil, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = &auth.JWTClaims{
					Subject:   token.Subject,
					RoleValue: token.Role,
					TokenID:   token.TokenID,
				}

			default:
				common.RespondError(w, initTime, nil, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
