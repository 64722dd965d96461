package middleware

import (
	"net/http"
	"strings"

	"stay-booking/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate requires a valid access token, read from the Authorization
// header ("Bearer <jwt>") or else from the access cookie, and puts the user's
// id and email into the request context.
func Authenticate(tokens *utils.TokenManager, cookies utils.CookieConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			if raw == "" {
				raw = utils.CookieValue(r, cookies.AccessName)
			}
			if raw == "" {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided")
				return
			}

			claims, err := tokens.Parse(raw, utils.AccessToken)
			if err != nil {
				logger.Warn("Rejected access token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Token is invalid or expired")
				return
			}

			userID, _ := claims.UserID()
			ctx := utils.SetUserContext(r.Context(), userID, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken returns the header token, "" when no header is set, and false
// when the header is present but malformed.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", true
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
