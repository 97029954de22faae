package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/stashspot/backend/internal/platform/logger"
	userdomain "github.com/stashspot/backend/internal/user/domain"
	userusecase "github.com/stashspot/backend/internal/user/usecase"
)

// JWTAuth validates the Bearer token and attaches the resulting Principal to
// the request context. Requests without a valid token get 401.
func JWTAuth(jwtSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, "authorization token is not provided", http.StatusUnauthorized)
				return
			}
			tokenString := parts[1]

			claims := &userusecase.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("Token validation failed", zap.String("path", r.URL.Path), zap.Error(err))
				http.Error(w, "token is invalid", http.StatusUnauthorized)
				return
			}
			if claims.UserID == "" {
				http.Error(w, "user id not found in token claims", http.StatusUnauthorized)
				return
			}

			principal := userdomain.Principal{
				ID:      claims.UserID,
				IsHost:  claims.IsHost,
				IsAdmin: claims.IsAdmin,
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}
