package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*entity.User, error)
}

// Auth middleware validates the bearer JWT and attaches the acting user id
func Auth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Not authenticated")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Not authenticated")
				return
			}

			user, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, utils.ErrUnauthorized) {
					utils.ResponseUnauthorized(w, utils.ErrInvalidToken.Detail)
					return
				}
				logger.Error("Failed to authenticate request",
					zap.Error(err),
					zap.String("path", r.URL.Path),
					zap.String("correlation_id", utils.GetCorrelationID(r.Context())),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
