package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Credential endpoints share one per-IP bucket
	limiter := middleware.NewIPRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, log))

		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})
}
