package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	auth func(http.Handler) http.Handler,
) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(auth).Get("/users/me", userHandler.GetProfile)
}
