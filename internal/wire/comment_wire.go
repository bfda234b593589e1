package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/comments", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		// {id} is the movie id here
		r.Get("/{id}/comments", commentHandler.GetMovieComments)

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", commentHandler.CreateComment)
			r.Post("/{id}/replies", commentHandler.CreateReply)
			r.Delete("/{id}", commentHandler.DeleteComment)
			r.Delete("/replies/{id}", commentHandler.DeleteReply)
		})
	})
}
