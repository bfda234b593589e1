package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/movies", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", movieHandler.GetMovies)         // GET /movies?page=1&per_page=10
		r.Get("/{id}", movieHandler.GetMovieByID) // GET /movies/{id}

		// ==================== PROTECTED ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/", movieHandler.CreateMovie)
			r.Put("/{id}", movieHandler.UpdateMovie)
			r.Delete("/{id}", movieHandler.DeleteMovie)
		})
	})
}
