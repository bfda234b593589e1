package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/ratings/{movie_id}", func(r chi.Router) {
		r.Get("/rate", ratingHandler.GetMovieRatings)
		r.Get("/stats", ratingHandler.GetMovieRatingStats)

		r.With(auth).Post("/", ratingHandler.RateMovie)
	})
}
