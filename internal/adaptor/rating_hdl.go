package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// RateMovie handles POST /ratings/{movie_id}
func (h *RatingHandler) RateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	movieID, ok := pathID(w, chi.URLParam(r, "movie_id"), "movie_id")
	if !ok {
		return
	}

	var req request.RatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.service.RateMovie(r.Context(), movieID, userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "rate movie")
		return
	}

	utils.ResponseSuccess(w, rating)
}

// GetMovieRatings handles GET /ratings/{movie_id}/rate
func (h *RatingHandler) GetMovieRatings(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, chi.URLParam(r, "movie_id"), "movie_id")
	if !ok {
		return
	}

	ratings, err := h.service.GetMovieRatings(r.Context(), movieID)
	if err != nil {
		writeServiceError(w, h.log, err, "get ratings")
		return
	}

	utils.ResponseSuccess(w, ratings)
}

// GetMovieRatingStats handles GET /ratings/{movie_id}/stats
func (h *RatingHandler) GetMovieRatingStats(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, chi.URLParam(r, "movie_id"), "movie_id")
	if !ok {
		return
	}

	stats, err := h.service.GetMovieRatingStats(r.Context(), movieID)
	if err != nil {
		writeServiceError(w, h.log, err, "get rating stats")
		return
	}

	utils.ResponseSuccess(w, stats)
}
