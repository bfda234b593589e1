package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Movie   *MovieHandler
	Rating  *RatingHandler
	Comment *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Rating:  NewRatingHandler(service.Rating, log),
		Comment: NewCommentHandler(service.Comment, log),
	}
}

// decodeJSON reports a malformed body as a 422 and returns false
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseUnprocessable(w, "Invalid request body", nil)
		return false
	}
	return true
}

// pathID parses an integer URL param, answering 422 when it is not a number
func pathID(w http.ResponseWriter, raw, name string) (int64, bool) {
	id, err := utils.ParseID(raw, name)
	if err != nil {
		var verr *utils.ValidationError
		errors.As(err, &verr)
		utils.ResponseUnprocessable(w, "Validation failed", verr.Fields)
		return 0, false
	}
	return id, true
}

// actingUser is set by the auth middleware on every bearer-gated route
func actingUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, utils.ErrInvalidToken.Detail)
		return 0, false
	}
	return userID, true
}

// writeServiceError maps the error taxonomy onto status codes
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		log.Debug(operation+" validation failed", zap.Error(err))
		utils.ResponseUnprocessable(w, "Validation failed", verr.Fields)
		return
	}

	var derr *utils.DetailError
	if errors.As(err, &derr) {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			log.Debug(operation+" failed - not found", zap.Error(err))
			utils.ResponseNotFound(w, derr.Detail)
			return
		case errors.Is(err, utils.ErrUnauthorized):
			log.Warn(operation+" failed - unauthorized", zap.Error(err))
			utils.ResponseUnauthorized(w, derr.Detail)
			return
		case errors.Is(err, utils.ErrForbidden):
			log.Warn(operation+" failed - forbidden", zap.Error(err))
			utils.ResponseForbidden(w, derr.Detail)
			return
		case errors.Is(err, utils.ErrConflict):
			log.Warn(operation+" failed - already exists", zap.Error(err))
			utils.ResponseConflict(w, derr.Detail)
			return
		}
	}

	log.Error(operation+" failed", zap.Error(err))
	utils.ResponseInternalError(w, "Internal server error")
}
