package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// CreateComment handles POST /comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, comment)
}

// CreateReply handles POST /comments/{id}/replies
func (h *CommentHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	commentID, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	var req request.ReplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.CreateReply(r.Context(), commentID, userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create reply")
		return
	}

	utils.ResponseSuccess(w, comment)
}

// GetMovieComments handles GET /comments/{movie_id}/comments
func (h *CommentHandler) GetMovieComments(w http.ResponseWriter, r *http.Request) {
	// shares the {id} segment with the other comment routes
	movieID, ok := pathID(w, chi.URLParam(r, "id"), "movie_id")
	if !ok {
		return
	}

	comments, err := h.service.GetMovieComments(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, comments)
}

// DeleteComment handles DELETE /comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	commentID, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID, userID); err != nil {
		h.handleServiceError(w, err, "delete comment")
		return
	}

	utils.ResponseMessage(w, "comment deleted successfuly")
}

// DeleteReply handles DELETE /comments/replies/{id}
func (h *CommentHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}

	replyID, ok := pathID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	if err := h.service.DeleteReply(r.Context(), replyID, userID); err != nil {
		h.handleServiceError(w, err, "delete reply")
		return
	}

	utils.ResponseMessage(w, "reply deleted successfuly")
}

func (h *CommentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	writeServiceError(w, h.log, err, operation)
}
