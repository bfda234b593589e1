package response

import (
	"movie-catalog/internal/data/entity"
	"time"
)

type CommentResponse struct {
	ID        int64           `json:"id"`
	MovieID   *int64          `json:"movie_id"`
	UserID    int64           `json:"user_id"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
	Replies   []ReplyResponse `json:"replies"`
}

type ReplyResponse struct {
	ID        int64     `json:"id"`
	CommentID int64     `json:"comment_id"`
	UserID    int64     `json:"user_id"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}

func CommentToResponse(comment *entity.Comment) CommentResponse {
	replies := make([]ReplyResponse, len(comment.Replies))
	for i, reply := range comment.Replies {
		replies[i] = ReplyToResponse(reply)
	}

	return CommentResponse{
		ID:        comment.ID,
		MovieID:   comment.MovieID,
		UserID:    comment.UserID,
		Comment:   comment.Text,
		CreatedAt: comment.CreatedAt,
		Replies:   replies,
	}
}

func ReplyToResponse(reply *entity.Reply) ReplyResponse {
	return ReplyResponse{
		ID:        reply.ID,
		CommentID: reply.CommentID,
		UserID:    reply.UserID,
		Reply:     reply.Text,
		CreatedAt: reply.CreatedAt,
	}
}
