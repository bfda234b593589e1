package request

type CommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
	MovieID *int64 `json:"movie_id,omitempty"`
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,min=1,max=2000"`
}
