package request

type RatingRequest struct {
	Rating *float64 `json:"rating" validate:"required,gte=0,lte=5"`
}
