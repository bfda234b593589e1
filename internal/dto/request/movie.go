package request

// MovieRequest is used for both create and full replacement updates
type MovieRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=200"`
	Genre         string `json:"genre" validate:"required,min=1,max=200"`
	Publisher     string `json:"publisher" validate:"required,min=1,max=200"`
	YearPublished string `json:"year_published" validate:"required,numeric,len=4"`
}
