package response

import (
	"movie-catalog/internal/data/entity"
	"time"
)

type MovieResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Genre         string    `json:"genre"`
	Publisher     string    `json:"publisher"`
	YearPublished string    `json:"year_published"`
	OwnerID       int64     `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		Genre:         movie.Genre,
		Publisher:     movie.Publisher,
		YearPublished: movie.YearPublished,
		OwnerID:       movie.OwnerID,
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
}

// MovieList carries one page of movies and the total row count
type MovieList struct {
	Data  []MovieResponse
	Total int64
}
