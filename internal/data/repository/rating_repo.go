package repository

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Rating, error)
	GetMovieRatingStats(ctx context.Context, movieID int64) (float64, int64, error) // average, count
}

type ratingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRatingRepository(db database.Querier, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (movie_id, user_id, value, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, value::float8
	`

	err := database.QuerierFrom(ctx, r.db).QueryRow(ctx, query,
		rating.MovieID,
		rating.UserID,
		rating.Value,
		rating.CreatedAt,
	).Scan(&rating.ID, &rating.Value)

	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return utils.ErrMovieNotFound
		}

		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.Int64("user_id", rating.UserID),
			zap.Int64("movie_id", rating.MovieID),
		)
		return fmt.Errorf("create rating for movie %d by user %d: %w",
			rating.MovieID, rating.UserID, err)
	}

	return nil
}

func (r *ratingRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Rating, error) {
	query := `
		SELECT id, movie_id, user_id, value::float8, created_at
		FROM ratings
		WHERE movie_id = $1
		ORDER BY id
	`

	rows, err := database.QuerierFrom(ctx, r.db).Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find ratings by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find ratings by movie ID %d: %w", movieID, err)
	}
	defer rows.Close()

	ratings := []*entity.Rating{}
	for rows.Next() {
		var rating entity.Rating
		err := rows.Scan(
			&rating.ID,
			&rating.MovieID,
			&rating.UserID,
			&rating.Value,
			&rating.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func (r *ratingRepository) GetMovieRatingStats(ctx context.Context, movieID int64) (float64, int64, error) {
	query := `
		SELECT
			COALESCE(AVG(value), 0)::float8 AS avg_rating,
			COUNT(*) AS rating_count
		FROM ratings
		WHERE movie_id = $1
	`

	var avgRating float64
	var ratingCount int64
	err := database.QuerierFrom(ctx, r.db).QueryRow(ctx, query, movieID).Scan(&avgRating, &ratingCount)
	if err != nil {
		r.log.Error("Failed to get movie rating stats",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return 0, 0, fmt.Errorf("get movie rating stats for %d: %w", movieID, err)
	}

	return avgRating, ratingCount, nil
}
