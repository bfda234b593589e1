package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type RatingService interface {
	RateMovie(ctx context.Context, movieID, userID int64, req *request.RatingRequest) (*response.RatingResponse, error)
	GetMovieRatings(ctx context.Context, movieID int64) ([]response.RatingResponse, error)
	GetMovieRatingStats(ctx context.Context, movieID int64) (*response.MovieRatingStats, error)
}

type ratingService struct {
	movies  repository.MovieRepository
	ratings repository.RatingRepository
	tx      database.Transactor
	log     *zap.Logger
}

func NewRatingService(
	movies repository.MovieRepository,
	ratings repository.RatingRepository,
	tx database.Transactor,
	log *zap.Logger,
) RatingService {
	return &ratingService{
		movies:  movies,
		ratings: ratings,
		tx:      tx,
		log:     log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) RateMovie(ctx context.Context, movieID, userID int64, req *request.RatingRequest) (*response.RatingResponse, error) {
	var rating *entity.Rating

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// an unknown movie is reported before the value is looked at
		if err := s.movieExists(ctx, movieID); err != nil {
			return err
		}

		if err := utils.Validate(req); err != nil {
			return err
		}

		rating = &entity.Rating{
			BaseSimple: entity.BaseSimple{CreatedAt: time.Now().UTC()},
			MovieID:    movieID,
			UserID:     userID,
			Value:      roundRating(*req.Rating),
		}

		if err := s.ratings.Create(ctx, rating); err != nil {
			return fmt.Errorf("create rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Movie rated",
		zap.Int64("rating_id", rating.ID),
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", userID),
		zap.Float64("rating", rating.Value),
	)

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) GetMovieRatings(ctx context.Context, movieID int64) ([]response.RatingResponse, error) {
	ratings, err := s.ratings.FindByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get ratings",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get ratings: %w", err)
	}

	resp := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		resp[i] = response.RatingToResponse(rating)
	}
	return resp, nil
}

func (s *ratingService) GetMovieRatingStats(ctx context.Context, movieID int64) (*response.MovieRatingStats, error) {
	if err := s.movieExists(ctx, movieID); err != nil {
		return nil, err
	}

	avg, count, err := s.ratings.GetMovieRatingStats(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get rating stats",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get rating stats: %w", err)
	}

	return &response.MovieRatingStats{
		MovieID:       movieID,
		AverageRating: avg,
		RatingCount:   count,
	}, nil
}

func (s *ratingService) movieExists(ctx context.Context, movieID int64) error {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return utils.ErrMovieNotFound
	}
	return nil
}

// roundRating matches the NUMERIC(3,1) column, which rounds half away from zero
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
