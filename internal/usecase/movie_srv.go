package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req request.PaginatedRequest) (*response.MovieList, error)
	GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, userID int64, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID, userID int64, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID, userID int64) error
}

type movieService struct {
	movies repository.MovieRepository
	tx     database.Transactor
	log    *zap.Logger
}

func NewMovieService(
	movies repository.MovieRepository,
	tx database.Transactor,
	log *zap.Logger,
) MovieService {
	return &movieService{
		movies: movies,
		tx:     tx,
		log:    log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req request.PaginatedRequest) (*response.MovieList, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	movies, err := s.movies.FindAll(ctx, req.Offset(), req.Limit())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total := int64(len(movies))
	if req.Enabled() {
		total, err = s.movies.CountAll(ctx)
		if err != nil {
			s.log.Error("Failed to count movies", zap.Error(err))
			return nil, fmt.Errorf("count movies: %w", err)
		}
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movieResponses)),
		zap.Int64("total", total),
	)

	return &response.MovieList{Data: movieResponses, Total: total}, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, utils.ErrMovieNotFound
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, userID int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:         req.Title,
		Genre:         req.Genre,
		Publisher:     req.Publisher,
		YearPublished: req.YearPublished,
		OwnerID:       userID,
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.Int64("owner_id", userID),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID, userID int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	var updated *entity.Movie

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		movie, err := s.ownedMovie(ctx, movieID, userID)
		if err != nil {
			return err
		}

		if err := utils.Validate(req); err != nil {
			return err
		}

		movie.Title = req.Title
		movie.Genre = req.Genre
		movie.Publisher = req.Publisher
		movie.YearPublished = req.YearPublished
		movie.UpdatedAt = time.Now().UTC()

		if err := s.movies.Update(ctx, movie); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return utils.ErrMovieNotFound
			}
			return fmt.Errorf("update movie: %w", err)
		}

		updated = movie
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", userID),
	)

	resp := response.MovieToResponse(updated)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID, userID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.ownedMovie(ctx, movieID, userID); err != nil {
			return err
		}

		// ratings, comments and their replies go with the movie
		if err := s.movies.Delete(ctx, movieID); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return utils.ErrMovieNotFound
			}
			return fmt.Errorf("delete movie: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Movie deleted",
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", userID),
	)
	return nil
}

func (s *movieService) ownedMovie(ctx context.Context, movieID, userID int64) (*entity.Movie, error) {
	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, utils.ErrMovieNotFound
	}
	if !movie.OwnedBy(userID) {
		s.log.Warn("Movie change by non-owner",
			zap.Int64("movie_id", movieID),
			zap.Int64("user_id", userID),
		)
		return nil, utils.Forbidden("movie")
	}
	return movie, nil
}
