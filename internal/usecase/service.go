package usecase

import (
	"time"

	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/token"

	"go.uber.org/zap"
)

// TokenManager issues and verifies bearer tokens
type TokenManager interface {
	Issue(userID int64, username string) (string, time.Time, error)
	Parse(raw string) (*token.Claims, error)
}

type Service struct {
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Rating  RatingService
	Comment CommentService
}

func NewService(repo *repository.Repository, tokens TokenManager, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo.User, tokens, log),
		User:    NewUserService(repo.User, log),
		Movie:   NewMovieService(repo.Movie, repo.Tx, log),
		Rating:  NewRatingService(repo.Movie, repo.Rating, repo.Tx, log),
		Comment: NewCommentService(repo.Movie, repo.Comment, repo.Reply, repo.Tx, log),
	}
}
