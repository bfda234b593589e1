package repository

//go:generate mockgen -destination=mock/mock_repository.go -package=mock movie-catalog/internal/data/repository UserRepository,MovieRepository,RatingRepository,CommentRepository,ReplyRepository

import (
	"context"
	"errors"

	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Postgres SQLSTATE codes the repositories translate
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ErrNoRowsAffected is returned by Update/Delete when the id did not match a row
var ErrNoRowsAffected = errors.New("no rows affected")

type Repository struct {
	User    UserRepository
	Movie   MovieRepository
	Rating  RatingRepository
	Comment CommentRepository
	Reply   ReplyRepository
	Tx      database.Transactor
	Health  HealthChecker
}

// HealthChecker pings the backing store
type HealthChecker interface {
	Ping(ctx context.Context) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Rating:  NewRatingRepository(db, log),
		Comment: NewCommentRepository(db, log),
		Reply:   NewReplyRepository(db, log),
		Tx:      database.NewTransactor(db),
		Health:  db,
	}
}

func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}
