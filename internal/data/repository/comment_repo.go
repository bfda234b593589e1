package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// FindByID does not load replies
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCommentRepository(db database.Querier, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (movie_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := database.QuerierFrom(ctx, r.db).QueryRow(ctx, query,
		comment.MovieID,
		comment.UserID,
		comment.Text,
		comment.CreatedAt,
	).Scan(&comment.ID)

	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return utils.ErrMovieNotFound
		}

		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("user_id", comment.UserID),
		)
		return fmt.Errorf("create comment by user %d: %w", comment.UserID, err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `
		SELECT id, movie_id, user_id, text, created_at
		FROM comments
		WHERE id = $1
	`

	var comment entity.Comment
	err := database.QuerierFrom(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.MovieID,
		&comment.UserID,
		&comment.Text,
		&comment.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return nil, fmt.Errorf("find comment by ID %d: %w", id, err)
	}

	return &comment, nil
}

func (r *commentRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Comment, error) {
	query := `
		SELECT id, movie_id, user_id, text, created_at
		FROM comments
		WHERE movie_id = $1
		ORDER BY id
	`

	rows, err := database.QuerierFrom(ctx, r.db).Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find comments by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find comments by movie ID %d: %w", movieID, err)
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	for rows.Next() {
		var comment entity.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.MovieID,
			&comment.UserID,
			&comment.Text,
			&comment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

// Delete removes the comment and, through ON DELETE CASCADE, its replies
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result, err := database.QuerierFrom(ctx, r.db).Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	r.log.Info("Comment deleted", zap.Int64("comment_id", id))
	return nil
}
