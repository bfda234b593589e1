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

type ReplyRepository interface {
	Create(ctx context.Context, reply *entity.Reply) error
	FindByID(ctx context.Context, id int64) (*entity.Reply, error)
	// FindByCommentIDs groups replies per comment, each slice in insertion order
	FindByCommentIDs(ctx context.Context, commentIDs []int64) (map[int64][]*entity.Reply, error)
	Delete(ctx context.Context, id int64) error
}

type replyRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReplyRepository(db database.Querier, log *zap.Logger) ReplyRepository {
	return &replyRepository{
		db:  db,
		log: log.With(zap.String("repository", "reply")),
	}
}

func (r *replyRepository) Create(ctx context.Context, reply *entity.Reply) error {
	query := `
		INSERT INTO replies (comment_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := database.QuerierFrom(ctx, r.db).QueryRow(ctx, query,
		reply.CommentID,
		reply.UserID,
		reply.Text,
		reply.CreatedAt,
	).Scan(&reply.ID)

	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return utils.ErrCommentNotFound
		}

		r.log.Error("Failed to create reply",
			zap.Error(err),
			zap.Int64("comment_id", reply.CommentID),
			zap.Int64("user_id", reply.UserID),
		)
		return fmt.Errorf("create reply on comment %d: %w", reply.CommentID, err)
	}

	return nil
}

func (r *replyRepository) FindByID(ctx context.Context, id int64) (*entity.Reply, error) {
	query := `
		SELECT id, comment_id, user_id, text, created_at
		FROM replies
		WHERE id = $1
	`

	var reply entity.Reply
	err := database.QuerierFrom(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&reply.ID,
		&reply.CommentID,
		&reply.UserID,
		&reply.Text,
		&reply.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reply by ID",
			zap.Error(err),
			zap.Int64("reply_id", id),
		)
		return nil, fmt.Errorf("find reply by ID %d: %w", id, err)
	}

	return &reply, nil
}

func (r *replyRepository) FindByCommentIDs(ctx context.Context, commentIDs []int64) (map[int64][]*entity.Reply, error) {
	grouped := make(map[int64][]*entity.Reply, len(commentIDs))
	if len(commentIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT id, comment_id, user_id, text, created_at
		FROM replies
		WHERE comment_id = ANY($1)
		ORDER BY comment_id, id
	`

	rows, err := database.QuerierFrom(ctx, r.db).Query(ctx, query, commentIDs)
	if err != nil {
		r.log.Error("Failed to find replies by comment IDs",
			zap.Error(err),
			zap.Int("comment_count", len(commentIDs)),
		)
		return nil, fmt.Errorf("find replies by comment IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reply entity.Reply
		err := rows.Scan(
			&reply.ID,
			&reply.CommentID,
			&reply.UserID,
			&reply.Text,
			&reply.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reply row", zap.Error(err))
			return nil, fmt.Errorf("scan reply row: %w", err)
		}
		grouped[reply.CommentID] = append(grouped[reply.CommentID], &reply)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reply rows: %w", err)
	}

	return grouped, nil
}

func (r *replyRepository) Delete(ctx context.Context, id int64) error {
	result, err := database.QuerierFrom(ctx, r.db).Exec(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reply",
			zap.Error(err),
			zap.Int64("reply_id", id),
		)
		return fmt.Errorf("delete reply %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}

	r.log.Info("Reply deleted", zap.Int64("reply_id", id))
	return nil
}
