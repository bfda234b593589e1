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

type CommentService interface {
	CreateComment(ctx context.Context, userID int64, req *request.CommentRequest) (*response.CommentResponse, error)
	// CreateReply returns the parent comment with the new reply as its last element
	CreateReply(ctx context.Context, commentID, userID int64, req *request.ReplyRequest) (*response.CommentResponse, error)
	GetMovieComments(ctx context.Context, movieID int64) ([]response.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
	DeleteReply(ctx context.Context, replyID, userID int64) error
}

type commentService struct {
	movies   repository.MovieRepository
	comments repository.CommentRepository
	replies  repository.ReplyRepository
	tx       database.Transactor
	log      *zap.Logger
}

func NewCommentService(
	movies repository.MovieRepository,
	comments repository.CommentRepository,
	replies repository.ReplyRepository,
	tx database.Transactor,
	log *zap.Logger,
) CommentService {
	return &commentService{
		movies:   movies,
		comments: comments,
		replies:  replies,
		tx:       tx,
		log:      log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID int64, req *request.CommentRequest) (*response.CommentResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Create comment validation failed", zap.Error(err))
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{CreatedAt: time.Now().UTC()},
		MovieID:    req.MovieID,
		UserID:     userID,
		Text:       req.Comment,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if comment.MovieID != nil {
			movie, err := s.movies.FindByID(ctx, *comment.MovieID)
			if err != nil {
				return fmt.Errorf("find movie: %w", err)
			}
			if movie == nil {
				return utils.ErrMovieNotFound
			}
		}

		if err := s.comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("user_id", userID),
	)

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) CreateReply(ctx context.Context, commentID, userID int64, req *request.ReplyRequest) (*response.CommentResponse, error) {
	var parent *entity.Comment

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		comment, err := s.findComment(ctx, commentID)
		if err != nil {
			return err
		}

		if err := utils.Validate(req); err != nil {
			return err
		}

		reply := &entity.Reply{
			BaseSimple: entity.BaseSimple{CreatedAt: time.Now().UTC()},
			CommentID:  commentID,
			UserID:     userID,
			Text:       req.Reply,
		}
		if err := s.replies.Create(ctx, reply); err != nil {
			return fmt.Errorf("create reply: %w", err)
		}

		grouped, err := s.replies.FindByCommentIDs(ctx, []int64{commentID})
		if err != nil {
			return fmt.Errorf("load replies: %w", err)
		}
		comment.Replies = grouped[commentID]

		parent = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reply created",
		zap.Int64("comment_id", commentID),
		zap.Int64("user_id", userID),
		zap.Int("reply_count", len(parent.Replies)),
	)

	resp := response.CommentToResponse(parent)
	return &resp, nil
}

func (s *commentService) GetMovieComments(ctx context.Context, movieID int64) ([]response.CommentResponse, error) {
	comments, err := s.comments.FindByMovieID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get comments",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("get comments: %w", err)
	}

	ids := make([]int64, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
	}

	grouped, err := s.replies.FindByCommentIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get replies: %w", err)
	}

	resp := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		comment.Replies = grouped[comment.ID]
		resp[i] = response.CommentToResponse(comment)
	}
	return resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		comment, err := s.findComment(ctx, commentID)
		if err != nil {
			return err
		}
		if comment.UserID != userID {
			return utils.Forbidden("comment")
		}

		if err := s.comments.Delete(ctx, commentID); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return utils.ErrCommentNotFound
			}
			return fmt.Errorf("delete comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Comment deleted",
		zap.Int64("comment_id", commentID),
		zap.Int64("user_id", userID),
	)
	return nil
}

func (s *commentService) DeleteReply(ctx context.Context, replyID, userID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		reply, err := s.replies.FindByID(ctx, replyID)
		if err != nil {
			return fmt.Errorf("find reply: %w", err)
		}
		if reply == nil {
			return utils.ErrReplyNotFound
		}
		if reply.UserID != userID {
			return utils.Forbidden("reply")
		}

		if err := s.replies.Delete(ctx, replyID); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return utils.ErrReplyNotFound
			}
			return fmt.Errorf("delete reply: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Reply deleted",
		zap.Int64("reply_id", replyID),
		zap.Int64("user_id", userID),
	)
	return nil
}

func (s *commentService) findComment(ctx context.Context, commentID int64) (*entity.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return nil, utils.ErrCommentNotFound
	}
	return comment, nil
}
