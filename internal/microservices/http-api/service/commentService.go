package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"vidtube/internal/microservices/http-api/dto"
	"vidtube/internal/microservices/http-api/models"
	"vidtube/internal/microservices/http-api/repository"
	"vidtube/internal/shared"

	"gorm.io/gorm"
)

// MaxCommentLength is counted in characters, not bytes.
const MaxCommentLength = 5000

type CommentService interface {
	ListComments(ctx context.Context, videoID string, actor *shared.Actor, page, limit int) (*dto.CommentPage, error)
	GetComment(ctx context.Context, commentID string, actor *shared.Actor) (*dto.CommentView, error)
	AddComment(ctx context.Context, videoID string, actor *shared.Actor, content string) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID string, actor *shared.Actor, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID string, actor *shared.Actor) (*dto.DeletedComment, error)
	ToggleCommentLike(ctx context.Context, commentID string, actor *shared.Actor) (*dto.LikeToggleResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	videoRepo   repository.VideoRepository
	logger      *slog.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	logger *slog.Logger,
) CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		logger:      logger,
	}
}

func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", InvalidArgument("Content is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxCommentLength {
		return "", InvalidArgument("Content is too long")
	}
	return trimmed, nil
}

func (s *commentService) ensureVideo(ctx context.Context, videoID string) error {
	exists, err := s.videoRepo.Exists(ctx, videoID)
	if err != nil {
		return Internal("Failed to look up video", err)
	}
	if !exists {
		return NotFound("video")
	}
	return nil
}

func (s *commentService) loadComment(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("comment")
		}
		return nil, Internal("Failed to look up comment", err)
	}
	return comment, nil
}

// AddComment creates a comment owned by actor on an existing video.
func (s *commentService) AddComment(ctx context.Context, videoID string, actor *shared.Actor, content string) (*dto.CommentResponse, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, Forbidden("You must be signed in to comment")
	}
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		VideoID: videoID,
		OwnerID: actor.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, Internal("Failed to create comment", err)
	}

	s.logger.Info("comment_created", "comment_id", comment.ID, "video_id", videoID, "owner_id", actor.UserID)
	return dto.FromModelToCommentResponse(comment), nil
}

// UpdateComment replaces the content of a comment the actor owns.
func (s *commentService) UpdateComment(ctx context.Context, commentID string, actor *shared.Actor, content string) (*dto.CommentResponse, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !CanModify(comment.OwnerID, actor) {
		return nil, Forbidden("You are not authorized to update this comment")
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, Internal("Failed to edit comment please try again", err)
	}

	// Reload so the response carries the stored updatedAt
	updated, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, Internal("Failed to edit comment please try again", err)
	}
	return dto.FromModelToCommentResponse(updated), nil
}

// DeleteComment removes a comment the actor owns together with its likes.
func (s *commentService) DeleteComment(ctx context.Context, commentID string, actor *shared.Actor) (*dto.DeletedComment, error) {
	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !CanModify(comment.OwnerID, actor) {
		return nil, Forbidden("You are not authorized to delete this comment")
	}

	likesRemoved, err := s.commentRepo.DeleteWithLikes(ctx, commentID)
	if err != nil {
		return nil, Internal("Failed to delete comment please try again", err)
	}

	s.logger.Info("comment_deleted", "comment_id", commentID, "likes_removed", likesRemoved)
	return &dto.DeletedComment{CommentID: commentID}, nil
}

// ToggleCommentLike likes the comment for actor, or unlikes it if already liked.
func (s *commentService) ToggleCommentLike(ctx context.Context, commentID string, actor *shared.Actor) (*dto.LikeToggleResponse, error) {
	if actor == nil {
		return nil, Forbidden("You must be signed in to like a comment")
	}
	if _, err := s.loadComment(ctx, commentID); err != nil {
		return nil, err
	}

	_, err := s.likeRepo.Find(ctx, commentID, actor.UserID)
	switch {
	case err == nil:
		if err := s.likeRepo.Delete(ctx, commentID, actor.UserID); err != nil && !errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, Internal("Failed to unlike comment", err)
		}
		return &dto.LikeToggleResponse{CommentID: commentID, IsLiked: false}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, Internal("Failed to look up like", err)
	}

	like := &models.Like{CommentID: commentID, LikedBy: actor.UserID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateLike):
		case errors.Is(err, repository.ErrCommentGone):
			// deleted after loadComment above
			return nil, NotFound("comment")
		default:
			return nil, Internal("Failed to like comment", err)
		}
	}
	return &dto.LikeToggleResponse{CommentID: commentID, IsLiked: true}, nil
}
