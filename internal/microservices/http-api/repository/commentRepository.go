package repository

import (
	"context"
	"fmt"

	"vidtube/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	UpdateContent(ctx context.Context, commentID, content string) error
	DeleteWithLikes(ctx context.Context, commentID string) (int64, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	ListByVideo(ctx context.Context, videoID string, offset, limit int) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by its ID. A missing row yields gorm.ErrRecordNotFound.
func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	if !validID(commentID) {
		return nil, gorm.ErrRecordNotFound
	}
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent sets only the content column; owner, video and created_at never change.
func (r *commentRepository) UpdateContent(ctx context.Context, commentID, content string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("content", content)
	if result.Error != nil {
		return fmt.Errorf("update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// DeleteWithLikes removes the comment and every like pointing at it in one
// transaction. Likes go first so the count is reported before the foreign key
// cascade could hide it; unless exactly one comment row is then deleted the
// transaction rolls back and the likes stay.
func (r *commentRepository) DeleteWithLikes(ctx context.Context, commentID string) (int64, error) {
	var likesRemoved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes := tx.Where("comment_id = ?", commentID).Delete(&models.Like{})
		if likes.Error != nil {
			return fmt.Errorf("delete comment likes: %w", likes.Error)
		}

		result := tx.Where("id = ?", commentID).Delete(&models.Comment{})
		if result.Error != nil {
			return fmt.Errorf("delete comment: %w", result.Error)
		}
		if result.RowsAffected != 1 {
			return ErrNoRowsAffected
		}
		likesRemoved = likes.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return likesRemoved, nil
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("video_id = ?", videoID).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return total, nil
}

// ListByVideo returns one page of a video's comments, newest first.
// The id tiebreak keeps pages stable when timestamps collide.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID string, offset, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
