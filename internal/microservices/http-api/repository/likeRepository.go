package repository

import (
	"context"
	"errors"
	"fmt"

	"vidtube/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Find(ctx context.Context, commentID, userID string) (*models.Like, error)
	Delete(ctx context.Context, commentID, userID string) error
	ListByComments(ctx context.Context, commentIDs []string) ([]models.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts a like. The unique (comment_id, liked_by) index turns a
// second like by the same user into ErrDuplicateLike; the foreign key turns a
// like on a deleted comment into ErrCommentGone.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Omit("Comment").Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateLike
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrCommentGone
		}
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

func (r *likeRepository) Find(ctx context.Context, commentID, userID string) (*models.Like, error) {
	if !validID(commentID) || !validID(userID) {
		return nil, gorm.ErrRecordNotFound
	}
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND liked_by = ?", commentID, userID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Delete(ctx context.Context, commentID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("comment_id = ? AND liked_by = ?", commentID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return fmt.Errorf("delete like: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// ListByComments loads every like for the given comments in one query.
func (r *likeRepository) ListByComments(ctx context.Context, commentIDs []string) ([]models.Like, error) {
	ids := validIDs(commentIDs)
	if len(ids) == 0 {
		return []models.Like{}, nil
	}
	var likes []models.Like
	if err := r.db.WithContext(ctx).Where("comment_id IN ?", ids).Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	return likes, nil
}
