package repository

import (
	"context"
	"fmt"

	"vidtube/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// VideoRepository answers the only question comments ask about videos.
type VideoRepository interface {
	Exists(ctx context.Context, videoID string) (bool, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Exists(ctx context.Context, videoID string) (bool, error) {
	if !validID(videoID) {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", videoID).Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check video: %w", err)
	}
	return count > 0, nil
}
