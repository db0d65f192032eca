package repository

import (
	"context"
	"fmt"

	"vidtube/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository reads the profile projection shown next to comments.
type UserRepository interface {
	FindProjections(ctx context.Context, ids []string) ([]models.User, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindProjections(ctx context.Context, ids []string) ([]models.User, error) {
	valid := validIDs(ids)
	if len(valid) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	err := r.db.WithContext(ctx).
		Select("id", "username", "full_name", "avatar_url").
		Where("id IN ?", valid).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return users, nil
}
