package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a single user's like on a comment. The composite unique index keeps
// one like per (comment, user) pair so likesCount cannot be inflated, and the
// foreign key removes likes with their comment even when a like is inserted
// while the comment is being deleted.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CommentID string    `json:"comment" gorm:"type:uuid;not null;uniqueIndex:idx_likes_comment_user"`
	Comment   *Comment  `json:"-" gorm:"foreignKey:CommentID;references:ID;constraint:OnDelete:CASCADE"`
	LikedBy   string    `json:"likedBy" gorm:"type:uuid;not null;uniqueIndex:idx_likes_comment_user;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return
}

func (Like) TableName() string {
	return "likes"
}
