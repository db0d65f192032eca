package dto

import (
	"time"

	"vidtube/internal/microservices/http-api/models"
)

// CreateCommentDTO for creating a comment. Emptiness is checked by the
// service after trimming so the failure carries the usual envelope.
type CreateCommentDTO struct {
	Content string `json:"content"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content"`
}

// CommentResponse is the stored comment returned by create and update.
type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	VideoID   string    `json:"video"`
	OwnerID   string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		VideoID:   comment.VideoID,
		OwnerID:   comment.OwnerID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// OwnerView is the public slice of a user shown next to a comment.
type OwnerView struct {
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

func FromModelToOwnerView(user *models.User) *OwnerView {
	if user == nil {
		return nil
	}
	return &OwnerView{
		Username:  user.Username,
		FullName:  user.FullName,
		AvatarURL: user.AvatarURL,
	}
}

// CommentView is a comment enriched for one viewer. Owner is null when the
// author's profile no longer resolves.
type CommentView struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	LikesCount int        `json:"likesCount"`
	Owner      *OwnerView `json:"owner"`
	IsLiked    bool       `json:"isLiked"`
}

// DeletedComment confirms a delete.
type DeletedComment struct {
	CommentID string `json:"commentId"`
}
