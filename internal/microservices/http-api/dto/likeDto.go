package dto

// LikeToggleResponse reports the viewer's like state after a toggle.
type LikeToggleResponse struct {
	CommentID string `json:"commentId"`
	IsLiked   bool   `json:"isLiked"`
}
