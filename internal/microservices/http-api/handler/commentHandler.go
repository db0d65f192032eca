package handler

import (
	"net/http"

	"vidtube/internal/microservices/http-api/dto"
	"vidtube/internal/microservices/http-api/middleware"
	"vidtube/internal/microservices/http-api/service"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes. optionalAuth runs on reads,
// requireAuth and writeLimit on writes.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, optionalAuth, requireAuth, writeLimit gin.HandlerFunc) {
	// Video comments
	videoComments := router.Group("/videos/:videoId/comments")
	{
		videoComments.GET("", optionalAuth, h.ListByVideo)
		videoComments.POST("", requireAuth, writeLimit, h.Create)
	}

	comments := router.Group("/comments")
	{
		comments.GET("/:commentId", optionalAuth, h.GetByID)
		comments.PATCH("/:commentId", requireAuth, writeLimit, h.Update)
		comments.DELETE("/:commentId", requireAuth, writeLimit, h.Delete)
		comments.POST("/:commentId/like", requireAuth, writeLimit, h.ToggleLike)
	}
}

// ListByVideo retrieves a video's comments with pagination
// GET /api/v1/videos/:videoId/comments?page=1&limit=10
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	page, limit := dto.ParsePagination(c.Query("page"), c.Query("limit"))

	comments, err := h.commentService.ListComments(c.Request.Context(), c.Param("videoId"), middleware.ActorFromContext(c), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comments, "Comments fetched successfully")
}

// Create creates a new comment for a video
// POST /api/v1/videos/:videoId/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), c.Param("videoId"), middleware.ActorFromContext(c), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comment, "Comment created successfully")
}

// GetByID retrieves a single enriched comment
// GET /api/v1/comments/:commentId
func (h *CommentHandler) GetByID(c *gin.Context) {
	comment, err := h.commentService.GetComment(c.Request.Context(), c.Param("commentId"), middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment, "Comment fetched successfully")
}

// Update edits the caller's own comment
// PATCH /api/v1/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.Param("commentId"), middleware.ActorFromContext(c), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment, "Comment edited successfully")
}

// Delete removes the caller's own comment and its likes
// DELETE /api/v1/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	deleted, err := h.commentService.DeleteComment(c.Request.Context(), c.Param("commentId"), middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, deleted, "Comment deleted successfully")
}

// ToggleLike likes or unlikes a comment for the caller
// POST /api/v1/comments/:commentId/like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	result, err := h.commentService.ToggleCommentLike(c.Request.Context(), c.Param("commentId"), middleware.ActorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Comment unliked successfully"
	if result.IsLiked {
		message = "Comment liked successfully"
	}
	response.Success(c, http.StatusOK, result, message)
}
