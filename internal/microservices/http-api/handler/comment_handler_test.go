package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/microservices/http-api/dto"
	"vidtube/internal/microservices/http-api/handler"
	"vidtube/internal/microservices/http-api/middleware"
	"vidtube/internal/microservices/http-api/service"
	"vidtube/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- MOCK SERVICE ---

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListComments(ctx context.Context, videoID string, actor *shared.Actor, page, limit int) (*dto.CommentPage, error) {
	args := m.Called(ctx, videoID, actor, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentPage), args.Error(1)
}

func (m *MockCommentService) GetComment(ctx context.Context, commentID string, actor *shared.Actor) (*dto.CommentView, error) {
	args := m.Called(ctx, commentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentView), args.Error(1)
}

func (m *MockCommentService) AddComment(ctx context.Context, videoID string, actor *shared.Actor, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, videoID, actor, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, commentID string, actor *shared.Actor, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, commentID, actor, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID string, actor *shared.Actor) (*dto.DeletedComment, error) {
	args := m.Called(ctx, commentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeletedComment), args.Error(1)
}

func (m *MockCommentService) ToggleCommentLike(ctx context.Context, commentID string, actor *shared.Actor) (*dto.LikeToggleResponse, error) {
	args := m.Called(ctx, commentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeToggleResponse), args.Error(1)
}

// stubVerifier accepts "token-<userID>".
type stubVerifier struct{}

func (stubVerifier) Verify(token string) (*shared.Actor, error) {
	if len(token) > len("token-") && token[:len("token-")] == "token-" {
		return shared.NewActor(token[len("token-"):], ""), nil
	}
	return nil, errors.New("bad token")
}

// --- SETUP ---

func setupRouter(mockService *MockCommentService, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewCommentHandler(mockService)
	limiter := middleware.NewRateLimiter(0.001, burst)

	h.RegisterRoutes(
		r.Group("/api/v1"),
		middleware.OptionalAuthMiddleware(stubVerifier{}),
		middleware.AuthMiddleware(stubVerifier{}),
		limiter.Middleware(),
	)
	return r
}

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- TESTS ---

func TestCommentHandler_ListByVideo(t *testing.T) {
	t.Run("AnonymousWithDefaults", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)

		page := dto.NewCommentPage([]dto.CommentView{{
			ID:         "c1",
			Content:    "hello",
			CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LikesCount: 3,
			Owner:      &dto.OwnerView{Username: "alice", FullName: "Alice", AvatarURL: "a.png"},
		}}, 1, 1, 10)
		mockService.On("ListComments", mock.Anything, "v1", (*shared.Actor)(nil), 1, 10).Return(page, nil).Once()

		w := doRequest(r, http.MethodGet, "/api/v1/videos/v1/comments?page=abc&limit=-2", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(200), body["statusCode"])
		assert.Equal(t, "Comments fetched successfully", body["message"])

		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["totalDocs"])
		docs := data["docs"].([]interface{})
		require.Len(t, docs, 1)
		doc := docs[0].(map[string]interface{})
		assert.Equal(t, float64(3), doc["likesCount"])
		assert.Equal(t, false, doc["isLiked"])
		assert.Equal(t, "alice", doc["owner"].(map[string]interface{})["username"])
		assert.Equal(t, "a.png", doc["owner"].(map[string]interface{})["avatarUrl"])
		mockService.AssertExpectations(t)
	})

	t.Run("ViewerIdentityPassedThrough", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)
		mockService.On("ListComments", mock.Anything, "v1", shared.NewActor("u1", ""), 2, 5).
			Return(dto.NewCommentPage(nil, 0, 2, 5), nil).Once()

		w := doRequest(r, http.MethodGet, "/api/v1/videos/v1/comments?page=2&limit=5", "token-u1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("VideoNotFound", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)
		mockService.On("ListComments", mock.Anything, "missing", (*shared.Actor)(nil), 1, 10).
			Return(nil, service.NotFound("video")).Once()

		w := doRequest(r, http.MethodGet, "/api/v1/videos/missing/comments", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(404), body["statusCode"])
		assert.Equal(t, "Video not found", body["message"])
		assert.Equal(t, false, body["success"])
	})
}

func TestCommentHandler_Create(t *testing.T) {
	t.Run("RequiresAuth", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)

		w := doRequest(r, http.MethodPost, "/api/v1/videos/v1/comments", "", map[string]string{"content": "hi"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
		mockService.AssertNotCalled(t, "AddComment")
	})

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)
		created := &dto.CommentResponse{ID: "c1", Content: "hi", VideoID: "v1", OwnerID: "u1"}
		mockService.On("AddComment", mock.Anything, "v1", shared.NewActor("u1", ""), "hi").Return(created, nil).Once()

		w := doRequest(r, http.MethodPost, "/api/v1/videos/v1/comments", "token-u1", map[string]string{"content": "hi"})

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(201), body["statusCode"])
		assert.Equal(t, "c1", body["data"].(map[string]interface{})["id"])
	})

	t.Run("EmptyContent", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)
		mockService.On("AddComment", mock.Anything, "v1", mock.Anything, "").
			Return(nil, service.InvalidArgument("Content is required")).Once()

		w := doRequest(r, http.MethodPost, "/api/v1/videos/v1/comments", "token-u1", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Content is required", decode(t, w)["message"])
	})

	t.Run("RateLimited", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 1)
		created := &dto.CommentResponse{ID: "c1"}
		mockService.On("AddComment", mock.Anything, "v1", mock.Anything, "hi").Return(created, nil).Once()

		first := doRequest(r, http.MethodPost, "/api/v1/videos/v1/comments", "token-u1", map[string]string{"content": "hi"})
		second := doRequest(r, http.MethodPost, "/api/v1/videos/v1/comments", "token-u1", map[string]string{"content": "hi"})

		assert.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCommentHandler_Update(t *testing.T) {
	t.Run("Forbidden", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)
		mockService.On("UpdateComment", mock.Anything, "c1", shared.NewActor("u2", ""), "edit").
			Return(nil, service.Forbidden("You are not authorized to update this comment")).Once()

		w := doRequest(r, http.MethodPatch, "/api/v1/comments/c1", "token-u2", map[string]string{"content": "edit"})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You are not authorized to update this comment", decode(t, w)["message"])
	})

	t.Run("InternalDoesNotLeak", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)
		mockService.On("UpdateComment", mock.Anything, "c1", mock.Anything, "edit").
			Return(nil, errors.New("pq: relation comments does not exist")).Once()

		w := doRequest(r, http.MethodPatch, "/api/v1/comments/c1", "token-u1", map[string]string{"content": "edit"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "pq:")
		assert.Equal(t, "Internal server error", decode(t, w)["message"])
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockCommentService)
		r := setupRouter(mockService, 10)

		req, _ := http.NewRequest(http.MethodPatch, "/api/v1/comments/c1", bytes.NewBufferString("{not json"))
		req.Header.Set("Authorization", "Bearer token-u1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UpdateComment")
	})
}

func TestCommentHandler_Delete(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, 10)
	mockService.On("DeleteComment", mock.Anything, "c1", shared.NewActor("u1", "")).
		Return(&dto.DeletedComment{CommentID: "c1"}, nil).Once()
	mockService.On("DeleteComment", mock.Anything, "c1", shared.NewActor("u1", "")).
		Return(nil, service.NotFound("comment")).Once()

	first := doRequest(r, http.MethodDelete, "/api/v1/comments/c1", "token-u1", nil)
	second := doRequest(r, http.MethodDelete, "/api/v1/comments/c1", "token-u1", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "c1", decode(t, first)["data"].(map[string]interface{})["commentId"])
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Equal(t, "Comment not found", decode(t, second)["message"])
}

func TestCommentHandler_ToggleLike(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, 10)
	mockService.On("ToggleCommentLike", mock.Anything, "c1", shared.NewActor("u1", "")).
		Return(&dto.LikeToggleResponse{CommentID: "c1", IsLiked: true}, nil).Once()

	w := doRequest(r, http.MethodPost, "/api/v1/comments/c1/like", "token-u1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Comment liked successfully", body["message"])
	assert.Equal(t, true, body["data"].(map[string]interface{})["isLiked"])
}

func TestCommentHandler_GetByID(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, 10)
	mockService.On("GetComment", mock.Anything, "c1", (*shared.Actor)(nil)).
		Return(&dto.CommentView{ID: "c1", Content: "hello"}, nil).Once()

	w := doRequest(r, http.MethodGet, "/api/v1/comments/c1", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "hello", data["content"])
	assert.Nil(t, data["owner"])
}
