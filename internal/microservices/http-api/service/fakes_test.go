package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"vidtube/internal/microservices/http-api/models"
	"vidtube/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// memDB backs the in-memory repositories used by the service tests.
type memDB struct {
	mu       sync.Mutex
	seq      int
	base     time.Time
	videos   map[string]bool
	users    map[string]models.User
	comments map[string]models.Comment
	likes    []models.Like

	failLikeList     error
	failUpdateNoop   bool
	failDeleteNoop   bool
	videoLookupErr   error
	createErr        error
	beforeLikeCreate func()
}

func newMemDB() *memDB {
	return &memDB{
		base:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		videos:   make(map[string]bool),
		users:    make(map[string]models.User),
		comments: make(map[string]models.Comment),
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%03d", prefix, db.seq)
}

func (db *memDB) likesFor(commentID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, l := range db.likes {
		if l.CommentID == commentID {
			n++
		}
	}
	return n
}

type memCommentRepo struct{ db *memDB }

func (r *memCommentRepo) Create(_ context.Context, c *models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.createErr != nil {
		return r.db.createErr
	}
	if c.ID == "" {
		c.ID = r.db.nextID("comment")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.db.base.Add(time.Duration(r.db.seq) * time.Minute)
	}
	c.UpdatedAt = c.CreatedAt
	r.db.comments[c.ID] = *c
	return nil
}

func (r *memCommentRepo) GetByID(_ context.Context, id string) (*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memCommentRepo) UpdateContent(_ context.Context, id, content string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok || r.db.failUpdateNoop {
		return repository.ErrNoRowsAffected
	}
	c.Content = content
	c.UpdatedAt = c.UpdatedAt.Add(time.Second)
	r.db.comments[id] = c
	return nil
}

func (r *memCommentRepo) DeleteWithLikes(_ context.Context, id string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok || r.db.failDeleteNoop {
		return 0, repository.ErrNoRowsAffected
	}
	delete(r.db.comments, id)
	kept := r.db.likes[:0]
	var removed int64
	for _, l := range r.db.likes {
		if l.CommentID == id {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	r.db.likes = kept
	return removed, nil
}

func (r *memCommentRepo) CountByVideo(_ context.Context, videoID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, c := range r.db.comments {
		if c.VideoID == videoID {
			n++
		}
	}
	return n, nil
}

func (r *memCommentRepo) ListByVideo(_ context.Context, videoID string, offset, limit int) ([]models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Comment
	for _, c := range r.db.comments {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if offset >= len(out) {
		return []models.Comment{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

type memLikeRepo struct{ db *memDB }

func (r *memLikeRepo) Create(_ context.Context, l *models.Like) error {
	if r.db.beforeLikeCreate != nil {
		r.db.beforeLikeCreate()
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[l.CommentID]; !ok {
		return repository.ErrCommentGone
	}
	for _, existing := range r.db.likes {
		if existing.CommentID == l.CommentID && existing.LikedBy == l.LikedBy {
			return repository.ErrDuplicateLike
		}
	}
	if l.ID == "" {
		l.ID = r.db.nextID("like")
	}
	r.db.likes = append(r.db.likes, *l)
	return nil
}

func (r *memLikeRepo) Find(_ context.Context, commentID, userID string) (*models.Like, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, l := range r.db.likes {
		if l.CommentID == commentID && l.LikedBy == userID {
			found := l
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memLikeRepo) Delete(_ context.Context, commentID, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, l := range r.db.likes {
		if l.CommentID == commentID && l.LikedBy == userID {
			r.db.likes = append(r.db.likes[:i], r.db.likes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNoRowsAffected
}

func (r *memLikeRepo) ListByComments(_ context.Context, ids []string) ([]models.Like, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failLikeList != nil {
		return nil, r.db.failLikeList
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []models.Like{}
	for _, l := range r.db.likes {
		if want[l.CommentID] {
			out = append(out, l)
		}
	}
	return out, nil
}

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) FindProjections(_ context.Context, ids []string) ([]models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type memVideoRepo struct{ db *memDB }

func (r *memVideoRepo) Exists(_ context.Context, id string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.videoLookupErr != nil {
		return false, r.db.videoLookupErr
	}
	return r.db.videos[id], nil
}

var errStoreDown = errors.New("connection refused")

func newTestService(db *memDB) CommentService {
	return NewCommentService(
		&memCommentRepo{db: db},
		&memLikeRepo{db: db},
		&memUserRepo{db: db},
		&memVideoRepo{db: db},
		nil,
	)
}
