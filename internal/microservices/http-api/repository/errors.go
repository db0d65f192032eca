package repository

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNoRowsAffected is returned when a write matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
	// ErrDuplicateLike is returned when the (comment, user) like already exists.
	ErrDuplicateLike = errors.New("comment already liked by user")
	// ErrCommentGone is returned when a like points at a comment that no longer exists.
	ErrCommentGone = errors.New("comment does not exist")
)

// validID reports whether id can be used as a uuid column value.
// Anything else cannot match a row, so callers treat it as not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}
