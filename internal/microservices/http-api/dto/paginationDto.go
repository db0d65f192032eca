package dto

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// CommentPage mirrors the paginate plugin shape clients already consume.
// PrevPage and NextPage are null at the edges.
type CommentPage struct {
	Docs          []CommentView `json:"docs"`
	TotalDocs     int64         `json:"totalDocs"`
	Limit         int           `json:"limit"`
	Page          int           `json:"page"`
	TotalPages    int           `json:"totalPages"`
	PagingCounter int           `json:"pagingCounter"`
	HasPrevPage   bool          `json:"hasPrevPage"`
	HasNextPage   bool          `json:"hasNextPage"`
	PrevPage      *int          `json:"prevPage"`
	NextPage      *int          `json:"nextPage"`
}

// NewCommentPage fills in the derived pagination fields.
func NewCommentPage(docs []CommentView, total int64, page, limit int) *CommentPage {
	if docs == nil {
		docs = []CommentView{}
	}
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	p := &CommentPage{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: pagingCounter(page, limit),
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

// pagingCounter is the 1-based position of the first doc on page. It
// saturates at math.MaxInt instead of wrapping for absurd page numbers.
func pagingCounter(page, limit int) int {
	if page-1 > (math.MaxInt-1)/limit {
		return math.MaxInt
	}
	return (page-1)*limit + 1
}

// ParsePagination coerces raw query values. Anything that is not a positive
// integer falls back to the default.
func ParsePagination(pageRaw, limitRaw string) (page, limit int) {
	return NormalizePagination(positiveOr(pageRaw, DefaultPage), positiveOr(limitRaw, DefaultLimit))
}

// NormalizePagination applies the same defaults to already parsed values.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
