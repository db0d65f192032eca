package service

import (
	"context"

	"vidtube/internal/microservices/http-api/dto"
	"vidtube/internal/microservices/http-api/models"
	"vidtube/internal/shared"
)

// ListComments returns one page of a video's comments, newest first, each
// joined with its owner's profile and like state for actor.
func (s *commentService) ListComments(ctx context.Context, videoID string, actor *shared.Actor, page, limit int) (*dto.CommentPage, error) {
	if err := s.ensureVideo(ctx, videoID); err != nil {
		return nil, err
	}
	page, limit = dto.NormalizePagination(page, limit)

	total, err := s.commentRepo.CountByVideo(ctx, videoID)
	if err != nil {
		return nil, Internal("Failed to fetch comments", err)
	}

	// compare page numbers before multiplying so a huge page cannot wrap the offset
	lastPage := (total + int64(limit) - 1) / int64(limit)
	if int64(page-1) >= lastPage {
		return dto.NewCommentPage(nil, total, page, limit), nil
	}
	offset := (page - 1) * limit

	comments, err := s.commentRepo.ListByVideo(ctx, videoID, offset, limit)
	if err != nil {
		return nil, Internal("Failed to fetch comments", err)
	}

	views, err := s.enrich(ctx, comments, actor)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentPage(views, total, page, limit), nil
}

// GetComment returns a single enriched comment.
func (s *commentService) GetComment(ctx context.Context, commentID string, actor *shared.Actor) (*dto.CommentView, error) {
	comment, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, []models.Comment{*comment}, actor)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// enrich joins owners and likes onto comments with one batched query each,
// keeping the input order.
func (s *commentService) enrich(ctx context.Context, comments []models.Comment, actor *shared.Actor) ([]dto.CommentView, error) {
	if len(comments) == 0 {
		return []dto.CommentView{}, nil
	}

	commentIDs := make([]string, 0, len(comments))
	ownerIDs := make([]string, 0, len(comments))
	seenOwner := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		if _, ok := seenOwner[c.OwnerID]; !ok {
			seenOwner[c.OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, c.OwnerID)
		}
	}

	users, err := s.userRepo.FindProjections(ctx, ownerIDs)
	if err != nil {
		return nil, Internal("Failed to fetch comment owners", err)
	}
	owners := make(map[string]*models.User, len(users))
	for i := range users {
		owners[users[i].ID] = &users[i]
	}

	likes, err := s.likeRepo.ListByComments(ctx, commentIDs)
	if err != nil {
		return nil, Internal("Failed to fetch comment likes", err)
	}
	likeCounts := make(map[string]int, len(comments))
	likedByActor := make(map[string]bool)
	for _, l := range likes {
		likeCounts[l.CommentID]++
		if actor != nil && l.LikedBy == actor.UserID {
			likedByActor[l.CommentID] = true
		}
	}

	views := make([]dto.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, dto.CommentView{
			ID:         c.ID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt,
			LikesCount: likeCounts[c.ID],
			Owner:      dto.FromModelToOwnerView(owners[c.OwnerID]),
			IsLiked:    likedByActor[c.ID],
		})
	}
	return views, nil
}
