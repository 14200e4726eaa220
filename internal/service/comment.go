package service

import (
	"context"
	"errors"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/store"
)

// AddComment attaches a comment by the caller to a PRD they can read.
func (s *PRDService) AddComment(ctx context.Context, request *v1.AddCommentRequest) (*v1.AddCommentResponse, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	prd, err := s.visiblePRD(ctx, request.PrdId, store.Include{})
	if err != nil {
		return nil, toStatus(err)
	}

	comment := &model.Comment{PRDID: prd.ID, AuthorID: user.ID, Content: request.Content}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, toStatus(err)
	}

	return &v1.AddCommentResponse{Comment: toComment(comment)}, nil
}

func (s *PRDService) ListComments(ctx context.Context, request *v1.ListCommentsRequest) (*v1.ListCommentsResponse, error) {
	prd, err := s.visiblePRD(ctx, request.PrdId, store.Include{})
	if err != nil {
		return nil, toStatus(err)
	}

	comments, total, err := s.store.ListComments(ctx, prd.ID, store.ListOptions{Skip: int(request.Skip), Take: int(request.Take)})
	if err != nil {
		return nil, toStatus(err)
	}

	res := &v1.ListCommentsResponse{Comments: make([]*v1.Comment, 0, len(comments)), Total: total}
	for _, comment := range comments {
		res.Comments = append(res.Comments, toComment(comment))
	}

	return res, nil
}

// DeleteComment removes a comment on a PRD the caller can read. Only its
// author may delete it.
func (s *PRDService) DeleteComment(ctx context.Context, request *v1.DeleteCommentRequest) (*v1.DeleteCommentResponse, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	prd, err := s.visiblePRD(ctx, request.PrdId, store.Include{})
	if err != nil {
		return nil, toStatus(err)
	}

	comment, err := s.store.GetComment(ctx, prd.ID, request.CommentId)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, toStatus(ErrCommentNotFound)
		}
		return nil, toStatus(err)
	}

	if comment.AuthorID != user.ID {
		return nil, toStatus(ErrForbidden)
	}

	if err := s.store.DeleteComment(ctx, comment.ID); err != nil {
		return nil, toStatus(err)
	}

	return &v1.DeleteCommentResponse{}, nil
}
