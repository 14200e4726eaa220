package service

import (
	"context"
	"errors"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/queue"
	"github.com/emrgen/prd/internal/store"
)

func (s *PRDService) UpdateSection(ctx context.Context, request *v1.UpdateSectionRequest) (*v1.UpdateSectionResponse, error) {
	prd, user, err := s.ownedPRD(ctx, request.PrdId)
	if err != nil {
		return nil, toStatus(err)
	}

	var section *model.Section
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		found, err := tx.GetSection(ctx, prd.ID, request.SectionId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSectionNotFound
			}
			return err
		}
		section = found

		if request.Title != nil {
			section.Title = *request.Title
		}
		if request.Content != nil {
			section.Content = *request.Content
		}
		if err := tx.UpdateSection(ctx, section); err != nil {
			return err
		}

		return touch(ctx, tx, prd)
	})
	if err != nil {
		return nil, toStatus(err)
	}

	s.changed(ctx, queue.PRDUpdated, prd.ID, user.ID)

	return &v1.UpdateSectionResponse{Section: toSection(section)}, nil
}

// ReorderSections applies a new display order. The request must be a
// permutation of the PRD's section ids; orders stay 0..n-1.
func (s *PRDService) ReorderSections(ctx context.Context, request *v1.ReorderSectionsRequest) (*v1.ReorderSectionsResponse, error) {
	prd, user, err := s.ownedPRD(ctx, request.PrdId)
	if err != nil {
		return nil, toStatus(err)
	}

	var sections []*model.Section
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		current, err := tx.ListSections(ctx, prd.ID)
		if err != nil {
			return err
		}
		if !isPermutation(current, request.SectionIds) {
			return ErrInvalidOrder
		}

		if err := tx.ReorderSections(ctx, prd.ID, request.SectionIds); err != nil {
			return err
		}
		if err := touch(ctx, tx, prd); err != nil {
			return err
		}

		sections, err = tx.ListSections(ctx, prd.ID)
		return err
	})
	if err != nil {
		return nil, toStatus(err)
	}

	s.changed(ctx, queue.PRDUpdated, prd.ID, user.ID)

	return &v1.ReorderSectionsResponse{Sections: toSections(sections)}, nil
}

func isPermutation(sections []*model.Section, ids []string) bool {
	if len(sections) != len(ids) {
		return false
	}

	remaining := make(map[string]struct{}, len(sections))
	for _, section := range sections {
		remaining[section.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := remaining[id]; !ok {
			return false
		}
		delete(remaining, id)
	}

	return len(remaining) == 0
}
