package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/cache"
	"github.com/emrgen/prd/internal/compress"
	"github.com/emrgen/prd/internal/generation"
	"github.com/emrgen/prd/internal/identity"
	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/prompt"
	"github.com/emrgen/prd/internal/queue"
	"github.com/emrgen/prd/internal/store"
	"github.com/sirupsen/logrus"
)

var (
	_ v1.PRDServiceServer = (*PRDService)(nil)
)

// NewPRDService creates a new PRDService.
func NewPRDService(store store.Store, generator generation.Generator, cache cache.DashboardCache, events queue.EventQueue, compress compress.Compress) *PRDService {
	return &PRDService{
		store:     store,
		generator: generator,
		cache:     cache,
		events:    events,
		compress:  compress,
	}
}

// PRDService creates, generates and manages PRDs.
type PRDService struct {
	store     store.Store
	generator generation.Generator
	cache     cache.DashboardCache
	events    queue.EventQueue
	compress  compress.Compress
	v1.UnimplementedPRDServiceServer
}

// Create generates a PRD for the caller and stores it with one section per
// page and the generated document. Generation happens before anything is
// written; the PRD, its sections and its content are written in one
// transaction so a failure leaves no rows behind.
func (s *PRDService) Create(ctx context.Context, caller *identity.Caller, input *v1.ProjectInput) (string, error) {
	if caller == nil {
		return "", ErrUnauthorized
	}

	user, err := s.store.GetUserByClerkID(ctx, caller.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, caller.Subject)
		}
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := input.CheckRequired(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	markdown, err := s.generator.Generate(ctx, generation.NewRequest(prompt.InputFromRequest(input)))
	if err != nil {
		return "", err
	}

	now := time.Now()
	prd := &model.PRD{
		Title:              input.Title,
		ProjectDescription: input.ProjectDescription,
		TechStack:          input.TechStack,
		Status:             model.StatusDraft,
		AuthorID:           user.ID,
		LastEditedAt:       now,
		PageCount:          int32(len(input.Pages)),
		IsPublic:           false,
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreatePRD(ctx, prd); err != nil {
			return err
		}

		sections := make([]*model.Section, 0, len(input.Pages))
		for i, page := range input.Pages {
			sections = append(sections, &model.Section{
				PRDID:   prd.ID,
				Title:   page.Name,
				Content: page.Functionality,
				Order:   int32(i),
			})
		}
		if err := tx.CreateSections(ctx, sections); err != nil {
			return err
		}

		html := ""
		return tx.CreateDocumentContent(ctx, &model.DocumentContent{
			PRDID:           prd.ID,
			MarkdownContent: markdown,
			HTMLContent:     &html,
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	logrus.Infof("created prd %s for user %s", prd.ID, user.ID)
	s.changed(ctx, queue.PRDCreated, prd.ID, user.ID)

	return prd.ID, nil
}

// CreatePRD never fails at the transport level: every failure is logged and
// reported as {success: false}.
func (s *PRDService) CreatePRD(ctx context.Context, request *v1.CreatePRDRequest) (*v1.CreatePRDResponse, error) {
	prdID, err := s.Create(ctx, identity.FromContext(ctx), &request.ProjectInput)
	if err != nil {
		logrus.Errorf("Failed to create PRD: %v", err)
		return &v1.CreatePRDResponse{Success: false, Error: ErrCreationFailed.Error()}, nil
	}

	return &v1.CreatePRDResponse{Success: true, PrdId: prdID}, nil
}

// GeneratePRD returns the generated markdown without storing anything.
func (s *PRDService) GeneratePRD(ctx context.Context, request *v1.GeneratePRDRequest) (*v1.GeneratePRDResponse, error) {
	logrus.Infof("generating prd for %q", request.Title)

	markdown, err := s.Generate(ctx, &request.ProjectInput)
	if err != nil {
		logrus.Errorf("Failed to generate PRD: %v", err)
		return nil, toStatus(err)
	}

	return &v1.GeneratePRDResponse{Markdown: markdown}, nil
}

// Generate builds the prompt for input and returns the generated markdown.
func (s *PRDService) Generate(ctx context.Context, input *v1.ProjectInput) (string, error) {
	return s.generator.Generate(ctx, generation.NewRequest(prompt.InputFromRequest(input)))
}

func (s *PRDService) GetPRD(ctx context.Context, request *v1.GetPRDRequest) (*v1.GetPRDResponse, error) {
	include := store.Include{
		Author:   request.IncludeAuthor,
		Sections: request.IncludeSections,
		Content:  request.IncludeContent,
	}

	prd, err := s.visiblePRD(ctx, request.PrdId, include)
	if err != nil {
		return nil, toStatus(err)
	}

	return &v1.GetPRDResponse{Prd: toPRD(prd)}, nil
}

// ListPRDs lists the caller's PRDs. The unfiltered first page is the
// dashboard listing and is served from the cache when possible.
func (s *PRDService) ListPRDs(ctx context.Context, request *v1.ListPRDsRequest) (*v1.ListPRDsResponse, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	dashboard := request.IsDefault()
	var version int64
	if dashboard {
		cached, err := s.cache.GetDashboard(ctx, user.ID)
		if err != nil {
			logrus.Warnf("dashboard cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}

		// taken before the query so a listing raced by an edit is not cached
		if version, err = s.cache.DashboardVersion(ctx, user.ID); err != nil {
			logrus.Warnf("dashboard cache read failed: %v", err)
			dashboard = false
		}
	}

	filter := store.PRDFilter{
		AuthorID: user.ID,
		Search:   request.Search,
		IsPublic: request.IsPublic,
	}
	for _, st := range request.Status {
		filter.Statuses = append(filter.Statuses, model.Status(st))
	}

	opts := store.ListOptions{
		Skip:    int(request.Skip),
		Take:    int(request.Take),
		OrderBy: request.OrderBy,
		Desc:    request.Direction != "asc",
		Nulls:   request.Nulls,
	}

	prds, total, err := s.store.ListPRDs(ctx, filter, opts, store.Include{})
	if err != nil {
		return nil, toStatus(err)
	}

	res := &v1.ListPRDsResponse{Prds: make([]*v1.PRD, 0, len(prds)), Total: total}
	for _, prd := range prds {
		res.Prds = append(res.Prds, toPRD(prd))
	}

	if dashboard {
		if err := s.cache.SetDashboard(ctx, user.ID, version, res); err != nil {
			logrus.Warnf("dashboard cache write failed: %v", err)
		}
	}

	return res, nil
}

func (s *PRDService) UpdatePRD(ctx context.Context, request *v1.UpdatePRDRequest) (*v1.UpdatePRDResponse, error) {
	prd, user, err := s.ownedPRD(ctx, request.PrdId)
	if err != nil {
		return nil, toStatus(err)
	}

	if request.Title != nil {
		prd.Title = *request.Title
	}
	if request.ProjectDescription != nil {
		prd.ProjectDescription = *request.ProjectDescription
	}
	if request.TechStack != nil {
		prd.TechStack = request.TechStack
	}
	if request.Status != nil {
		prd.Status = model.Status(*request.Status)
	}
	if request.IsPublic != nil {
		prd.IsPublic = *request.IsPublic
	}
	prd.LastEditedAt = time.Now()

	if err := s.store.UpdatePRD(ctx, prd); err != nil {
		return nil, toStatus(err)
	}

	s.changed(ctx, queue.PRDUpdated, prd.ID, user.ID)

	return &v1.UpdatePRDResponse{Prd: toPRD(prd)}, nil
}

// DeletePRD removes the PRD and everything attached to it. Only the author may delete.
func (s *PRDService) DeletePRD(ctx context.Context, request *v1.DeletePRDRequest) (*v1.DeletePRDResponse, error) {
	prd, user, err := s.ownedPRD(ctx, request.PrdId)
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.store.DeletePRD(ctx, prd.ID); err != nil {
		return nil, toStatus(err)
	}

	s.changed(ctx, queue.PRDDeleted, prd.ID, user.ID)

	return &v1.DeletePRDResponse{}, nil
}

func (s *PRDService) GetDashboardStats(ctx context.Context, request *v1.GetDashboardStatsRequest) (*v1.GetDashboardStatsResponse, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	cached, err := s.cache.GetStats(ctx, user.ID)
	if err != nil {
		logrus.Warnf("dashboard cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	version, err := s.cache.DashboardVersion(ctx, user.ID)
	cacheable := err == nil
	if err != nil {
		logrus.Warnf("dashboard cache read failed: %v", err)
	}

	counts, err := s.store.CountPRDsByStatus(ctx, store.PRDFilter{AuthorID: user.ID})
	if err != nil {
		return nil, toStatus(err)
	}

	res := &v1.GetDashboardStatsResponse{ByStatus: map[v1.PRDStatus]int64{
		v1.PRDStatusDraft:     0,
		v1.PRDStatusCompleted: 0,
		v1.PRDStatusArchived:  0,
	}}
	for st, count := range counts {
		res.ByStatus[v1.PRDStatus(st)] = count
		res.Total += count
	}

	if cacheable {
		if err := s.cache.SetStats(ctx, user.ID, version, res); err != nil {
			logrus.Warnf("dashboard cache write failed: %v", err)
		}
	}

	return res, nil
}

// currentUser resolves the local user of the authenticated caller.
func (s *PRDService) currentUser(ctx context.Context) (*model.User, error) {
	caller := identity.FromContext(ctx)
	if caller == nil {
		return nil, ErrUnauthorized
	}

	user, err := s.store.GetUserByClerkID(ctx, caller.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// visiblePRD loads a PRD the caller may read: one they wrote or a public one.
// Hidden PRDs are reported as missing.
func (s *PRDService) visiblePRD(ctx context.Context, id string, include store.Include) (*model.PRD, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	prd, err := s.store.GetPRD(ctx, id, include)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPRDNotFound
		}
		return nil, err
	}

	if prd.AuthorID != user.ID && !prd.IsPublic {
		return nil, ErrPRDNotFound
	}

	return prd, nil
}

// ownedPRD loads a PRD the caller wrote.
func (s *PRDService) ownedPRD(ctx context.Context, id string) (*model.PRD, *model.User, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, nil, err
	}

	prd, err := s.store.GetPRD(ctx, id, store.Include{})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrPRDNotFound
		}
		return nil, nil, err
	}

	if prd.AuthorID != user.ID {
		if prd.IsPublic {
			return nil, nil, ErrForbidden
		}
		return nil, nil, ErrPRDNotFound
	}

	return prd, user, nil
}

// changed runs after a committed change to one of the author's PRDs. Neither
// step can fail the request.
func (s *PRDService) changed(ctx context.Context, kind queue.EventType, prdID, authorID string) {
	if err := s.cache.InvalidateDashboard(ctx, authorID); err != nil {
		logrus.Errorf("failed to invalidate dashboard of %s: %v", authorID, err)
	}

	if err := s.events.Publish(ctx, queue.NewEvent(kind, prdID, authorID)); err != nil {
		logrus.Errorf("failed to publish %s for prd %s: %v", kind, prdID, err)
	}
}

// touch records an edit of the PRD's content. Other columns of the row are
// left as they are in the database.
func touch(ctx context.Context, tx store.Store, prd *model.PRD) error {
	prd.LastEditedAt = time.Now()
	return tx.TouchPRD(ctx, prd.ID, prd.LastEditedAt)
}
