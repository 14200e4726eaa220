package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/compress"
	"github.com/emrgen/prd/internal/generation"
	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/prompt"
	"github.com/emrgen/prd/internal/queue"
	"github.com/emrgen/prd/internal/store"
	"github.com/sirupsen/logrus"
)

// CreateVersion snapshots the sections and document of a PRD as its next version.
func (s *PRDService) CreateVersion(ctx context.Context, request *v1.CreateVersionRequest) (*v1.CreateVersionResponse, error) {
	prd, user, err := s.ownedPRD(ctx, request.PrdId)
	if err != nil {
		return nil, toStatus(err)
	}

	var version *model.Version
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		created, err := s.snapshot(ctx, tx, prd.ID)
		version = created
		return err
	})
	if err != nil {
		return nil, toStatus(err)
	}

	s.changed(ctx, queue.PRDUpdated, prd.ID, user.ID)

	res, err := s.toVersion(version, true)
	if err != nil {
		return nil, toStatus(err)
	}

	return &v1.CreateVersionResponse{Version: res}, nil
}

// ListVersions lists the versions of a PRD without their content.
func (s *PRDService) ListVersions(ctx context.Context, request *v1.ListVersionsRequest) (*v1.ListVersionsResponse, error) {
	prd, err := s.visiblePRD(ctx, request.PrdId, store.Include{})
	if err != nil {
		return nil, toStatus(err)
	}

	versions, err := s.store.ListVersions(ctx, prd.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	res := &v1.ListVersionsResponse{Versions: make([]*v1.Version, 0, len(versions))}
	for _, version := range versions {
		v, err := s.toVersion(version, false)
		if err != nil {
			return nil, toStatus(err)
		}
		res.Versions = append(res.Versions, v)
	}

	return res, nil
}

func (s *PRDService) GetVersion(ctx context.Context, request *v1.GetVersionRequest) (*v1.GetVersionResponse, error) {
	prd, err := s.visiblePRD(ctx, request.PrdId, store.Include{})
	if err != nil {
		return nil, toStatus(err)
	}

	version, err := s.store.GetVersion(ctx, prd.ID, request.VersionNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, toStatus(ErrVersionNotFound)
		}
		return nil, toStatus(err)
	}

	res, err := s.toVersion(version, true)
	if err != nil {
		return nil, toStatus(err)
	}

	return &v1.GetVersionResponse{Version: res}, nil
}

// RegeneratePRD generates the document again from the PRD's current fields
// and sections. The replaced document is kept as a new version.
func (s *PRDService) RegeneratePRD(ctx context.Context, request *v1.RegeneratePRDRequest) (*v1.RegeneratePRDResponse, error) {
	prd, user, err := s.ownedPRD(ctx, request.PrdId)
	if err != nil {
		return nil, toStatus(err)
	}

	sections, err := s.store.ListSections(ctx, prd.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	prd.Sections = sections

	markdown, err := s.generator.Generate(ctx, generation.NewRequest(prompt.InputFromPRD(prd)))
	if err != nil {
		logrus.Errorf("Failed to regenerate PRD %s: %v", prd.ID, err)
		return nil, toStatus(err)
	}

	var snapshot *model.Version
	var content *model.DocumentContent
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetDocumentContent(ctx, prd.ID); err == nil {
			if snapshot, err = s.snapshot(ctx, tx, prd.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		html := ""
		content = &model.DocumentContent{PRDID: prd.ID, MarkdownContent: markdown, HTMLContent: &html}
		if err := tx.UpsertDocumentContent(ctx, content); err != nil {
			return err
		}

		if err := touch(ctx, tx, prd); err != nil {
			return err
		}

		// the row may have been edited while the document was generated
		fresh, err := tx.GetPRD(ctx, prd.ID, store.Include{})
		if err != nil {
			return err
		}
		prd = fresh
		return nil
	})
	if err != nil {
		return nil, toStatus(err)
	}

	s.changed(ctx, queue.PRDRegenerated, prd.ID, user.ID)

	res := &v1.RegeneratePRDResponse{}
	res.Prd = toPRD(prd)
	res.Prd.Sections = toSections(sections)
	res.Prd.CurrentContent = toContent(content)
	if snapshot != nil {
		if res.Snapshot, err = s.toVersion(snapshot, false); err != nil {
			return nil, toStatus(err)
		}
	}

	return res, nil
}

// snapshot appends a version holding the PRD's current sections (as json) and
// markdown. Two snapshots racing for the same number fail with store.ErrConflict.
func (s *PRDService) snapshot(ctx context.Context, tx store.Store, prdID string) (*model.Version, error) {
	markdown := ""
	content, err := tx.GetDocumentContent(ctx, prdID)
	switch {
	case err == nil:
		markdown = content.MarkdownContent
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	sections, err := tx.ListSections(ctx, prdID)
	if err != nil {
		return nil, err
	}
	sectionsJSON, err := json.Marshal(toSections(sections))
	if err != nil {
		return nil, err
	}

	encodedSections, err := compress.EncodeString(s.compress, string(sectionsJSON))
	if err != nil {
		return nil, err
	}
	encodedMarkdown, err := compress.EncodeString(s.compress, markdown)
	if err != nil {
		return nil, err
	}

	next, err := tx.NextVersionNumber(ctx, prdID)
	if err != nil {
		return nil, err
	}

	version := &model.Version{
		PRDID:           prdID,
		VersionNumber:   next,
		Content:         encodedSections,
		MarkdownContent: encodedMarkdown,
		Compression:     s.compress.Name(),
	}
	if err := tx.CreateVersion(ctx, version); err != nil {
		return nil, err
	}

	logrus.Infof("created version %d of prd %s", next, prdID)
	return version, nil
}

// toVersion decodes a stored version with the codec it was written with.
func (s *PRDService) toVersion(version *model.Version, withContent bool) (*v1.Version, error) {
	res := &v1.Version{
		Id:            version.ID,
		PrdId:         version.PRDID,
		VersionNumber: version.VersionNumber,
		CreatedAt:     version.CreatedAt,
	}
	if !withContent {
		return res, nil
	}

	codec, err := compress.New(version.Compression)
	if err != nil {
		return nil, fmt.Errorf("version %d: %w", version.VersionNumber, err)
	}
	if res.Content, err = compress.DecodeString(codec, version.Content); err != nil {
		return nil, err
	}
	if res.MarkdownContent, err = compress.DecodeString(codec, version.MarkdownContent); err != nil {
		return nil, err
	}

	return res, nil
}
