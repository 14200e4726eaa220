package store

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/prd/internal/model"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrConflict       = errors.New("record conflicts with an existing record")
	ErrInvalidOrderBy = errors.New("unsupported order by field")
)

type Store interface {
	UserStore
	PRDStore
	SectionStore
	DocumentContentStore
	VersionStore
	CommentStore
	// Transaction runs f with a store bound to one database transaction. The
	// transaction commits when f returns nil and rolls back otherwise.
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type UserStore interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *model.User) error
	// UpsertUser creates the user or refreshes the email and name of the user
	// with the same clerk id. user is reloaded from the database.
	UpsertUser(ctx context.Context, user *model.User) error
	// GetUserByClerkID retrieves a user by the identity provider's subject id.
	GetUserByClerkID(ctx context.Context, clerkUserID string) (*model.User, error)
}

type PRDStore interface {
	// CreatePRD creates the prd row only; related records are created separately.
	CreatePRD(ctx context.Context, prd *model.PRD) error
	// GetPRD retrieves a prd by ID with the requested relations.
	GetPRD(ctx context.Context, id string, include Include) (*model.PRD, error)
	// ListPRDs retrieves a page of prds matching the filter and the total match count.
	ListPRDs(ctx context.Context, filter PRDFilter, opts ListOptions, include Include) ([]*model.PRD, int64, error)
	// UpdatePRD saves the prd row without touching its relations.
	UpdatePRD(ctx context.Context, prd *model.PRD) error
	// TouchPRD sets only the last edited time of the prd.
	TouchPRD(ctx context.Context, id string, at time.Time) error
	// DeletePRD deletes a prd together with its sections, content, versions and comments.
	DeletePRD(ctx context.Context, id string) error
	// CountPRDsByStatus counts the prds matching the filter grouped by status.
	CountPRDsByStatus(ctx context.Context, filter PRDFilter) (map[model.Status]int64, error)
}

type SectionStore interface {
	// CreateSections creates the sections in one statement.
	CreateSections(ctx context.Context, sections []*model.Section) error
	// ListSections retrieves the sections of a prd by order.
	ListSections(ctx context.Context, prdID string) ([]*model.Section, error)
	// GetSection retrieves a section of a prd.
	GetSection(ctx context.Context, prdID, id string) (*model.Section, error)
	// UpdateSection saves the title and content of a section.
	UpdateSection(ctx context.Context, section *model.Section) error
	// ReorderSections gives the section ids[i] the order i. ids must name every
	// section of the prd exactly once.
	ReorderSections(ctx context.Context, prdID string, ids []string) error
}

type DocumentContentStore interface {
	// CreateDocumentContent creates the content of a prd.
	CreateDocumentContent(ctx context.Context, content *model.DocumentContent) error
	// GetDocumentContent retrieves the content of a prd.
	GetDocumentContent(ctx context.Context, prdID string) (*model.DocumentContent, error)
	// UpsertDocumentContent creates or replaces the content of a prd.
	UpsertDocumentContent(ctx context.Context, content *model.DocumentContent) error
	// ListPendingHTML retrieves the oldest contents that have no html yet.
	ListPendingHTML(ctx context.Context, limit int) ([]*model.DocumentContent, error)
	// UpdateHTMLContent stores html for the content if its markdown is still
	// the one that was rendered. It reports whether a row was updated.
	UpdateHTMLContent(ctx context.Context, id, markdown, html string) (bool, error)
}

type VersionStore interface {
	// CreateVersion creates a new version. Versions are never updated.
	CreateVersion(ctx context.Context, version *model.Version) error
	// NextVersionNumber returns one more than the highest version number of the prd.
	NextVersionNumber(ctx context.Context, prdID string) (int32, error)
	// ListVersions retrieves the versions of a prd by version number.
	ListVersions(ctx context.Context, prdID string) ([]*model.Version, error)
	// GetVersion retrieves a version of a prd by number.
	GetVersion(ctx context.Context, prdID string, number int32) (*model.Version, error)
}

type CommentStore interface {
	// CreateComment creates a new comment.
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListComments retrieves a page of the comments of a prd, oldest first.
	ListComments(ctx context.Context, prdID string, opts ListOptions) ([]*model.Comment, int64, error)
	// GetComment retrieves a comment of a prd.
	GetComment(ctx context.Context, prdID, id string) (*model.Comment, error)
	// DeleteComment deletes a comment by ID.
	DeleteComment(ctx context.Context, id string) error
}

// PRDFilter narrows prd queries. Zero fields do not filter.
type PRDFilter struct {
	AuthorID      string
	Statuses      []model.Status
	Search        string // case-insensitive substring of title or description
	IsPublic      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

const (
	DefaultTake = 20
	MaxTake     = 100
)

const (
	NullsDefault = ""
	NullsFirst   = "first"
	NullsLast    = "last"
)

// ListOptions pages and sorts a query. OrderBy takes api field names.
type ListOptions struct {
	Skip    int
	Take    int
	OrderBy string
	Desc    bool
	Nulls   string
}

func (o ListOptions) limit() int {
	switch {
	case o.Take <= 0:
		return DefaultTake
	case o.Take > MaxTake:
		return MaxTake
	}
	return o.Take
}

// Include selects the relations loaded with a prd.
type Include struct {
	Author   bool
	Sections bool
	Content  bool
	Versions bool
	Comments bool
}

var IncludeAll = Include{Author: true, Sections: true, Content: true, Versions: true, Comments: true}
