package v1

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PRDStatus is the lifecycle state of a PRD.
type PRDStatus string

const (
	PRDStatusDraft     PRDStatus = "DRAFT"
	PRDStatusCompleted PRDStatus = "COMPLETED"
	PRDStatusArchived  PRDStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s PRDStatus) Valid() bool {
	switch s {
	case PRDStatusDraft, PRDStatusCompleted, PRDStatusArchived:
		return true
	}
	return false
}

var (
	ErrMissingPrdID   = errors.New("prdId is required")
	ErrMissingContent = errors.New("content is required")
)

// Page is a single page of the project the user wants documented.
type Page struct {
	Name          string `json:"name"`
	Functionality string `json:"functionality"`
}

// ProjectInput is the project description submitted from the creation form.
type ProjectInput struct {
	Title              string   `json:"title"`
	ProjectDescription string   `json:"projectDescription"`
	TechStack          []string `json:"techStack"`
	Pages              []*Page  `json:"pages"`
}

// CheckRequired returns an error naming the first missing required field.
func (p *ProjectInput) CheckRequired() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(p.ProjectDescription) == "" {
		return errors.New("projectDescription is required")
	}
	if len(p.TechStack) == 0 {
		return errors.New("techStack must contain at least one entry")
	}
	if len(p.Pages) == 0 {
		return errors.New("pages must contain at least one page")
	}
	for i, page := range p.Pages {
		if page == nil || strings.TrimSpace(page.Name) == "" {
			return fmt.Errorf("pages[%d].name is required", i)
		}
		if strings.TrimSpace(page.Functionality) == "" {
			return fmt.Errorf("pages[%d].functionality is required", i)
		}
	}
	return nil
}

// CreatePRDRequest intentionally has no Validate method: CreatePRD reports
// every failure, including missing fields, in its response body.
type CreatePRDRequest struct {
	ProjectInput
}

type CreatePRDResponse struct {
	Success bool   `json:"success"`
	PrdId   string `json:"prdId,omitempty"`
	Error   string `json:"error,omitempty"`
}

type GeneratePRDRequest struct {
	ProjectInput
}

func (r *GeneratePRDRequest) Validate() error {
	return r.CheckRequired()
}

type GeneratePRDResponse struct {
	Markdown string `json:"markdown"`
}

type User struct {
	Id          string    `json:"id"`
	ClerkUserId string    `json:"clerkUserId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Section struct {
	Id        string    `json:"id"`
	PrdId     string    `json:"prdId"`
	Title     string    `json:"title"`
	Order     int32     `json:"order"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DocumentContent struct {
	Id              string    `json:"id"`
	PrdId           string    `json:"prdId"`
	MarkdownContent string    `json:"markdownContent"`
	HtmlContent     *string   `json:"htmlContent"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type PRD struct {
	Id                 string           `json:"id"`
	Title              string           `json:"title"`
	ProjectDescription string           `json:"projectDescription"`
	TechStack          []string         `json:"techStack"`
	Status             PRDStatus        `json:"status"`
	AuthorId           string           `json:"authorId"`
	PageCount          int32            `json:"pageCount"`
	IsPublic           bool             `json:"isPublic"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
	LastEditedAt       time.Time        `json:"lastEditedAt"`
	Author             *User            `json:"author,omitempty"`
	Sections           []*Section       `json:"sections,omitempty"`
	CurrentContent     *DocumentContent `json:"currentContent,omitempty"`
}

type Version struct {
	Id              string    `json:"id"`
	PrdId           string    `json:"prdId"`
	VersionNumber   int32     `json:"versionNumber"`
	Content         string    `json:"content,omitempty"`
	MarkdownContent string    `json:"markdownContent,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Comment struct {
	Id        string    `json:"id"`
	PrdId     string    `json:"prdId"`
	AuthorId  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GetPRDRequest struct {
	PrdId           string `json:"prdId"`
	IncludeAuthor   bool   `json:"includeAuthor,omitempty"`
	IncludeSections bool   `json:"includeSections,omitempty"`
	IncludeContent  bool   `json:"includeContent,omitempty"`
}

func (r *GetPRDRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	return nil
}

type GetPRDResponse struct {
	Prd *PRD `json:"prd"`
}

// ListPRDsRequest filters the caller's own PRDs. Direction is "asc" or
// "desc"; Nulls is "first" or "last".
type ListPRDsRequest struct {
	Status    []PRDStatus `json:"status,omitempty"`
	Search    string      `json:"search,omitempty"`
	IsPublic  *bool       `json:"isPublic,omitempty"`
	Skip      int32       `json:"skip,omitempty"`
	Take      int32       `json:"take,omitempty"`
	OrderBy   string      `json:"orderBy,omitempty"`
	Direction string      `json:"direction,omitempty"`
	Nulls     string      `json:"nulls,omitempty"`
}

func (r *ListPRDsRequest) Validate() error {
	for _, s := range r.Status {
		if !s.Valid() {
			return fmt.Errorf("unknown status %q", s)
		}
	}
	if r.Skip < 0 || r.Take < 0 {
		return errors.New("skip and take must not be negative")
	}
	switch r.Direction {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("unknown direction %q", r.Direction)
	}
	switch r.Nulls {
	case "", "first", "last":
	default:
		return fmt.Errorf("unknown nulls ordering %q", r.Nulls)
	}
	return nil
}

// IsDefault reports whether the request asks for the unfiltered first page,
// which is the listing shown on the dashboard.
func (r *ListPRDsRequest) IsDefault() bool {
	return len(r.Status) == 0 && r.Search == "" && r.IsPublic == nil &&
		r.Skip == 0 && r.Take == 0 && r.OrderBy == "" && r.Direction == "" && r.Nulls == ""
}

type ListPRDsResponse struct {
	Prds  []*PRD `json:"prds"`
	Total int64  `json:"total"`
}

// UpdatePRDRequest changes only the fields that are set.
type UpdatePRDRequest struct {
	PrdId              string     `json:"prdId"`
	Title              *string    `json:"title,omitempty"`
	ProjectDescription *string    `json:"projectDescription,omitempty"`
	TechStack          []string   `json:"techStack,omitempty"`
	Status             *PRDStatus `json:"status,omitempty"`
	IsPublic           *bool      `json:"isPublic,omitempty"`
}

func (r *UpdatePRDRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}
	if r.ProjectDescription != nil && strings.TrimSpace(*r.ProjectDescription) == "" {
		return errors.New("projectDescription must not be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("unknown status %q", *r.Status)
	}
	return nil
}

type UpdatePRDResponse struct {
	Prd *PRD `json:"prd"`
}

type DeletePRDRequest struct {
	PrdId string `json:"prdId"`
}

func (r *DeletePRDRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	return nil
}

type DeletePRDResponse struct{}

type RegeneratePRDRequest struct {
	PrdId string `json:"prdId"`
}

func (r *RegeneratePRDRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	return nil
}

type RegeneratePRDResponse struct {
	Prd *PRD `json:"prd"`
	// Snapshot is the version holding the content that was replaced, if any.
	Snapshot *Version `json:"snapshot,omitempty"`
}

type UpdateSectionRequest struct {
	PrdId     string  `json:"prdId"`
	SectionId string  `json:"sectionId"`
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
}

func (r *UpdateSectionRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	if r.SectionId == "" {
		return errors.New("sectionId is required")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}
	return nil
}

type UpdateSectionResponse struct {
	Section *Section `json:"section"`
}

// ReorderSectionsRequest lists every section id of the PRD in its new order.
type ReorderSectionsRequest struct {
	PrdId      string   `json:"prdId"`
	SectionIds []string `json:"sectionIds"`
}

func (r *ReorderSectionsRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	if len(r.SectionIds) == 0 {
		return errors.New("sectionIds is required")
	}
	return nil
}

type ReorderSectionsResponse struct {
	Sections []*Section `json:"sections"`
}

type CreateVersionRequest struct {
	PrdId string `json:"prdId"`
}

func (r *CreateVersionRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	return nil
}

type CreateVersionResponse struct {
	Version *Version `json:"version"`
}

type ListVersionsRequest struct {
	PrdId string `json:"prdId"`
}

func (r *ListVersionsRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	return nil
}

type ListVersionsResponse struct {
	Versions []*Version `json:"versions"`
}

type GetVersionRequest struct {
	PrdId         string `json:"prdId"`
	VersionNumber int32  `json:"versionNumber"`
}

func (r *GetVersionRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	if r.VersionNumber <= 0 {
		return errors.New("versionNumber must be positive")
	}
	return nil
}

type GetVersionResponse struct {
	Version *Version `json:"version"`
}

type AddCommentRequest struct {
	PrdId   string `json:"prdId"`
	Content string `json:"content"`
}

func (r *AddCommentRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrMissingContent
	}
	return nil
}

type AddCommentResponse struct {
	Comment *Comment `json:"comment"`
}

type ListCommentsRequest struct {
	PrdId string `json:"prdId"`
	Skip  int32  `json:"skip,omitempty"`
	Take  int32  `json:"take,omitempty"`
}

func (r *ListCommentsRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	if r.Skip < 0 || r.Take < 0 {
		return errors.New("skip and take must not be negative")
	}
	return nil
}

type ListCommentsResponse struct {
	Comments []*Comment `json:"comments"`
	Total    int64      `json:"total"`
}

type DeleteCommentRequest struct {
	PrdId     string `json:"prdId"`
	CommentId string `json:"commentId"`
}

func (r *DeleteCommentRequest) Validate() error {
	if r.PrdId == "" {
		return ErrMissingPrdID
	}
	if r.CommentId == "" {
		return errors.New("commentId is required")
	}
	return nil
}

type DeleteCommentResponse struct{}

// SyncUserRequest carries the profile fields of the authenticated caller.
type SyncUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (r *SyncUserRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return errors.New("a valid email is required")
	}
	return nil
}

type SyncUserResponse struct {
	User *User `json:"user"`
}

type GetDashboardStatsRequest struct{}

type GetDashboardStatsResponse struct {
	Total    int64               `json:"total"`
	ByStatus map[PRDStatus]int64 `json:"byStatus"`
}
