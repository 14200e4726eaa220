package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *GormStore {
	return NewGormStore(tester.Setup(t))
}

func createUser(t *testing.T, s Store) *model.User {
	t.Helper()
	id := uuid.NewString()
	user := &model.User{ClerkUserID: "user_" + id, Email: id + "@example.com", Name: "Ada"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createPRD(t *testing.T, s Store, author *model.User, title string, pages ...string) *model.PRD {
	t.Helper()
	ctx := context.Background()

	prd := &model.PRD{
		Title:              title,
		ProjectDescription: "description of " + title,
		TechStack:          []string{"Go", "React"},
		AuthorID:           author.ID,
		PageCount:          int32(len(pages)),
	}
	require.NoError(t, s.CreatePRD(ctx, prd))

	sections := make([]*model.Section, 0, len(pages))
	for i, page := range pages {
		sections = append(sections, &model.Section{PRDID: prd.ID, Title: page, Content: page + " functionality", Order: int32(i)})
	}
	require.NoError(t, s.CreateSections(ctx, sections))

	empty := ""
	require.NoError(t, s.CreateDocumentContent(ctx, &model.DocumentContent{PRDID: prd.ID, MarkdownContent: "# " + title, HTMLContent: &empty}))

	return prd
}

func TestGormStore_Users(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	user := &model.User{ClerkUserID: "user_1", Email: "ada@example.com", Name: "Ada"}
	require.NoError(t, s.UpsertUser(ctx, user))
	require.NotEmpty(t, user.ID)

	again := &model.User{ClerkUserID: "user_1", Email: "ada@lovelace.dev", Name: "Ada L"}
	require.NoError(t, s.UpsertUser(ctx, again))
	assert.Equal(t, user.ID, again.ID)

	got, err := s.GetUserByClerkID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "ada@lovelace.dev", got.Email)
	assert.Equal(t, "Ada L", got.Name)

	_, err = s.GetUserByClerkID(ctx, "user_2")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.CreateUser(ctx, &model.User{ClerkUserID: "user_2", Email: "ada@lovelace.dev"})
	assert.ErrorIs(t, err, ErrConflict)

	err = s.CreateUser(ctx, &model.User{ClerkUserID: "user_1", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGormStore_CreateAndGetPRD(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s)

	prd := createPRD(t, s, author, "Chat App", "Inbox", "Settings")

	got, err := s.GetPRD(ctx, prd.ID, IncludeAll)
	require.NoError(t, err)
	assert.Equal(t, "Chat App", got.Title)
	assert.Equal(t, []string{"Go", "React"}, got.TechStack)
	assert.Equal(t, model.StatusDraft, got.Status)
	assert.False(t, got.IsPublic)
	assert.Equal(t, int32(2), got.PageCount)
	assert.False(t, got.LastEditedAt.IsZero())
	require.NotNil(t, got.Author)
	assert.Equal(t, author.Email, got.Author.Email)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "Inbox", got.Sections[0].Title)
	assert.Equal(t, int32(1), got.Sections[1].Order)
	require.NotNil(t, got.CurrentContent)
	assert.Equal(t, "# Chat App", got.CurrentContent.MarkdownContent)
	assert.True(t, got.CurrentContent.PendingHTML())

	bare, err := s.GetPRD(ctx, prd.ID, Include{})
	require.NoError(t, err)
	assert.Nil(t, bare.Author)
	assert.Nil(t, bare.Sections)

	_, err = s.GetPRD(ctx, uuid.NewString(), Include{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_UniqueSectionOrder(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	prd := createPRD(t, s, createUser(t, s), "Chat App", "Inbox")

	err := s.CreateSections(ctx, []*model.Section{{PRDID: prd.ID, Title: "Duplicate", Order: 0}})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGormStore_UniqueDocumentContent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	prd := createPRD(t, s, createUser(t, s), "Chat App", "Inbox")

	err := s.CreateDocumentContent(ctx, &model.DocumentContent{PRDID: prd.ID, MarkdownContent: "again"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGormStore_ListPRDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s)
	other := createUser(t, s)

	for i := 0; i < 5; i++ {
		createPRD(t, s, author, fmt.Sprintf("Project %d", i), "Home")
		time.Sleep(2 * time.Millisecond)
	}
	chat := createPRD(t, s, author, "Chat App", "Inbox")
	createPRD(t, s, other, "Chat Clone", "Inbox")

	chat.Status = model.StatusCompleted
	chat.IsPublic = true
	require.NoError(t, s.UpdatePRD(ctx, chat))

	tests := []struct {
		name   string
		filter PRDFilter
		opts   ListOptions
		total  int64
		titles []string
	}{
		{name: "author only", filter: PRDFilter{AuthorID: author.ID}, total: 6},
		{name: "search", filter: PRDFilter{Search: "CHAT"}, total: 2},
		{name: "status", filter: PRDFilter{AuthorID: author.ID, Statuses: []model.Status{model.StatusCompleted}}, total: 1, titles: []string{"Chat App"}},
		{name: "public", filter: PRDFilter{IsPublic: boolPtr(true)}, total: 1, titles: []string{"Chat App"}},
		{
			name:   "page sorted by title",
			filter: PRDFilter{AuthorID: author.ID},
			opts:   ListOptions{Skip: 1, Take: 2, OrderBy: "title"},
			total:  6,
			titles: []string{"Project 0", "Project 1"},
		},
		{
			name:   "sorted by title desc",
			filter: PRDFilter{AuthorID: author.ID},
			opts:   ListOptions{Take: 1, OrderBy: "title", Desc: true, Nulls: NullsLast},
			total:  6,
			titles: []string{"Project 4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prds, total, err := s.ListPRDs(ctx, tt.filter, tt.opts, Include{})
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			if tt.titles != nil {
				titles := make([]string, 0, len(prds))
				for _, prd := range prds {
					titles = append(titles, prd.Title)
				}
				assert.Equal(t, tt.titles, titles)
			}
		})
	}

	_, _, err := s.ListPRDs(ctx, PRDFilter{}, ListOptions{OrderBy: "author_id; DROP TABLE prds"}, Include{})
	assert.ErrorIs(t, err, ErrInvalidOrderBy)
}

func TestListOptions_Limit(t *testing.T) {
	assert.Equal(t, DefaultTake, ListOptions{}.limit())
	assert.Equal(t, 7, ListOptions{Take: 7}.limit())
	assert.Equal(t, MaxTake, ListOptions{Take: 1000}.limit())
}

func TestGormStore_CountPRDsByStatus(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s)

	createPRD(t, s, author, "A", "p")
	createPRD(t, s, author, "B", "p")
	archived := createPRD(t, s, author, "C", "p")
	archived.Status = model.StatusArchived
	require.NoError(t, s.UpdatePRD(ctx, archived))
	createPRD(t, s, createUser(t, s), "D", "p")

	counts, err := s.CountPRDsByStatus(ctx, PRDFilter{AuthorID: author.ID})
	require.NoError(t, err)
	assert.Equal(t, map[model.Status]int64{model.StatusDraft: 2, model.StatusArchived: 1}, counts)
}

func TestGormStore_ReorderSections(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	prd := createPRD(t, s, createUser(t, s), "Chat App", "Inbox", "Settings", "Profile")

	sections, err := s.ListSections(ctx, prd.ID)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	ids := []string{sections[2].ID, sections[0].ID, sections[1].ID}
	require.NoError(t, s.ReorderSections(ctx, prd.ID, ids))

	sections, err = s.ListSections(ctx, prd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Profile", sections[0].Title)
	assert.Equal(t, "Inbox", sections[1].Title)
	assert.Equal(t, "Settings", sections[2].Title)
	for i, section := range sections {
		assert.Equal(t, int32(i), section.Order)
	}

	err = s.ReorderSections(ctx, prd.ID, []string{uuid.NewString(), ids[1], ids[2]})
	assert.ErrorIs(t, err, ErrNotFound)

	sections, err = s.ListSections(ctx, prd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Profile", sections[0].Title, "a failed reorder must roll back")
}

func TestGormStore_Versions(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	prd := createPRD(t, s, createUser(t, s), "Chat App", "Inbox")

	for want := int32(1); want <= 3; want++ {
		next, err := s.NextVersionNumber(ctx, prd.ID)
		require.NoError(t, err)
		assert.Equal(t, want, next)
		require.NoError(t, s.CreateVersion(ctx, &model.Version{PRDID: prd.ID, VersionNumber: next, MarkdownContent: fmt.Sprintf("v%d", next)}))
	}

	err := s.CreateVersion(ctx, &model.Version{PRDID: prd.ID, VersionNumber: 2})
	assert.ErrorIs(t, err, ErrConflict)

	versions, err := s.ListVersions(ctx, prd.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "v1", versions[0].MarkdownContent)

	v2, err := s.GetVersion(ctx, prd.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "v2", v2.MarkdownContent)

	_, err = s.GetVersion(ctx, prd.ID, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_DocumentContent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	prd := createPRD(t, s, createUser(t, s), "Chat App", "Inbox")

	pending, err := s.ListPendingHTML(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	ok, err := s.UpdateHTMLContent(ctx, pending[0].ID, "stale markdown", "<p>x</p>")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.UpdateHTMLContent(ctx, pending[0].ID, pending[0].MarkdownContent, "<h1>Chat App</h1>")
	require.NoError(t, err)
	assert.True(t, ok)

	pending, err = s.ListPendingHTML(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	replaced := &model.DocumentContent{PRDID: prd.ID, MarkdownContent: "# Regenerated"}
	require.NoError(t, s.UpsertDocumentContent(ctx, replaced))

	got, err := s.GetDocumentContent(ctx, prd.ID)
	require.NoError(t, err)
	assert.Equal(t, replaced.ID, got.ID)
	assert.Equal(t, "# Regenerated", got.MarkdownContent)
	assert.True(t, got.PendingHTML())
}

func TestGormStore_Comments(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s)
	prd := createPRD(t, s, author, "Chat App", "Inbox")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateComment(ctx, &model.Comment{PRDID: prd.ID, AuthorID: author.ID, Content: fmt.Sprintf("comment %d", i)}))
		time.Sleep(2 * time.Millisecond)
	}

	comments, total, err := s.ListComments(ctx, prd.ID, ListOptions{Take: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 2)
	assert.Equal(t, "comment 0", comments[0].Content)

	got, err := s.GetComment(ctx, prd.ID, comments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.AuthorID)

	require.NoError(t, s.DeleteComment(ctx, got.ID))
	assert.ErrorIs(t, s.DeleteComment(ctx, got.ID), ErrNotFound)
}

func TestGormStore_DeletePRD(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s)
	prd := createPRD(t, s, author, "Chat App", "Inbox", "Settings")
	keep := createPRD(t, s, author, "Keep", "Home")

	require.NoError(t, s.CreateVersion(ctx, &model.Version{PRDID: prd.ID, VersionNumber: 1}))
	require.NoError(t, s.CreateComment(ctx, &model.Comment{PRDID: prd.ID, AuthorID: author.ID, Content: "c"}))

	require.NoError(t, s.DeletePRD(ctx, prd.ID))

	_, err := s.GetPRD(ctx, prd.ID, Include{})
	assert.ErrorIs(t, err, ErrNotFound)
	sections, err := s.ListSections(ctx, prd.ID)
	require.NoError(t, err)
	assert.Empty(t, sections)
	_, err = s.GetDocumentContent(ctx, prd.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	versions, err := s.ListVersions(ctx, prd.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)

	_, err = s.GetPRD(ctx, keep.ID, Include{})
	assert.NoError(t, err)

	assert.ErrorIs(t, s.DeletePRD(ctx, prd.ID), ErrNotFound)
}

func TestGormStore_TransactionRollback(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s)

	var prdID string
	err := s.Transaction(ctx, func(tx Store) error {
		prd := &model.PRD{Title: "Chat App", ProjectDescription: "d", TechStack: []string{"Go"}, AuthorID: author.ID}
		if err := tx.CreatePRD(ctx, prd); err != nil {
			return err
		}
		prdID = prd.ID
		return tx.CreateSections(ctx, []*model.Section{
			{PRDID: prd.ID, Title: "A", Order: 0},
			{PRDID: prd.ID, Title: "B", Order: 0},
		})
	})
	require.ErrorIs(t, err, ErrConflict)

	_, err = s.GetPRD(ctx, prdID, Include{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func boolPtr(b bool) *bool {
	return &b
}

func TestGormStore_TouchPRD(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	author := createUser(t, s)
	prd := createPRD(t, s, author, "Chat App", "Inbox")

	stale := *prd
	prd.Title = "Chat App v2"
	prd.Status = model.StatusCompleted
	require.NoError(t, s.UpdatePRD(ctx, prd))

	at := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, s.TouchPRD(ctx, stale.ID, at))

	got, err := s.GetPRD(ctx, prd.ID, Include{})
	require.NoError(t, err)
	assert.Equal(t, "Chat App v2", got.Title)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.True(t, at.Equal(got.LastEditedAt), "last edited %v, want %v", got.LastEditedAt, at)

	assert.ErrorIs(t, s.TouchPRD(ctx, uuid.NewString(), at), ErrNotFound)
}
