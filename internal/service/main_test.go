package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/compress"
	"github.com/emrgen/prd/internal/generation"
	"github.com/emrgen/prd/internal/identity"
	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/queue"
	"github.com/emrgen/prd/internal/store"
	"github.com/emrgen/prd/internal/tester"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const generatedMarkdown = "# Project Requirement Document\n\n## Project Overview\nA realtime chat tool.\n"

type fixture struct {
	db      *gorm.DB
	store   store.Store
	service *PRDService
	events  *queue.Memory
	cache   *memoryCache
	prompts []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:     tester.Setup(t),
		events: queue.NewMemory(),
		cache:  newMemoryCache(),
	}
	f.store = store.NewGormStore(f.db)
	f.service = NewPRDService(f.store, generation.Func(func(ctx context.Context, req *generation.Request) (string, error) {
		f.prompts = append(f.prompts, req.Prompt)
		return generatedMarkdown, nil
	}), f.cache, f.events, compress.NewGZip())

	return f
}

func (f *fixture) withGenerator(g generation.Generator) {
	f.service.generator = g
}

func (f *fixture) user(t *testing.T, subject string) (context.Context, *model.User) {
	t.Helper()
	user := &model.User{ClerkUserID: subject, Email: subject + "@example.com", Name: subject}
	require.NoError(t, f.store.UpsertUser(context.Background(), user))
	return asCaller(subject), user
}

func (f *fixture) count(t *testing.T, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(value).Count(&n).Error)
	return n
}

func asCaller(subject string) context.Context {
	return identity.NewContext(context.Background(), identity.Caller{Subject: subject})
}

func chatApp() *v1.ProjectInput {
	return &v1.ProjectInput{
		Title:              "Chat App",
		ProjectDescription: "A realtime chat tool",
		TechStack:          []string{"React", "Node.js"},
		Pages: []*v1.Page{
			{Name: "Inbox", Functionality: "Lists conversations"},
			{Name: "Settings", Functionality: "Edit profile"},
		},
	}
}

func (f *fixture) createChatApp(t *testing.T, ctx context.Context) string {
	t.Helper()
	res, err := f.service.CreatePRD(ctx, &v1.CreatePRDRequest{ProjectInput: *chatApp()})
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)
	return res.PrdId
}

// memoryCache is a DashboardCache kept in maps, recording invalidations.
type memoryCache struct {
	mu          sync.Mutex
	versions    map[string]int64
	dashboards  map[string]*v1.ListPRDsResponse
	stats       map[string]*v1.GetDashboardStatsResponse
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		versions:   map[string]int64{},
		dashboards: map[string]*v1.ListPRDsResponse{},
		stats:      map[string]*v1.GetDashboardStatsResponse{},
	}
}

func (m *memoryCache) DashboardVersion(_ context.Context, authorID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[authorID], nil
}

func (m *memoryCache) GetDashboard(_ context.Context, authorID string) (*v1.ListPRDsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dashboards[authorID], nil
}

func (m *memoryCache) SetDashboard(_ context.Context, authorID string, version int64, res *v1.ListPRDsResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versions[authorID] != version {
		return nil
	}
	m.dashboards[authorID] = res
	return nil
}

func (m *memoryCache) GetStats(_ context.Context, authorID string) (*v1.GetDashboardStatsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats[authorID], nil
}

func (m *memoryCache) SetStats(_ context.Context, authorID string, version int64, res *v1.GetDashboardStatsResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versions[authorID] != version {
		return nil
	}
	m.stats[authorID] = res
	return nil
}

func (m *memoryCache) InvalidateDashboard(_ context.Context, authorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[authorID]++
	delete(m.dashboards, authorID)
	delete(m.stats, authorID)
	m.invalidated = append(m.invalidated, authorID)
	return nil
}

// failingStore fails the document content write of a transaction.
type failingStore struct {
	store.Store
}

var errDiskFull = errors.New("disk full")

func (f failingStore) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return f.Store.Transaction(ctx, func(tx store.Store) error {
		return fn(failingStore{Store: tx})
	})
}

func (f failingStore) CreateDocumentContent(context.Context, *model.DocumentContent) error {
	return errDiskFull
}
