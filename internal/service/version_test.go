package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/compress"
	"github.com/emrgen/prd/internal/generation"
	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/queue"
	"github.com/emrgen/prd/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestPRDService_CreateVersion_Numbering(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.user(t, "author")
	prdID := f.createChatApp(t, ctx)

	for want := int32(1); want <= 3; want++ {
		res, err := f.service.CreateVersion(ctx, &v1.CreateVersionRequest{PrdId: prdID})
		require.NoError(t, err)
		assert.Equal(t, want, res.Version.VersionNumber)
		assert.Equal(t, generatedMarkdown, res.Version.MarkdownContent)
	}

	list, err := f.service.ListVersions(ctx, &v1.ListVersionsRequest{PrdId: prdID})
	require.NoError(t, err)
	require.Len(t, list.Versions, 3)
	for _, version := range list.Versions {
		assert.Empty(t, version.Content)
		assert.Empty(t, version.MarkdownContent)
	}

	var stored model.Version
	require.NoError(t, f.db.Where("prd_id = ? AND version_number = ?", prdID, 2).First(&stored).Error)
	assert.Equal(t, compress.GZipName, stored.Compression)
	assert.NotEqual(t, generatedMarkdown, stored.MarkdownContent)

	got, err := f.service.GetVersion(ctx, &v1.GetVersionRequest{PrdId: prdID, VersionNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, generatedMarkdown, got.Version.MarkdownContent)

	var sections []*v1.Section
	require.NoError(t, json.Unmarshal([]byte(got.Version.Content), &sections))
	require.Len(t, sections, 2)
	assert.Equal(t, "Inbox", sections[0].Title)

	_, err = f.service.GetVersion(ctx, &v1.GetVersionRequest{PrdId: prdID, VersionNumber: 9})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestPRDService_GetVersion_ReadsOlderCodec(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.user(t, "author")
	prdID := f.createChatApp(t, ctx)

	_, err := f.service.CreateVersion(ctx, &v1.CreateVersionRequest{PrdId: prdID})
	require.NoError(t, err)

	f.service.compress = compress.NewLZ4()
	_, err = f.service.CreateVersion(ctx, &v1.CreateVersionRequest{PrdId: prdID})
	require.NoError(t, err)

	for _, number := range []int32{1, 2} {
		got, err := f.service.GetVersion(ctx, &v1.GetVersionRequest{PrdId: prdID, VersionNumber: number})
		require.NoError(t, err)
		assert.Equal(t, generatedMarkdown, got.Version.MarkdownContent)
	}
}

func TestPRDService_RegeneratePRD(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.user(t, "author")
	prdID := f.createChatApp(t, ctx)

	regenerated := "# Project Requirement Document\n\n## Project Overview\nA realtime chat tool with threads.\n"
	var prompt string
	f.withGenerator(generation.Func(func(_ context.Context, req *generation.Request) (string, error) {
		prompt = req.Prompt
		return regenerated, nil
	}))

	res, err := f.service.RegeneratePRD(ctx, &v1.RegeneratePRDRequest{PrdId: prdID})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Inbox:\nLists conversations")
	assert.Equal(t, regenerated, res.Prd.CurrentContent.MarkdownContent)
	require.NotNil(t, res.Prd.CurrentContent.HtmlContent)
	assert.Empty(t, *res.Prd.CurrentContent.HtmlContent)
	assert.Len(t, res.Prd.Sections, 2)

	require.NotNil(t, res.Snapshot)
	assert.Equal(t, int32(1), res.Snapshot.VersionNumber)

	old, err := f.service.GetVersion(ctx, &v1.GetVersionRequest{PrdId: prdID, VersionNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, generatedMarkdown, old.Version.MarkdownContent)

	content, err := f.store.GetDocumentContent(ctx, prdID)
	require.NoError(t, err)
	assert.Equal(t, regenerated, content.MarkdownContent)
	assert.Equal(t, int64(1), f.count(t, &model.DocumentContent{}))

	events := f.events.Events()
	assert.Equal(t, queue.PRDRegenerated, events[len(events)-1].Type)
}

func TestPRDService_RegeneratePRD_KeepsEditsMadeDuringGeneration(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.user(t, "author")
	prdID := f.createChatApp(t, ctx)

	before, err := f.store.GetPRD(ctx, prdID, store.Include{})
	require.NoError(t, err)

	title := "Chat App v2"
	public := true
	completed := v1.PRDStatusCompleted
	f.withGenerator(generation.Func(func(context.Context, *generation.Request) (string, error) {
		_, err := f.service.UpdatePRD(ctx, &v1.UpdatePRDRequest{PrdId: prdID, Title: &title, IsPublic: &public, Status: &completed})
		require.NoError(t, err)
		return generatedMarkdown, nil
	}))

	res, err := f.service.RegeneratePRD(ctx, &v1.RegeneratePRDRequest{PrdId: prdID})
	require.NoError(t, err)
	assert.Equal(t, title, res.Prd.Title)
	assert.True(t, res.Prd.IsPublic)
	assert.Equal(t, completed, res.Prd.Status)

	stored, err := f.store.GetPRD(ctx, prdID, store.Include{})
	require.NoError(t, err)
	assert.Equal(t, title, stored.Title)
	assert.True(t, stored.IsPublic)
	assert.Equal(t, model.Status(completed), stored.Status)
	assert.False(t, stored.LastEditedAt.Before(before.LastEditedAt))
}

func TestPRDService_RegeneratePRD_GenerationFailureKeepsContent(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.user(t, "author")
	prdID := f.createChatApp(t, ctx)

	f.withGenerator(generation.Func(func(context.Context, *generation.Request) (string, error) {
		return "", &generation.Failure{Err: errors.New("timeout")}
	}))

	_, err := f.service.RegeneratePRD(ctx, &v1.RegeneratePRDRequest{PrdId: prdID})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	content, err := f.store.GetDocumentContent(ctx, prdID)
	require.NoError(t, err)
	assert.Equal(t, generatedMarkdown, content.MarkdownContent)
	assert.Zero(t, f.count(t, &model.Version{}))
}
