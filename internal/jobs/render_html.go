package jobs

import (
	"context"
	"strings"

	"github.com/emrgen/prd/internal/markdown"
	"github.com/emrgen/prd/internal/model"
	"github.com/emrgen/prd/internal/store"
	"github.com/sirupsen/logrus"
)

const renderBatchSize = 50

// RenderHTMLTask fills in the html of documents stored with pending html.
type RenderHTMLTask struct {
	store    store.Store
	renderer *markdown.Renderer
	cron     string
}

func NewRenderHTMLTask(schedule string, store store.Store, renderer *markdown.Renderer) *RenderHTMLTask {
	return &RenderHTMLTask{
		store:    store,
		renderer: renderer,
		cron:     schedule,
	}
}

func (r *RenderHTMLTask) ID() string {
	return "render_html"
}

func (r *RenderHTMLTask) Schedule() string {
	return r.cron
}

func (r *RenderHTMLTask) Run() {
	rendered, err := r.RunOnce(context.Background())
	if err != nil {
		logrus.Errorf("render html: %v", err)
		return
	}
	if rendered > 0 {
		logrus.Infof("rendered html for %d documents", rendered)
	}
}

// RunOnce renders one batch of pending documents and returns how many were
// updated. A document whose markdown changed while it was rendered is left
// for the next run. A document that renders to nothing, or fails to render,
// gets markdown.EmptyHTML so it leaves the pending set.
func (r *RenderHTMLTask) RunOnce(ctx context.Context) (int, error) {
	contents, err := r.store.ListPendingHTML(ctx, renderBatchSize)
	if err != nil {
		return 0, err
	}

	rendered := 0
	for _, content := range contents {
		ok, err := r.render(ctx, content)
		if err != nil {
			return rendered, err
		}
		if ok {
			rendered++
		}
	}

	return rendered, nil
}

func (r *RenderHTMLTask) render(ctx context.Context, content *model.DocumentContent) (bool, error) {
	html, err := r.renderer.Render(content.MarkdownContent)
	if err != nil {
		logrus.Warnf("failed to render document %s: %v", content.ID, err)
		html = ""
	}
	if strings.TrimSpace(html) == "" {
		html = markdown.EmptyHTML
	}

	return r.store.UpdateHTMLContent(ctx, content.ID, content.MarkdownContent, html)
}
