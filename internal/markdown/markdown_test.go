package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("# Project Requirement Document\n\n| Page | Purpose |\n|---|---|\n| Inbox | Lists conversations |\n\n- [x] auth\n")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Project Requirement Document</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Inbox</td>")
	assert.Contains(t, out, `type="checkbox"`)
}

func TestRenderer_DropsRawHTML(t *testing.T) {
	out, err := NewRenderer().Render("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<p>text</p>")
}

func TestRenderer_Empty(t *testing.T) {
	out, err := NewRenderer().Render("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
