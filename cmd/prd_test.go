package cmd

import (
	"os"
	"testing"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	page, err := parsePage("Inbox: Lists conversations: unread first")
	require.NoError(t, err)
	assert.Equal(t, &v1.Page{Name: "Inbox", Functionality: "Lists conversations: unread first"}, page)

	for _, bad := range []string{"Inbox", ":Lists conversations", "Inbox:  "} {
		_, err := parsePage(bad)
		assert.Error(t, err, bad)
	}
}

func TestContextRoundTrip(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Equal(t, Context{Server: defaultServer}, readContext())

	require.NoError(t, writeContext(Context{Token: "abc", Server: "localhost:5020"}))
	assert.Equal(t, Context{Token: "abc", Server: "localhost:5020"}, readContext())
}
