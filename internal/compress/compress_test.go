package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	markdown := "# Project Requirement Document\n\n" + strings.Repeat("## Inbox\nLists conversations.\n\n", 50)

	for _, name := range []string{NopName, GZipName, BrotliName, LZ4Name} {
		t.Run(name, func(t *testing.T) {
			c, err := New(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			encoded, err := c.Encode([]byte(markdown))
			require.NoError(t, err)
			if name != NopName {
				assert.Less(t, len(encoded), len(markdown))
			}

			decoded, err := c.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, markdown, string(decoded))

			text, err := EncodeString(c, markdown)
			require.NoError(t, err)
			back, err := DecodeString(c, text)
			require.NoError(t, err)
			assert.Equal(t, markdown, back)
		})
	}
}

func TestNew(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, NopName, c.Name())

	_, err = New("zstd")
	assert.Error(t, err)
}

func TestDecodeString_Invalid(t *testing.T) {
	_, err := DecodeString(NewGZip(), "not base64!")
	assert.Error(t, err)

	s, err := DecodeString(NewGZip(), "")
	require.NoError(t, err)
	assert.Empty(t, s)
}
