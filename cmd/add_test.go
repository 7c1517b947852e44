package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvcollection/nvcx/nvcx/collection"
)

func Test_titleFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{
			path:     "novels/the-long-rain.novx",
			expected: "the-long-rain",
		},
		{
			path:     "plain",
			expected: "plain",
		},
		{
			path:     "/abs/path/glass-1.novx",
			expected: "glass-1",
		},
		{
			path:     "archive.tar.gz",
			expected: "archive.tar",
		},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			assert.Equal(t, test.expected, titleFromPath(test.path))
		})
	}
}

func Test_relativeTo(t *testing.T) {
	base := t.TempDir()

	// paths under the collection dir become relative to it
	inside := filepath.Join(base, "shelf", "book.novx")
	assert.Equal(t, filepath.Join("shelf", "book.novx"), relativeTo(base, inside))

	// paths elsewhere are still expressed relative to the collection dir
	outside := filepath.Join(t.TempDir(), "book.novx")
	got := relativeTo(base, outside)
	assert.True(t, strings.HasPrefix(got, ".."), "expected a parent-relative path, got %q", got)
}

func Test_findSeriesByTitle(t *testing.T) {
	c := collection.New()
	first := c.AddSeries("The Glass Archipelago")
	c.AddSeries("Unrelated Series")

	assert.Equal(t, first, findSeriesByTitle(c, "The Glass Archipelago"))
	assert.Nil(t, findSeriesByTitle(c, "The Missing Series"))
}

func Test_hasBookWithPath(t *testing.T) {
	c := collection.New()
	c.AddBook("The Long Rain", "the-long-rain.novx")

	assert.True(t, hasBookWithPath(c, "the-long-rain.novx"))
	assert.False(t, hasBookWithPath(c, "missing.novx"))
}
