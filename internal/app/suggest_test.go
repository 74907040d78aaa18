package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosestName(t *testing.T) {
	names := []string{"docs", "news", "work"}

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"nwes", "news", true},
		{"doc", "docs", true},
		{"Work", "work", true},
		{"something-else", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := closestName(tt.input, names)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClosestNameNoBookmarks(t *testing.T) {
	_, ok := closestName("news", nil)
	assert.False(t, ok)
}

func TestFilterNames(t *testing.T) {
	names := []string{"go-docs", "go-blog", "news", "work"}

	got, err := filterNames("go-*", names)
	require.NoError(t, err)
	assert.Equal(t, []string{"go-docs", "go-blog"}, got)

	got, err = filterNames("", names)
	require.NoError(t, err)
	assert.Equal(t, names, got)

	got, err = filterNames("{news,work}", names)
	require.NoError(t, err)
	assert.Equal(t, []string{"news", "work"}, got)

	got, err = filterNames("zzz*", names)
	require.NoError(t, err)
	assert.Empty(t, got)
}
