package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New([]string{"[unclosed"}, nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), "[unclosed")

	_, err = New(nil, []string{"[unclosed"}, false)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestIgnored(t *testing.T) {
	tests := []struct {
		pattern string
		rel     string
		want    bool
	}{
		{pattern: "*.log", rel: "build.log", want: true},
		{pattern: "*.log", rel: "sub/build.log", want: false},
		{pattern: "*.log", rel: "build.logs", want: false},
		{pattern: "**/*.log", rel: "build.log", want: true},
		{pattern: "**/*.log", rel: "a/b/c.log", want: true},
		{pattern: "sub/*.tmp", rel: "sub/x.tmp", want: true},
		{pattern: "sub/*.tmp", rel: "x.tmp", want: false},
		{pattern: "?at", rel: "cat", want: true},
		{pattern: "?at", rel: "chat", want: false},
		{pattern: "[ch]at", rel: "hat", want: true},
		{pattern: "[ch]at", rel: "bat", want: false},
		{pattern: "*.{log,tmp}", rel: "x.tmp", want: true},
		{pattern: "*.{log,tmp}", rel: "x.txt", want: false},
		{pattern: "README.md", rel: "README.md", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.rel, func(t *testing.T) {
			f, err := New([]string{tt.pattern}, nil, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Ignored(tt.rel))
		})
	}
}

func TestPruned_Defaults(t *testing.T) {
	f, err := New(nil, nil, true)
	require.NoError(t, err)

	assert.True(t, f.Pruned(".git"))
	assert.True(t, f.Pruned("vendor/.git"))
	assert.True(t, f.Pruned("a/b/c/.git"))
	assert.False(t, f.Pruned("git"))
	assert.False(t, f.Pruned(".github"))

	// Defaults extend the prune set only.
	assert.False(t, f.Ignored(".git"))
}

func TestPruned_NoDefaults(t *testing.T) {
	f, err := New(nil, nil, false)
	require.NoError(t, err)
	assert.False(t, f.Pruned(".git"))
}

func TestPruned_Custom(t *testing.T) {
	f, err := New(nil, []string{"node_modules", "**/node_modules"}, false)
	require.NoError(t, err)

	assert.True(t, f.Pruned("node_modules"))
	assert.True(t, f.Pruned("web/app/node_modules"))
	assert.False(t, f.Pruned("node_modules_backup"))
}

func TestEmptyFilter(t *testing.T) {
	f, err := New(nil, nil, false)
	require.NoError(t, err)
	assert.False(t, f.Ignored("anything"))
	assert.False(t, f.Pruned("anything"))
}

func TestNew_ClonesPatterns(t *testing.T) {
	patterns := []string{"*.log"}
	f, err := New(patterns, nil, false)
	require.NoError(t, err)

	patterns[0] = "*.txt"
	assert.True(t, f.Ignored("x.log"))
	assert.False(t, f.Ignored("x.txt"))
}
