package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCsvPath_RelativeInsideRoot(t *testing.T) {
	root := t.TempDir()

	resolved, err := ResolveCsvPath(root, "trades.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "trades.csv"), resolved)

	resolved, err = ResolveCsvPath(root, filepath.Join("2025", "january.csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "2025", "january.csv"), resolved)
}

func TestResolveCsvPath_AbsoluteInsideRoot(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "trades.csv")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	resolved, err := ResolveCsvPath(root, target)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)
}

func TestResolveCsvPath_RejectsEscapes(t *testing.T) {
	root := t.TempDir()

	tests := []string{
		"../outside.csv",
		filepath.Join("..", "..", "etc", "passwd"),
		filepath.Join("sub", "..", "..", "outside.csv"),
		"/etc/passwd",
	}
	for _, userPath := range tests {
		_, err := ResolveCsvPath(root, userPath)
		assert.ErrorIs(t, err, ErrPathOutsideRoot, "path %q", userPath)
	}
}

func TestResolveCsvPath_EmptyPath(t *testing.T) {
	_, err := ResolveCsvPath(t.TempDir(), "  ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPathOutsideRoot)
}

func TestResolveCsvPath_DotStaysInside(t *testing.T) {
	root := t.TempDir()
	resolved, err := ResolveCsvPath(root, ".")
	require.NoError(t, err)
	assert.Equal(t, root, resolved)
}
