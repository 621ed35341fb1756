package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FileAssertions asserts file system state relative to a base directory.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

func (fa *FileAssertions) path(rel string) string {
	return filepath.Join(fa.baseDir, rel)
}

// Read returns the content of rel.
func (fa *FileAssertions) Read(rel string) string {
	fa.t.Helper()
	data, err := os.ReadFile(fa.path(rel)) // #nosec G304 -- test helper
	require.NoError(fa.t, err)
	return string(data)
}

// Exists asserts rel is a regular file.
func (fa *FileAssertions) Exists(rel string) *FileAssertions {
	fa.t.Helper()
	require.FileExists(fa.t, fa.path(rel))
	return fa
}

// Missing asserts nothing exists at rel.
func (fa *FileAssertions) Missing(rel string) *FileAssertions {
	fa.t.Helper()
	_, err := os.Stat(fa.path(rel))
	require.True(fa.t, os.IsNotExist(err), "expected %s to be absent", rel)
	return fa
}

// Contains asserts rel contains want.
func (fa *FileAssertions) Contains(rel, want string) *FileAssertions {
	fa.t.Helper()
	require.Contains(fa.t, fa.Read(rel), want)
	return fa
}

// Count asserts want occurs exactly n times in rel.
func (fa *FileAssertions) Count(rel, want string, n int) *FileAssertions {
	fa.t.Helper()
	require.Equal(fa.t, n, strings.Count(fa.Read(rel), want), "occurrences of %q in %s", want, rel)
	return fa
}

// Mode asserts the permission bits of rel.
func (fa *FileAssertions) Mode(rel string, perm os.FileMode) *FileAssertions {
	fa.t.Helper()
	info, err := os.Stat(fa.path(rel))
	require.NoError(fa.t, err)
	require.Equal(fa.t, perm, info.Mode().Perm(), "mode of %s", rel)
	return fa
}
