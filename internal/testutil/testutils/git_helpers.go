// Package testutils holds shared test helpers for git-backed and
// file-producing tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// InitRepo initializes a git repository in dir, optionally with an origin
// remote pointing at originURL.
func InitRepo(t *testing.T, dir, originURL string) *git.Repository {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	if originURL != "" {
		_, err = repo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{originURL}})
		require.NoError(t, err)
	}
	return repo
}

// AddCommit writes name with content and commits it.
func AddCommit(t *testing.T, repo *git.Repository, dir, name, content string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	_, err = wt.Add(name)
	require.NoError(t, err)
	h, err := wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return h
}

// Remote is a bare repository plus the working clone that pushes to it.
type Remote struct {
	URL     string
	Seed    *git.Repository
	SeedDir string
}

// Push pushes the seed's commits to the bare remote.
func (r *Remote) Push(t *testing.T) {
	t.Helper()
	require.NoError(t, r.Seed.Push(&git.PushOptions{RemoteName: "origin"}))
}

// Commit adds a file to the seed and pushes it.
func (r *Remote) Commit(t *testing.T, name, content string) plumbing.Hash {
	t.Helper()
	h := AddCommit(t, r.Seed, r.SeedDir, name, content)
	r.Push(t)
	return h
}

// SeedBareRemote creates a bare remote holding one commit per file.
func SeedBareRemote(t *testing.T, files map[string]string) *Remote {
	t.Helper()
	tmp := t.TempDir()
	bare := filepath.Join(tmp, "remote.git")
	_, err := git.PlainInit(bare, true)
	require.NoError(t, err)

	seedDir := filepath.Join(tmp, "seed")
	r := &Remote{URL: bare, Seed: InitRepo(t, seedDir, bare), SeedDir: seedDir}
	for name, content := range files {
		AddCommit(t, r.Seed, seedDir, name, content)
	}
	r.Push(t)
	return r
}
