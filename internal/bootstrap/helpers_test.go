package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagestrap/internal/config"
	"git.home.luguber.info/inful/pagestrap/internal/git"
	"git.home.luguber.info/inful/pagestrap/internal/retry"
	"git.home.luguber.info/inful/pagestrap/internal/state"
)

const (
	testDLTemplate  = "#!/usr/bin/env bash\nREPO_URL=\"__REPO_URL__\"\n# usage: REPO_URL=__REPO_URL__ ./dl.sh\ngit clone \"$REPO_URL\"\n"
	testPS1Template = "$RepoUrl = '__REPO_URL__'\ngit clone $RepoUrl\n"
)

type fakeVCS struct {
	origin    string
	originErr error
	clone     func(url, dest, branch string) (git.SyncResult, error)
	calls     int
}

func (f *fakeVCS) OriginURL(string) (string, error) {
	if f.originErr != nil {
		return "", f.originErr
	}
	if f.origin == "" {
		return "", git.ErrNoOrigin
	}
	return f.origin, nil
}

func (f *fakeVCS) CloneOrPull(_ context.Context, url, dest, branch string) (git.SyncResult, error) {
	f.calls++
	if f.clone == nil {
		return git.SyncResult{}, errors.New("clone not expected")
	}
	return f.clone(url, dest, branch)
}

type failingChecksummer struct{}

func (failingChecksummer) Sum(string) (string, error) { return "", errors.New("disk on fire") }

type scriptedPrompter struct {
	answers  []string
	asked    []string
	defaults []string
}

func (s *scriptedPrompter) next(q string) string {
	s.asked = append(s.asked, q)
	if len(s.answers) == 0 {
		return ""
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a
}

func (s *scriptedPrompter) Ask(q, def string) (string, error) {
	s.defaults = append(s.defaults, def)
	if a := s.next(q); a != "" {
		return a, nil
	}
	return def, nil
}

func (s *scriptedPrompter) Confirm(q string, def bool) (bool, error) {
	switch s.next(q) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return def, nil
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// newWorkspace creates a working directory with both script templates.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "templates", "dl.sh.tmpl"), testDLTemplate)
	writeTestFile(t, filepath.Join(dir, "templates", "dl.ps1.tmpl"), testPS1Template)
	return dir
}

func newTestReconciler(dir string, opts ...Option) (*Reconciler, *bytes.Buffer) {
	var out bytes.Buffer
	layout := config.Default()
	base := []Option{
		WithStore(state.NewJSONStore(filepath.Join(dir, layout.State.Path)).WithClock(func() time.Time { return fixedNow })),
		WithVCS(&fakeVCS{}),
		WithOutput(&out),
		WithRetryPolicy(retry.Policy{Mode: retry.ModeFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}),
	}
	return NewReconciler(dir, layout, append(base, opts...)...), &out
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// snapshot reads every file under dir except the state record.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		if rel == filepath.Join(".pagestrap", "state.json") {
			return nil
		}
		files[rel] = readTestFile(t, path)
		return nil
	})
	require.NoError(t, err)
	return files
}

var acme = Flags{User: "acme", Repo: "proj", Yes: true}
