package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/pagestrap/internal/logfields"
)

// Client handles Git operations.
type Client struct {
	progress io.Writer
}

// NewClient creates a new Git client. Clone progress is written to progress
// when non-nil.
func NewClient(progress io.Writer) *Client {
	return &Client{progress: progress}
}

// SyncResult reports what CloneOrPull did.
type SyncResult struct {
	Path     string
	Cloned   bool
	UpToDate bool
	Commit   string
}

// CloneOrPull clones url into dest, or fast-forwards dest when it already
// holds a checkout.
func (c *Client) CloneOrPull(ctx context.Context, url, dest, branch string) (SyncResult, error) {
	if _, err := os.Stat(filepath.Join(dest, ".git")); err == nil {
		return c.pull(ctx, url, dest, branch)
	}
	return c.clone(ctx, url, dest, branch)
}

func (c *Client) clone(ctx context.Context, url, dest, branch string) (SyncResult, error) {
	slog.Debug("Cloning repository", logfields.URL(url), logfields.Path(dest), slog.String("branch", branch))

	opts := &git.CloneOptions{URL: url, Progress: c.progress}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return SyncResult{}, classifyError("clone", url, err)
	}
	return SyncResult{Path: dest, Cloned: true, Commit: headCommit(repo)}, nil
}

func (c *Client) pull(ctx context.Context, url, dest, branch string) (SyncResult, error) {
	slog.Debug("Updating existing repository", logfields.URL(url), logfields.Path(dest))

	repo, err := git.PlainOpen(dest)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to get worktree: %w", err)
	}

	opts := &git.PullOptions{RemoteName: "origin", Progress: c.progress}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}
	err = wt.PullContext(ctx, opts)
	upToDate := errors.Is(err, git.NoErrAlreadyUpToDate)
	if err != nil && !upToDate {
		return SyncResult{}, classifyError("pull", url, err)
	}
	return SyncResult{Path: dest, UpToDate: upToDate, Commit: headCommit(repo)}, nil
}

func headCommit(repo *git.Repository) string {
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}

// OpError is a failed clone or pull.
type OpError struct {
	Op   string
	URL  string
	Kind string // auth, not_found, diverged or empty
	Err  error
}

func (e *OpError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("git %s %s (%s): %v", e.Op, e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("git %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func classifyError(op, url string, err error) error {
	kind := ""
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "auth fail"):
		kind = "auth"
	case strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist"):
		kind = "not_found"
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		kind = "diverged"
	}
	return &OpError{Op: op, URL: url, Kind: kind, Err: err}
}
