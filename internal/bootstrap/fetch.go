package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
	"git.home.luguber.info/inful/pagestrap/internal/git"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
	"git.home.luguber.info/inful/pagestrap/internal/retry"
)

// FetchOptions select what to clone and where.
type FetchOptions struct {
	// URL defaults to the contents of the generated repo-url file.
	URL string
	// Dest defaults to the layout fetch destination, then to the repository
	// name under the working directory.
	Dest   string
	Branch string
}

// Fetch clones the repository, or pulls when Dest already holds a clone, and
// verifies the entrypoint file is present afterwards.
func (r *Reconciler) Fetch(ctx context.Context, opts FetchOptions) (git.SyncResult, error) {
	if r.vcs == nil {
		return git.SyncResult{}, ferrors.InternalError("no version control client configured").Build()
	}

	url := strings.TrimSpace(opts.URL)
	if url == "" {
		urlFile := r.path(r.layout.OutputPath(r.layout.Output.RepoURLFile))
		data, ok, err := readOptional(urlFile)
		if err != nil {
			return git.SyncResult{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read repo-url file").
				WithContext("path", urlFile).Build()
		}
		if !ok || strings.TrimSpace(data) == "" {
			return git.SyncResult{}, ferrors.ConfigError("no repository URL").
				WithContext("hint", "pass --url or run init first").Build()
		}
		url = strings.TrimSpace(data)
	}

	dest := opts.Dest
	if dest == "" {
		dest = r.layout.Fetch.Destination
	}
	if dest == "" {
		remote, err := git.ParseRemoteURL(url)
		if err != nil {
			return git.SyncResult{}, ferrors.WrapError(err, ferrors.CategoryConfig, "cannot derive destination from URL").
				WithContext("url", url).Fatal().Build()
		}
		dest = remote.Name
	}
	dest = r.path(dest)

	branch := opts.Branch
	if branch == "" {
		branch = r.layout.Fetch.Branch
	}

	policy, err := r.retryPolicy()
	if err != nil {
		return git.SyncResult{}, err
	}

	slog.Info("Fetching repository", logfields.URL(url), logfields.Path(dest))
	var res git.SyncResult
	err = policy.Do(ctx, func() error {
		var opErr error
		res, opErr = r.vcs.CloneOrPull(ctx, url, dest, branch)
		return opErr
	}, isTransient)
	if err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryGit, "failed to fetch repository").
			WithContext("url", url).Fatal().Build()
	}
	switch {
	case res.Cloned:
		r.announce("cloned %s into %s", url, r.rel(dest))
	case res.UpToDate:
		r.announce("%s is up to date", r.rel(dest))
	default:
		r.announce("updated %s", r.rel(dest))
	}

	entry := filepath.Join(dest, r.layout.Fetch.Entrypoint)
	if _, err := os.Stat(entry); err != nil {
		return res, ferrors.MissingArtifactError("entrypoint not found after fetch").
			WithContext("path", r.rel(entry)).Build()
	}
	return res, nil
}

func (r *Reconciler) retryPolicy() (retry.Policy, error) {
	if r.retry != nil {
		return *r.retry, nil
	}
	p, err := retry.FromConfig(r.layout.Fetch)
	if err != nil {
		return p, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid fetch retry settings").Fatal().Build()
	}
	return p, nil
}

// isTransient reports whether a clone/pull failure is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var opErr *git.OpError
	if errors.As(err, &opErr) && opErr.Kind != "" {
		return false
	}
	return true
}
