package bootstrap

import (
	"context"

	"git.home.luguber.info/inful/pagestrap/internal/decide"
	"git.home.luguber.info/inful/pagestrap/internal/git"
)

// VersionControlClient is the subset of git the reconciler and installer use.
type VersionControlClient interface {
	OriginURL(dir string) (string, error)
	CloneOrPull(ctx context.Context, url, dest, branch string) (git.SyncResult, error)
}

// PackageEnvironmentManager installs the environment tool and syncs the
// project environment.
type PackageEnvironmentManager interface {
	EnsureInstalled(ctx context.Context) error
	Sync(ctx context.Context, dir string) error
}

// NotebookLauncher starts the notebook server for a project.
type NotebookLauncher interface {
	// Supported reports whether the project declares a notebook server.
	Supported(dir string) bool
	Launch(ctx context.Context, dir string) error
}

// Checksummer hashes a generated artifact.
type Checksummer interface {
	Sum(path string) (string, error)
}

// Prompter asks the operator questions. Nil means non-interactive.
type Prompter = decide.Prompter
