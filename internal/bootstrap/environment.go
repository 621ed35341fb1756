package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagestrap/internal/decide"
	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
)

// LaunchEnv overrides the notebook launch question ("1" or "0").
const LaunchEnv = "PAGESTRAP_LAUNCH"

// Environment runs the optional Python environment steps. Every failure is a
// warning: the bootstrap result stays valid without them.
type Environment struct {
	Manager  PackageEnvironmentManager
	Launcher NotebookLauncher
	Prompter Prompter
	Out      io.Writer
}

// EnvOptions controls SetupEnvironment.
type EnvOptions struct {
	Dir string
	// Manifest is the project file that must exist for setup to be offered
	// (default pyproject.toml).
	Manifest string
	// Setup and Launch are explicit overrides; empty means ask (or use the
	// default when Yes is set).
	Setup  string
	Launch string
	Yes    bool
}

// EnvResult reports which steps ran.
type EnvResult struct {
	Synced   bool
	Launched bool
	Warnings []error
}

// SetupEnvironment offers to install and sync the environment, then offers to
// launch the notebook server. Setup defaults to yes and launch to no when
// running non-interactively.
func (e *Environment) SetupEnvironment(ctx context.Context, opts EnvOptions) (*EnvResult, error) {
	res := &EnvResult{}
	prompter := e.Prompter
	if opts.Yes {
		prompter = nil
	}

	manifest := opts.Manifest
	if manifest == "" {
		manifest = "pyproject.toml"
	}
	if _, err := os.Stat(filepath.Join(opts.Dir, manifest)); err != nil {
		slog.Info("No project manifest, skipping environment setup", logfields.Path(filepath.Join(opts.Dir, manifest)))
		return res, nil
	}

	setup, _, err := decide.Bool{
		Override:       opts.Setup,
		Default:        true,
		NonInteractive: opts.Yes,
		Question:       "Set up the Python environment now?",
	}.Resolve(prompter)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid setup-env value").Fatal().Build()
	}
	if !setup {
		return res, nil
	}

	if e.Manager != nil {
		if err := e.Manager.EnsureInstalled(ctx); err != nil {
			res.Warnings = append(res.Warnings, e.warn("environment manager unavailable", err))
			return res, nil
		}
		if err := e.Manager.Sync(ctx, opts.Dir); err != nil {
			res.Warnings = append(res.Warnings, e.warn("environment sync failed", err))
			return res, nil
		}
		res.Synced = true
		e.say("synced environment in %s", opts.Dir)
	}

	if e.Launcher == nil || !e.Launcher.Supported(opts.Dir) {
		return res, nil
	}
	launchOverride := opts.Launch
	if launchOverride == "" {
		launchOverride = os.Getenv(LaunchEnv)
	}
	launch, _, err := decide.Bool{
		Override:       launchOverride,
		Default:        false,
		NonInteractive: opts.Yes,
		Question:       "Launch the notebook server now?",
	}.Resolve(prompter)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid launch value").
			WithContext("env", LaunchEnv).Fatal().Build()
	}
	if !launch {
		return res, nil
	}
	e.say("launching notebook server in %s", opts.Dir)
	if err := e.Launcher.Launch(ctx, opts.Dir); err != nil {
		res.Warnings = append(res.Warnings, e.warn("notebook server failed", err))
		return res, nil
	}
	res.Launched = true
	return res, nil
}

func (e *Environment) warn(msg string, err error) error {
	slog.Warn(msg, logfields.Error(err))
	return ferrors.ExternalToolError(msg).WithCause(err).Build()
}

func (e *Environment) say(format string, args ...any) {
	if e.Out != nil {
		_, _ = fmt.Fprintf(e.Out, format+"\n", args...)
	}
}
