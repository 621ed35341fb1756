package pyenv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagestrap/internal/config"
	"git.home.luguber.info/inful/pagestrap/internal/exec"
	"git.home.luguber.info/inful/pagestrap/internal/foundation/normalization"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
)

// Kind names a supported environment manager.
type Kind string

const KindUV Kind = "uv"

var kinds = normalization.New("environment manager", map[string]Kind{
	"uv":        KindUV,
	"astral-uv": KindUV,
}, KindUV)

// ParseKind validates the configured manager name. Empty means uv.
func ParseKind(raw string) (Kind, error) {
	return kinds.Parse(raw)
}

// UV manages a project environment with uv.
type UV struct {
	runner         exec.CommandRunner
	installCommand string
	home           string
	binary         string
}

// NewManager creates the manager named in cfg.
func NewManager(cfg config.EnvConfig, runner exec.CommandRunner) (*UV, error) {
	if _, err := ParseKind(cfg.Manager); err != nil {
		return nil, err
	}
	home, _ := os.UserHomeDir()
	return &UV{runner: runner, installCommand: cfg.InstallCommand, home: home}, nil
}

// EnsureInstalled finds uv on PATH or in the installer's default location,
// running the install command when it is absent.
func (u *UV) EnsureInstalled(ctx context.Context) error {
	if path, ok := u.find(); ok {
		u.binary = path
		slog.Debug("uv already installed", logfields.Tool(path))
		return nil
	}
	if u.installCommand == "" {
		return errors.New("uv not found and no install command configured")
	}

	slog.Info("Installing uv", logfields.Tool("uv"))
	res, err := u.runner.Run(ctx, "sh", []string{"-c", u.installCommand}, exec.RunOpts{Attach: true})
	if err != nil {
		return fmt.Errorf("run uv installer: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("uv installer exited with code %d", res.ExitCode)
	}

	path, ok := u.find()
	if !ok {
		return errors.New("uv installer finished but uv is still not on PATH")
	}
	u.binary = path
	return nil
}

func (u *UV) find() (string, bool) {
	if path, err := u.runner.LookPath("uv"); err == nil {
		return path, true
	}
	if u.home == "" {
		return "", false
	}
	for _, dir := range []string{filepath.Join(u.home, ".local", "bin"), filepath.Join(u.home, ".cargo", "bin")} {
		candidate := filepath.Join(dir, "uv")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Sync runs "uv sync" in dir.
func (u *UV) Sync(ctx context.Context, dir string) error {
	bin := u.binary
	if bin == "" {
		bin = "uv"
	}
	slog.Info("Syncing environment", logfields.Tool(bin), logfields.Path(dir))
	res, err := u.runner.Run(ctx, bin, []string{"sync"}, exec.RunOpts{Dir: dir, Attach: true})
	if err != nil {
		return fmt.Errorf("run uv sync: %w", err)
	}
	if res.ExitCode != 0 {
		slog.Warn("uv sync failed", logfields.ExitCode(res.ExitCode))
		return fmt.Errorf("uv sync exited with code %d", res.ExitCode)
	}
	return nil
}
