package pyenv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/pagestrap/internal/exec"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
)

// Launcher starts the notebook server in the foreground.
type Launcher struct {
	runner  exec.CommandRunner
	command []string
}

// NewLauncher creates a launcher running command (for example
// "uv run jupyter lab").
func NewLauncher(command []string, runner exec.CommandRunner) *Launcher {
	return &Launcher{runner: runner, command: command}
}

// Supported reports whether the project in dir declares a notebook server.
func (l *Launcher) Supported(dir string) bool {
	p, err := LoadProject(dir)
	if err != nil {
		slog.Debug("Cannot inspect project", logfields.Path(dir), logfields.Error(err))
		return false
	}
	return p.HasNotebook()
}

// Launch runs the notebook command attached to the terminal and returns when
// the server exits.
func (l *Launcher) Launch(ctx context.Context, dir string) error {
	if len(l.command) == 0 {
		return errors.New("no notebook command configured")
	}
	slog.Info("Launching notebook server", logfields.Tool(l.command[0]), logfields.Path(dir))
	res, err := l.runner.Run(ctx, l.command[0], l.command[1:], exec.RunOpts{Dir: dir, Attach: true})
	if err != nil {
		return fmt.Errorf("launch notebook server: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("notebook server exited with code %d", res.ExitCode)
	}
	return nil
}
