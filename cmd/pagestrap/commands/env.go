package commands

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/pagestrap/internal/bootstrap"
)

// EnvCmd implements the 'env' command.
type EnvCmd struct {
	Project string `arg:"" optional:"" help:"Project directory (default: --dir)"`
	Launch  bool   `help:"Launch the notebook server after syncing"`
	Yes     bool   `short:"y" help:"Never prompt"`
}

func (e *EnvCmd) Run(g *Global, root *CLI) error {
	layout, err := root.loadLayout()
	if err != nil {
		return err
	}
	dir := root.Dir
	if e.Project != "" {
		dir = e.Project
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root.Dir, dir)
		}
	}
	return runEnvironment(context.Background(), g, layout.Env, bootstrap.EnvOptions{
		Dir:      dir,
		Manifest: layout.Fetch.Entrypoint,
		Setup:    "yes",
		Launch:   yesIf(e.Launch),
		Yes:      e.Yes,
	})
}
