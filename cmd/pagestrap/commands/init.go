package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/pagestrap/internal/bootstrap"
	"git.home.luguber.info/inful/pagestrap/internal/config"
	"git.home.luguber.info/inful/pagestrap/internal/exec"
	"git.home.luguber.info/inful/pagestrap/internal/pyenv"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	BootstrapFlags `embed:""`

	SetupEnv bool `name:"setup-env" help:"Install uv and sync the Python environment afterwards"`
	Launch   bool `help:"Launch the notebook server after environment setup"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	layout, err := root.loadLayout()
	if err != nil {
		return err
	}
	ctx := context.Background()

	res, err := newReconciler(g, root, layout, i.Yes).Run(ctx, i.toFlags())
	if err != nil {
		return err
	}
	printSummary(g, res)

	// Without --setup-env the environment step is only offered interactively.
	if !i.SetupEnv && i.Yes {
		return nil
	}
	setup := ""
	if i.SetupEnv {
		setup = "yes"
	}
	return runEnvironment(ctx, g, layout.Env, bootstrap.EnvOptions{
		Dir:      root.Dir,
		Manifest: layout.Fetch.Entrypoint,
		Setup:    setup,
		Launch:   yesIf(i.Launch),
		Yes:      i.Yes,
	})
}

func printSummary(g *Global, res *bootstrap.Result) {
	_, _ = fmt.Fprintf(g.Stdout, "\n%s/%s is served from %s\n", res.Configuration.Owner, res.Configuration.Repo, res.Derived.PagesBase)
	for _, c := range res.Derived.InstallCommands {
		_, _ = fmt.Fprintf(g.Stdout, "  %-22s %s\n", c.Label+":", c.Command)
	}
}

func runEnvironment(ctx context.Context, g *Global, cfg config.EnvConfig, opts bootstrap.EnvOptions) error {
	runner := &exec.RealRunner{Stdin: g.Stdin, Stdout: g.Stdout, Stderr: g.Stderr}
	manager, err := pyenv.NewManager(cfg, runner)
	if err != nil {
		return err
	}
	env := &bootstrap.Environment{
		Manager:  manager,
		Launcher: pyenv.NewLauncher(cfg.NotebookCommand, runner),
		Prompter: prompter(g, opts.Yes),
		Out:      g.Stdout,
	}
	_, err = env.SetupEnvironment(ctx, opts)
	return err
}

func yesIf(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
