package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/pagestrap/internal/bootstrap"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct {
	URL    string `help:"Repository URL (default: contents of the generated repo-url file)"`
	Dest   string `help:"Checkout directory (default: repository name)"`
	Branch string `short:"b" help:"Branch to check out"`

	SetupEnv bool `name:"setup-env" help:"Sync the Python environment in the checkout"`
	Launch   bool `help:"Launch the notebook server after environment setup"`
	Yes      bool `short:"y" help:"Never prompt"`
}

func (f *FetchCmd) Run(g *Global, root *CLI) error {
	layout, err := root.loadLayout()
	if err != nil {
		return err
	}
	ctx := context.Background()
	res, err := newReconciler(g, root, layout, f.Yes).Fetch(ctx, bootstrap.FetchOptions{URL: f.URL, Dest: f.Dest, Branch: f.Branch})
	if err != nil {
		return err
	}
	if res.Commit != "" {
		_, _ = fmt.Fprintf(g.Stdout, "%s at %.12s\n", res.Path, res.Commit)
	}

	if !f.SetupEnv {
		return nil
	}
	return runEnvironment(ctx, g, layout.Env, bootstrap.EnvOptions{
		Dir:      res.Path,
		Manifest: layout.Fetch.Entrypoint,
		Setup:    "yes",
		Launch:   yesIf(f.Launch),
		Yes:      f.Yes,
	})
}
