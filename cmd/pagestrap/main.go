package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagestrap/cmd/pagestrap/commands"
	"git.home.luguber.info/inful/pagestrap/internal/config"
	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
	"git.home.luguber.info/inful/pagestrap/internal/version"
)

func main() {
	// Values from .env feed the env-tagged flags; the real environment wins.
	_, _ = config.LoadEnvFile(commands.EnvDir(os.Args[1:]))

	g := commands.NewGlobal()
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("pagestrap"),
		kong.Description("Bootstrap a notebook template repository for GitHub Pages."),
		kong.UsageOnError(),
		commands.Vars(version.String()),
		kong.Bind(g),
	)

	err := parser.Run(g, cli)
	os.Exit(ferrors.NewCLIErrorAdapter(cli.Verbose, g.Logger).Report(err))
}
