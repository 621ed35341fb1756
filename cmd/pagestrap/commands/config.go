package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagestrap/internal/config"
	"git.home.luguber.info/inful/pagestrap/internal/templates"
)

// LayoutCmd groups the 'config' subcommands.
type LayoutCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write an example layout file"`
}

// ConfigInitCmd implements 'config init'.
type ConfigInitCmd struct {
	Force     bool `help:"Overwrite existing files"`
	Templates bool `help:"Also write the stock dl.sh and dl.ps1 templates to the layout's template paths"`
}

func (c *ConfigInitCmd) Run(g *Global, root *CLI) error {
	path := root.LayoutPath()
	switch err := config.Init(path, c.Force); {
	case err == nil:
		_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", path)
	case errors.Is(err, config.ErrConfigExists) && c.Templates:
		_, _ = fmt.Fprintf(g.Stdout, "kept existing %s\n", path)
	default:
		return err
	}

	if !c.Templates {
		return nil
	}
	layout, err := root.loadLayout()
	if err != nil {
		return err
	}
	for _, tmpl := range []struct{ rel, body string }{
		{layout.Templates.DownloadScript, templates.DefaultDownloadScript()},
		{layout.Templates.PowerShellScript, templates.DefaultPowerShellScript()},
	} {
		target := tmpl.rel
		if !filepath.IsAbs(target) {
			target = filepath.Join(root.Dir, target)
		}
		if _, err := os.Stat(target); err == nil && !c.Force {
			_, _ = fmt.Fprintf(g.Stdout, "kept existing %s\n", tmpl.rel)
			continue
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := templates.WriteFileAtomic(target, []byte(tmpl.body), 0o644); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.Stdout, "wrote %s\n", tmpl.rel)
	}
	return nil
}
