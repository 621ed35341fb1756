package commands

import (
	"context"
	"fmt"
)

// ResetCmd implements the 'reset' command.
type ResetCmd struct {
	BootstrapFlags `embed:""`

	Reinit bool `help:"Run init again after resetting"`
}

func (r *ResetCmd) Run(g *Global, root *CLI) error {
	layout, err := root.loadLayout()
	if err != nil {
		return err
	}
	res, err := newReconciler(g, root, layout, r.Yes).Reset(context.Background(), r.Reinit, r.toFlags())
	if err != nil {
		return err
	}
	if !res.StateRemoved && !res.ReadmeRestored {
		_, _ = fmt.Fprintln(g.Stdout, "nothing to reset")
	}
	if res.Rerun != nil {
		printSummary(g, res.Rerun)
	}
	return nil
}
