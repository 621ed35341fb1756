package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"

	"git.home.luguber.info/inful/pagestrap/internal/readme"
	"git.home.luguber.info/inful/pagestrap/internal/state"
)

// StatusCmd implements the 'status' command.
type StatusCmd struct{}

func (s *StatusCmd) Run(g *Global, root *CLI) error {
	layout, err := root.loadLayout()
	if err != nil {
		return err
	}
	statePath := filepath.Join(root.Dir, layout.State.Path)
	rec, err := state.NewJSONStore(statePath).Load()
	if errors.Is(err, state.ErrNotBootstrapped) {
		_, _ = fmt.Fprintln(g.Stdout, "not bootstrapped (run pagestrap init)")
		return nil
	}
	if err != nil {
		return err
	}

	block := "missing"
	if data, err := os.ReadFile(filepath.Join(root.Dir, layout.Readme.Path)); err == nil { // #nosec G304 -- layout path
		markers := readme.Markers{Start: layout.Readme.StartMarker, End: layout.Readme.EndMarker}
		if markers.HasBlock(string(data)) {
			block = "present"
		}
	}
	backup := "none"
	if _, err := os.Stat(filepath.Join(root.Dir, layout.Readme.Backup)); err == nil {
		backup = layout.Readme.Backup
	}

	table := tablewriter.NewWriter(g.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range [][]string{
		{"bootstrapped", rec.Timestamp.Format(time.RFC3339)},
		{"gh_user", rec.GHUser},
		{"repo_name", rec.RepoName},
		{"repo_url", rec.RepoURL},
		{"pages_base", rec.PagesBase},
		{"dl_sh_sha256", rec.DLShSHA256},
		{"readme block", block},
		{"readme backup", backup},
	} {
		table.Append(row)
	}
	table.Render()
	return nil
}
