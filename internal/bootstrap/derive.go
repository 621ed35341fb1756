package bootstrap

import (
	"fmt"
	"strings"
)

// ChecksumUnavailable replaces the script hash when it cannot be computed.
const ChecksumUnavailable = "(sha256 unavailable)"

// InstallCommand is one copy-paste install one-liner.
type InstallCommand struct {
	Label   string
	Shell   string
	Command string
}

// DerivedValues are computed from a Configuration.
type DerivedValues struct {
	RepoURL         string
	PagesBase       string
	InstallCommands []InstallCommand
	// ScriptHash is the SHA-256 of the generated download script, filled in
	// after it is written.
	ScriptHash string
}

// DeriveURLs computes the repository URL, the pages base and the install
// commands. Input is used as given.
func DeriveURLs(cfg Configuration) DerivedValues {
	base := fmt.Sprintf("https://%s.github.io/%s", cfg.Owner, cfg.Repo)
	if cfg.Domain != "" {
		base = "https://" + cfg.Domain
	}
	return DerivedValues{
		RepoURL:   fmt.Sprintf("https://github.com/%s/%s.git", cfg.Owner, cfg.Repo),
		PagesBase: base,
		InstallCommands: []InstallCommand{
			{Label: "macOS / Linux (curl)", Shell: "bash", Command: fmt.Sprintf("curl -fsSL %s/dl.sh | bash", base)},
			{Label: "macOS / Linux (wget)", Shell: "bash", Command: fmt.Sprintf("wget -qO- %s/dl.sh | bash", base)},
			{Label: "Windows (PowerShell)", Shell: "powershell", Command: fmt.Sprintf("irm %s/dl.ps1 | iex", base)},
		},
	}
}

// QuickInstallBlock renders the markdown body placed between the README
// markers.
func QuickInstallBlock(d DerivedValues, scriptName string) string {
	var b strings.Builder
	b.WriteString("## Quick install\n")
	for _, c := range d.InstallCommands {
		fmt.Fprintf(&b, "\n%s:\n\n```%s\n%s\n```\n", c.Label, c.Shell, c.Command)
	}
	if d.ScriptHash != "" {
		fmt.Fprintf(&b, "\nSHA-256 of `%s`: `%s`\n", scriptName, d.ScriptHash)
	}
	return b.String()
}
