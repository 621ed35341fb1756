package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/pagestrap/internal/bootstrap"
	"git.home.luguber.info/inful/pagestrap/internal/config"
	"git.home.luguber.info/inful/pagestrap/internal/decide"
	"git.home.luguber.info/inful/pagestrap/internal/git"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
)

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
	RunID  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// VCS replaces the go-git client (tests).
	VCS bootstrap.VersionControlClient
}

// NewGlobal returns a Global wired to the process stdio.
func NewGlobal() *Global {
	return &Global{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Layout file path (relative to --dir)" default:"${config_file}"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Dir     string           `short:"C" help:"Repository working directory" default:"." type:"path"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init   InitCmd   `cmd:"" help:"Personalize the repository and regenerate download artifacts"`
	Reset  ResetCmd  `cmd:"" help:"Delete the state record and restore the original README"`
	Status StatusCmd `cmd:"" help:"Show the recorded bootstrap state"`
	Fetch  FetchCmd  `cmd:"" help:"Clone the repository, or pull if already cloned"`
	Env    EnvCmd    `cmd:"" help:"Install uv, sync the Python environment and optionally launch notebooks"`
	Layout LayoutCmd `cmd:"" name:"config" help:"Manage the layout file"`
}

// Vars are the interpolation variables the CLI tags refer to.
func Vars(version string) kong.Vars {
	return kong.Vars{"version": version, "config_file": config.DefaultPath}
}

// EnvDir returns the --dir/-C value from raw arguments so .env can be loaded
// from the repository directory before kong resolves env-tagged flags.
// Parsing stops at "--".
func EnvDir(args []string) string {
	dir := "."
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return dir
		case arg == "--dir" || arg == "-C":
			if i+1 < len(args) {
				dir = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--dir="):
			dir = strings.TrimPrefix(arg, "--dir=")
		case strings.HasPrefix(arg, "-C") && len(arg) > 2:
			dir = strings.TrimPrefix(strings.TrimPrefix(arg, "-C"), "=")
		}
	}
	return dir
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	stderr := g.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	g.RunID = uuid.NewString()
	g.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	return nil
}

// LayoutPath resolves --config against --dir.
func (c *CLI) LayoutPath() string {
	if filepath.IsAbs(c.Config) {
		return c.Config
	}
	return filepath.Join(c.Dir, c.Config)
}

func (c *CLI) loadLayout() (*config.Config, error) {
	return config.Load(c.LayoutPath())
}

// BootstrapFlags are shared by init and reset --reinit.
type BootstrapFlags struct {
	User          string `short:"u" env:"GH_USER" help:"GitHub user or organization (default: origin remote owner)"`
	Repo          string `short:"r" env:"REPO_NAME" help:"Repository name (default: origin remote name)"`
	Domain        string `short:"d" env:"PAGES_DOMAIN" help:"Custom Pages domain"`
	Yes           bool   `short:"y" help:"Never prompt; use inferred values and defaults"`
	RegenReadme   bool   `name:"regen-readme" help:"Replace the README with the generated one"`
	ReplaceReadme string `name:"replace-readme" env:"PAGESTRAP_REPLACE_README" help:"Answer the first-run README question (yes/no)" placeholder:"yes|no"`
}

func (f BootstrapFlags) toFlags() bootstrap.Flags {
	return bootstrap.Flags{
		User:             f.User,
		Repo:             f.Repo,
		Domain:           f.Domain,
		Yes:              f.Yes,
		RegenerateReadme: f.RegenReadme,
		ReplaceReadme:    f.ReplaceReadme,
	}
}

func prompter(g *Global, yes bool) bootstrap.Prompter {
	if yes || g.Stdin == nil {
		return nil
	}
	return decide.NewLinePrompter(g.Stdin, g.Stdout)
}

func vcs(g *Global) bootstrap.VersionControlClient {
	if g.VCS != nil {
		return g.VCS
	}
	return git.NewClient(g.Stderr)
}

func newReconciler(g *Global, root *CLI, layout *config.Config, yes bool) *bootstrap.Reconciler {
	return bootstrap.NewReconciler(root.Dir, layout,
		bootstrap.WithVCS(vcs(g)),
		bootstrap.WithPrompter(prompter(g, yes)),
		bootstrap.WithOutput(g.Stdout),
	)
}
