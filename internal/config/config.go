// Package config loads the optional pagestrap.yaml layout file.
//
// The layout only describes where things live (templates, generated artifacts,
// README, state record) and a few tool settings. Owner, repo and domain are
// never read from here; they come from flags, the git remote, or a prompt.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the layout file looked up when --config is not given.
const DefaultPath = "pagestrap.yaml"

// ErrConfigExists is returned by Init when the layout file is present and
// force is not set.
var ErrConfigExists = errors.New("configuration file already exists")

// Config represents the layout configuration.
type Config struct {
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Readme    ReadmeConfig    `yaml:"readme"`
	State     StateConfig     `yaml:"state"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Env       EnvConfig       `yaml:"env"`
}

// TemplatesConfig lists the required artifact templates.
type TemplatesConfig struct {
	DownloadScript     string `yaml:"download_script"`
	PowerShellScript   string `yaml:"powershell_script"`
	RepoURLPlaceholder string `yaml:"repo_url_placeholder"`
}

// OutputConfig describes where generated artifacts are written.
type OutputConfig struct {
	Directory        string `yaml:"directory"`
	DownloadScript   string `yaml:"download_script"`
	PowerShellScript string `yaml:"powershell_script"`
	LandingPage      string `yaml:"landing_page"`
	RepoURLFile      string `yaml:"repo_url_file"`
}

// ReadmeConfig configures the managed README block.
type ReadmeConfig struct {
	Path        string `yaml:"path"`
	Backup      string `yaml:"backup"`
	StartMarker string `yaml:"start_marker"`
	EndMarker   string `yaml:"end_marker"`
}

// StateConfig locates the bootstrap state record.
type StateConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig configures the clone-or-pull installer.
type FetchConfig struct {
	Destination string `yaml:"destination,omitempty"`
	Branch      string `yaml:"branch,omitempty"`
	Entrypoint  string `yaml:"entrypoint"`

	// Transient clone/pull failures are retried with backoff.
	RetryBackoff      string `yaml:"retry_backoff,omitempty"` // fixed|linear|exponential
	RetryInitialDelay string `yaml:"retry_initial_delay,omitempty"`
	RetryMaxDelay     string `yaml:"retry_max_delay,omitempty"`
	MaxRetries        *int   `yaml:"max_retries,omitempty"`
}

// EnvConfig configures the optional Python environment step.
type EnvConfig struct {
	Manager         string   `yaml:"manager"`
	InstallCommand  string   `yaml:"install_command"`
	NotebookCommand []string `yaml:"notebook_command"`
}

// Default returns the layout used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads the layout from configPath. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath) // #nosec G304 -- path comes from the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Templates.DownloadScript == "" {
		c.Templates.DownloadScript = filepath.Join("templates", "dl.sh.tmpl")
	}
	if c.Templates.PowerShellScript == "" {
		c.Templates.PowerShellScript = filepath.Join("templates", "dl.ps1.tmpl")
	}
	if c.Templates.RepoURLPlaceholder == "" {
		c.Templates.RepoURLPlaceholder = "__REPO_URL__"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "docs"
	}
	if c.Output.DownloadScript == "" {
		c.Output.DownloadScript = "dl.sh"
	}
	if c.Output.PowerShellScript == "" {
		c.Output.PowerShellScript = "dl.ps1"
	}
	if c.Output.LandingPage == "" {
		c.Output.LandingPage = "index.html"
	}
	if c.Output.RepoURLFile == "" {
		c.Output.RepoURLFile = "repo-url.txt"
	}
	if c.Readme.Path == "" {
		c.Readme.Path = "README.md"
	}
	if c.Readme.Backup == "" {
		c.Readme.Backup = "README.template.md"
	}
	if c.Readme.StartMarker == "" {
		c.Readme.StartMarker = "<!-- pagestrap:quick-install:start -->"
	}
	if c.Readme.EndMarker == "" {
		c.Readme.EndMarker = "<!-- pagestrap:quick-install:end -->"
	}
	if c.State.Path == "" {
		c.State.Path = filepath.Join(".pagestrap", "state.json")
	}
	if c.Fetch.Entrypoint == "" {
		c.Fetch.Entrypoint = "pyproject.toml"
	}
	if c.Env.Manager == "" {
		c.Env.Manager = "uv"
	}
	if c.Env.InstallCommand == "" {
		c.Env.InstallCommand = "curl -LsSf https://astral.sh/uv/install.sh | sh"
	}
	if len(c.Env.NotebookCommand) == 0 {
		c.Env.NotebookCommand = []string{"uv", "run", "jupyter", "lab"}
	}
}

// OutputPath joins an output file name onto the output directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Output.Directory, name)
}

// Init writes an example layout file to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
