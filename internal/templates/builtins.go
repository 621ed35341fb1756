package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

// README placeholders understood by the built-in README template and by
// placeholder patching of an existing README.
const (
	PlaceholderOwner        = "__GH_USER__"
	PlaceholderRepo         = "__REPO_NAME__"
	PlaceholderTitle        = "__REPO_TITLE__"
	PlaceholderRepoURL      = "__REPO_URL__"
	PlaceholderPagesBase    = "__PAGES_BASE__"
	PlaceholderQuickInstall = "__QUICK_INSTALL__"
)

//go:embed files/readme.md.tmpl
var readmeTemplate string

//go:embed files/dl.sh.tmpl
var downloadScriptTemplate string

//go:embed files/dl.ps1.tmpl
var powerShellScriptTemplate string

//go:embed files/index.html.tmpl
var landingTemplateText string

var landingTemplate = template.Must(template.New("index.html").Parse(landingTemplateText))

// ReadmeTemplate returns the short README materialized on a "replace" run.
func ReadmeTemplate() string {
	return readmeTemplate
}

// DefaultDownloadScript is the stock dl.sh template written by
// "config init --templates".
func DefaultDownloadScript() string {
	return downloadScriptTemplate
}

// DefaultPowerShellScript is the stock dl.ps1 template.
func DefaultPowerShellScript() string {
	return powerShellScriptTemplate
}

// LandingCommand is one install one-liner shown on the landing page.
type LandingCommand struct {
	Label    string
	Shell    string
	Command  string
	Language string
}

// LandingPage is the data rendered into index.html.
type LandingPage struct {
	Title        string
	Owner        string
	Repo         string
	RepoURL      string
	PagesBase    string
	Commands     []LandingCommand
	ScriptName   string
	ScriptSHA256 string
	QuickInstall template.HTML
}

// RenderLandingPage renders the static download page.
func RenderLandingPage(page LandingPage) (string, error) {
	var buf bytes.Buffer
	if err := landingTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render landing page: %w", err)
	}
	return buf.String(), nil
}
