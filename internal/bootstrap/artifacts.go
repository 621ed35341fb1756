package bootstrap

import (
	"errors"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
	"git.home.luguber.info/inful/pagestrap/internal/markdown"
	"git.home.luguber.info/inful/pagestrap/internal/templates"
)

type artifactTemplates struct {
	downloadScript   string
	powerShellScript string
}

// loadTemplates reads every required template and checks the output
// directory. It runs before anything is written.
func (r *Reconciler) loadTemplates() (artifactTemplates, error) {
	var tmpls artifactTemplates
	for _, t := range []struct {
		path string
		dst  *string
	}{
		{r.layout.Templates.DownloadScript, &tmpls.downloadScript},
		{r.layout.Templates.PowerShellScript, &tmpls.powerShellScript},
	} {
		p := r.path(t.path)
		data, err := os.ReadFile(p) // #nosec G304 -- layout path
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return tmpls, ferrors.MissingArtifactError("required template not found").
					WithContext("path", r.rel(p)).Build()
			}
			return tmpls, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read template").
				WithContext("path", r.rel(p)).Fatal().Build()
		}
		*t.dst = string(data)
	}

	outDir := r.path(r.layout.Output.Directory)
	if info, err := os.Stat(outDir); err == nil && !info.IsDir() {
		return tmpls, ferrors.FileSystemError("output path is not a directory").
			WithContext("path", r.rel(outDir)).Fatal().Build()
	}
	return tmpls, nil
}

// writeArtifacts writes the download scripts, the repo-url file and the
// landing page. The download script hash is filled into the returned values.
func (r *Reconciler) writeArtifacts(cfg Configuration, d DerivedValues, tmpls artifactTemplates, res *Result) (DerivedValues, error) {
	placeholder := r.layout.Templates.RepoURLPlaceholder

	dlPath := r.path(r.layout.OutputPath(r.layout.Output.DownloadScript))
	if err := r.writeArtifact(dlPath, templates.Render(tmpls.downloadScript, placeholder, d.RepoURL), 0o755, res); err != nil {
		return d, err
	}

	hash, err := r.checksum.Sum(dlPath)
	if err != nil {
		warn := ferrors.DegradedError("checksum unavailable").WithCause(err).
			WithContext("path", r.rel(dlPath)).Build()
		slog.Warn("Could not compute download script checksum", logfields.Artifact(r.rel(dlPath)), logfields.Error(err))
		res.Warnings = append(res.Warnings, warn)
		hash = ChecksumUnavailable
	}
	d.ScriptHash = hash

	ps1Path := r.path(r.layout.OutputPath(r.layout.Output.PowerShellScript))
	if err := r.writeArtifact(ps1Path, templates.Render(tmpls.powerShellScript, placeholder, d.RepoURL), 0o644, res); err != nil {
		return d, err
	}

	urlPath := r.path(r.layout.OutputPath(r.layout.Output.RepoURLFile))
	if err := r.writeArtifact(urlPath, d.RepoURL+"\n", 0o644, res); err != nil {
		return d, err
	}

	page, err := r.landingPage(cfg, d)
	if err != nil {
		return d, err
	}
	indexPath := r.path(r.layout.OutputPath(r.layout.Output.LandingPage))
	if err := r.writeArtifact(indexPath, page, 0o644, res); err != nil {
		return d, err
	}
	return d, nil
}

func (r *Reconciler) writeArtifact(path, content string, perm os.FileMode, res *Result) error {
	if err := writeFile(path, []byte(content), perm); err != nil {
		return err
	}
	res.Written = append(res.Written, path)
	r.announce("wrote %s", r.rel(path))
	slog.Debug("Wrote artifact", logfields.Artifact(filepath.Base(path)), logfields.Path(path))
	return nil
}

func (r *Reconciler) landingPage(cfg Configuration, d DerivedValues) (string, error) {
	block, err := markdown.RenderHTML([]byte(QuickInstallBlock(d, r.layout.Output.DownloadScript)))
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render quick-install block").Build()
	}
	cmds := make([]templates.LandingCommand, 0, len(d.InstallCommands))
	for _, c := range d.InstallCommands {
		cmds = append(cmds, templates.LandingCommand{Label: c.Label, Shell: c.Shell, Command: c.Command, Language: c.Shell})
	}
	page, err := templates.RenderLandingPage(templates.LandingPage{
		Title:        Title(cfg.Repo),
		Owner:        cfg.Owner,
		Repo:         cfg.Repo,
		RepoURL:      d.RepoURL,
		PagesBase:    d.PagesBase,
		Commands:     cmds,
		ScriptName:   r.layout.Output.DownloadScript,
		ScriptSHA256: d.ScriptHash,
		// #nosec G203 -- goldmark output with raw HTML disabled
		QuickInstall: template.HTML(block),
	})
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render landing page").Build()
	}
	return page, nil
}

// Title turns a repository name like "data-tools" into "Data Tools".
func Title(repo string) string {
	words := strings.FieldsFunc(repo, func(r rune) bool { return r == '-' || r == '_' || r == '.' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func readmeSubstitutions(cfg Configuration, d DerivedValues) []templates.Substitution {
	return []templates.Substitution{
		{Placeholder: templates.PlaceholderTitle, Value: Title(cfg.Repo)},
		{Placeholder: templates.PlaceholderOwner, Value: cfg.Owner},
		{Placeholder: templates.PlaceholderRepo, Value: cfg.Repo},
		{Placeholder: templates.PlaceholderRepoURL, Value: d.RepoURL},
		{Placeholder: templates.PlaceholderPagesBase, Value: d.PagesBase},
	}
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := templates.WriteFileAtomic(path, data, perm); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write file").
			WithContext("path", path).Build()
	}
	return nil
}
