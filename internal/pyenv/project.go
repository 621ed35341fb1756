package pyenv

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project file uv works from.
const ManifestName = "pyproject.toml"

// notebookPackages are the distributions that provide a notebook server.
var notebookPackages = []string{"jupyter", "jupyterlab", "notebook"}

// Project is the part of pyproject.toml pagestrap looks at.
type Project struct {
	Name                 string
	Dependencies         []string
	OptionalDependencies map[string][]string
	DependencyGroups     map[string][]any
}

type manifest struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	// Entries can be strings or {include-group = "..."} tables.
	DependencyGroups map[string][]any `toml:"dependency-groups"`
}

// LoadProject reads dir/pyproject.toml.
func LoadProject(dir string) (*Project, error) {
	var raw manifest
	path := filepath.Join(dir, ManifestName)
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &Project{
		Name:                 strings.TrimSpace(raw.Project.Name),
		Dependencies:         raw.Project.Dependencies,
		OptionalDependencies: raw.Project.OptionalDependencies,
		DependencyGroups:     raw.DependencyGroups,
	}, nil
}

// HasNotebook reports whether any dependency list pulls in a notebook server.
func (p *Project) HasNotebook() bool {
	if anyNotebook(p.Dependencies) {
		return true
	}
	for _, deps := range p.OptionalDependencies {
		if anyNotebook(deps) {
			return true
		}
	}
	for _, entries := range p.DependencyGroups {
		var deps []string
		for _, e := range entries {
			if s, ok := e.(string); ok {
				deps = append(deps, s)
			}
		}
		if anyNotebook(deps) {
			return true
		}
	}
	return false
}

func anyNotebook(deps []string) bool {
	for _, d := range deps {
		name := requirementName(d)
		for _, pkg := range notebookPackages {
			if name == pkg {
				return true
			}
		}
	}
	return false
}

// requirementName extracts the normalized distribution name from a PEP 508
// requirement such as "JupyterLab[all]>=4; python_version>'3.9'".
func requirementName(req string) string {
	req = strings.TrimSpace(req)
	end := strings.IndexFunc(req, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '.')
	})
	if end >= 0 {
		req = req[:end]
	}
	return strings.ToLower(strings.NewReplacer("_", "-", ".", "-").Replace(req))
}
