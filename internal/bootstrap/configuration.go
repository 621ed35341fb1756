package bootstrap

import (
	"log/slog"

	"git.home.luguber.info/inful/pagestrap/internal/decide"
	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
	"git.home.luguber.info/inful/pagestrap/internal/git"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
)

// Configuration is the resolved input of a run. It is not modified after
// ResolveConfiguration returns.
type Configuration struct {
	Owner            string
	Repo             string
	Domain           string
	Yes              bool
	RegenerateReadme bool
}

// Flags are the explicit values given on the command line or through the
// environment. Empty strings mean "not given".
type Flags struct {
	User             string
	Repo             string
	Domain           string
	Yes              bool
	RegenerateReadme bool
	// ReplaceReadme overrides the first-run replace-vs-keep question
	// ("1"/"0", "yes"/"no").
	ReplaceReadme string
}

// Sources supply inferred and interactive values.
type Sources struct {
	Dir      string
	VCS      VersionControlClient
	Prompter Prompter
}

// ResolveConfiguration resolves owner, repository and domain. An explicit
// flag wins. Otherwise the value is asked for interactively with the value
// inferred from the origin remote as the default; with Yes the inferred value
// is taken as is. Owner and repository are required; the domain may stay
// empty.
func ResolveConfiguration(flags Flags, src Sources) (Configuration, error) {
	inferred := inferRemote(src)

	prompter := src.Prompter
	if flags.Yes {
		prompter = nil
	}

	owner, ownerSrc, err := decide.String{
		Override:       flags.User,
		Inferred:       inferred.Owner,
		NonInteractive: flags.Yes,
		Question:       "GitHub user or organization",
	}.Resolve(prompter)
	if err != nil {
		return Configuration{}, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read owner").Fatal().Build()
	}
	if owner == "" {
		return Configuration{}, ferrors.ConfigError("cannot determine GitHub owner").
			WithContext("hint", "pass --user or set GH_USER").Build()
	}

	repo, repoSrc, err := decide.String{
		Override:       flags.Repo,
		Inferred:       inferred.Name,
		NonInteractive: flags.Yes,
		Question:       "Repository name",
	}.Resolve(prompter)
	if err != nil {
		return Configuration{}, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read repository").Fatal().Build()
	}
	if repo == "" {
		return Configuration{}, ferrors.ConfigError("cannot determine repository name").
			WithContext("hint", "pass --repo or set REPO_NAME").Build()
	}

	domain, _, err := decide.String{
		Override: flags.Domain,
		Question: "Custom domain (empty for GitHub Pages)",
	}.Resolve(prompter)
	if err != nil {
		return Configuration{}, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read domain").Fatal().Build()
	}

	slog.Debug("Resolved configuration",
		logfields.Owner(owner), slog.String("owner_source", string(ownerSrc)),
		logfields.Repository(repo), slog.String("repository_source", string(repoSrc)),
		logfields.Domain(domain))

	return Configuration{
		Owner:            owner,
		Repo:             repo,
		Domain:           domain,
		Yes:              flags.Yes,
		RegenerateReadme: flags.RegenerateReadme,
	}, nil
}

func inferRemote(src Sources) git.Remote {
	if src.VCS == nil {
		return git.Remote{}
	}
	url, err := src.VCS.OriginURL(src.Dir)
	if err != nil {
		slog.Debug("No origin remote to infer from", logfields.Path(src.Dir), logfields.Error(err))
		return git.Remote{}
	}
	remote, err := git.ParseRemoteURL(url)
	if err != nil {
		slog.Debug("Origin remote not parseable", logfields.URL(url), logfields.Error(err))
		return git.Remote{}
	}
	return remote
}
