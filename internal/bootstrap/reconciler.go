package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagestrap/internal/config"
	"git.home.luguber.info/inful/pagestrap/internal/decide"
	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
	"git.home.luguber.info/inful/pagestrap/internal/logfields"
	"git.home.luguber.info/inful/pagestrap/internal/readme"
	"git.home.luguber.info/inful/pagestrap/internal/retry"
	"git.home.luguber.info/inful/pagestrap/internal/state"
)

// Reconciler runs bootstrap, reset and fetch against one working directory.
type Reconciler struct {
	dir      string
	layout   *config.Config
	store    state.Store
	vcs      VersionControlClient
	checksum Checksummer
	prompter Prompter
	out      io.Writer
	retry    *retry.Policy
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithStore replaces the state store (default: JSON record at the layout path).
func WithStore(s state.Store) Option { return func(r *Reconciler) { r.store = s } }

// WithVCS sets the version control client used for inference and fetch.
func WithVCS(v VersionControlClient) Option { return func(r *Reconciler) { r.vcs = v } }

// WithChecksummer replaces the SHA-256 checksummer.
func WithChecksummer(c Checksummer) Option { return func(r *Reconciler) { r.checksum = c } }

// WithPrompter enables interactive questions.
func WithPrompter(p Prompter) Option { return func(r *Reconciler) { r.prompter = p } }

// WithOutput sets where step announcements are written (default: discard).
func WithOutput(w io.Writer) Option { return func(r *Reconciler) { r.out = w } }

// WithRetryPolicy replaces the fetch retry policy from the layout.
func WithRetryPolicy(p retry.Policy) Option { return func(r *Reconciler) { r.retry = &p } }

// NewReconciler creates a reconciler rooted at dir. Relative layout paths are
// resolved against dir.
func NewReconciler(dir string, layout *config.Config, opts ...Option) *Reconciler {
	if layout == nil {
		layout = config.Default()
	}
	r := &Reconciler{
		dir:      dir,
		layout:   layout,
		checksum: SHA256Checksummer{},
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = state.NewJSONStore(r.path(layout.State.Path))
	}
	return r
}

// Result summarizes a bootstrap run.
type Result struct {
	Configuration Configuration
	Derived       DerivedValues
	Phase         readme.Phase
	ReadmeAction  readme.Action
	Written       []string
	// Warnings are degraded steps that did not stop the run.
	Warnings []error
}

func (r *Reconciler) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.dir, p)
}

func (r *Reconciler) announce(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

// rel renders a path for announcements relative to the working directory.
func (r *Reconciler) rel(p string) string {
	if rel, err := filepath.Rel(r.dir, p); err == nil {
		return rel
	}
	return p
}

// Run performs a full bootstrap: resolve, validate, generate artifacts,
// reconcile the README and overwrite the state record.
func (r *Reconciler) Run(ctx context.Context, flags Flags) (*Result, error) {
	cfg, err := ResolveConfiguration(flags, Sources{Dir: r.dir, VCS: r.vcs, Prompter: r.prompter})
	if err != nil {
		return nil, err
	}
	return r.Apply(ctx, cfg, flags.ReplaceReadme)
}

// Apply runs the bootstrap for an already resolved configuration.
// replaceOverride is the explicit answer to the first-run README question.
func (r *Reconciler) Apply(ctx context.Context, cfg Configuration, replaceOverride string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	derived := DeriveURLs(cfg)
	slog.Info("Bootstrapping repository",
		logfields.Owner(cfg.Owner), logfields.Repository(cfg.Repo), logfields.Domain(cfg.Domain),
		logfields.URL(derived.PagesBase))

	tmpls, err := r.loadTemplates()
	if err != nil {
		return nil, err
	}

	exists, err := r.store.Exists()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read state record").Build()
	}
	phase := readme.PhaseNoState
	if exists {
		phase = readme.PhaseBootstrapped
	}
	slog.Debug("Observed bootstrap state", logfields.State(string(phase)))

	plan, err := r.planReadme(cfg, derived, phase, replaceOverride)
	if err != nil {
		return nil, err
	}

	res := &Result{Configuration: cfg, Phase: phase}

	derived, err = r.writeArtifacts(cfg, derived, tmpls, res)
	if err != nil {
		return nil, err
	}
	res.Derived = derived

	action, err := r.reconcileReadme(plan, derived, res)
	if err != nil {
		return nil, err
	}
	res.ReadmeAction = action

	if err := r.WriteState(cfg, derived, derived.ScriptHash); err != nil {
		return nil, err
	}
	res.Written = append(res.Written, r.path(r.layout.State.Path))
	return res, nil
}

// WriteState overwrites the state record. Nothing from a previous record is
// kept.
func (r *Reconciler) WriteState(cfg Configuration, derived DerivedValues, hash string) error {
	rec := state.Record{
		GHUser:     cfg.Owner,
		RepoName:   cfg.Repo,
		RepoURL:    derived.RepoURL,
		PagesBase:  derived.PagesBase,
		DLShSHA256: hash,
	}
	if err := r.store.Save(rec); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write state record").Build()
	}
	r.announce("wrote %s", r.rel(r.path(r.layout.State.Path)))
	return nil
}

// readmePlan is the README as read before any artifact is written, with the
// replace-vs-keep decision already taken.
type readmePlan struct {
	path   string
	doc    string
	exists bool
	phase  readme.Phase
	cfg    Configuration
	// replace is the first-run answer; it is ignored once bootstrapped.
	replace bool
}

// planReadme reads the README, takes the replace decision and checks that
// the document can be reconciled. Nothing is written.
func (r *Reconciler) planReadme(cfg Configuration, derived DerivedValues, phase readme.Phase, replaceOverride string) (readmePlan, error) {
	readmePath := r.path(r.layout.Readme.Path)
	doc, readmeExists, err := readOptional(readmePath)
	if err != nil {
		return readmePlan{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read README").
			WithContext("path", readmePath).Build()
	}
	plan := readmePlan{path: readmePath, doc: doc, exists: readmeExists, phase: phase, cfg: cfg}

	if phase == readme.PhaseNoState && readmeExists {
		override := replaceOverride
		if override == "" && cfg.RegenerateReadme {
			override = "yes"
		}
		plan.replace, _, err = decide.Bool{
			Override:       override,
			Default:        false,
			NonInteractive: cfg.Yes,
			Question:       "Replace README with a short generated one?",
		}.Resolve(r.prompter)
		if err != nil {
			return readmePlan{}, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to decide README handling").Fatal().Build()
		}
	}

	if _, err := r.reconcileInput(plan, derived); err != nil {
		return readmePlan{}, err
	}
	return plan, nil
}

func (r *Reconciler) reconcileInput(plan readmePlan, derived DerivedValues) (readme.Outcome, error) {
	outcome, err := readme.Reconcile(readme.Input{
		Document:      plan.doc,
		Exists:        plan.exists,
		Block:         QuickInstallBlock(derived, r.layout.Output.DownloadScript),
		Phase:         plan.phase,
		Replace:       plan.replace,
		Regenerate:    plan.cfg.RegenerateReadme,
		Markers:       readme.Markers{Start: r.layout.Readme.StartMarker, End: r.layout.Readme.EndMarker},
		Substitutions: readmeSubstitutions(plan.cfg, derived),
	})
	if err != nil {
		return readme.Outcome{}, ferrors.WrapError(err, ferrors.CategoryConfig, "cannot update README block").
			WithContext("path", plan.path).Fatal().Build()
	}
	return outcome, nil
}

func (r *Reconciler) reconcileReadme(plan readmePlan, derived DerivedValues, res *Result) (readme.Action, error) {
	outcome, err := r.reconcileInput(plan, derived)
	if err != nil {
		return "", err
	}

	if outcome.BackupOriginal {
		if err := r.backupReadme(plan.doc); err != nil {
			return "", err
		}
	}

	if outcome.Document != plan.doc || !plan.exists {
		if err := writeFile(plan.path, []byte(outcome.Document), 0o644); err != nil {
			return "", err
		}
		res.Written = append(res.Written, plan.path)
		r.announce("updated %s (%s)", r.rel(plan.path), outcome.Action)
	} else {
		slog.Debug("README unchanged", logfields.Path(plan.path))
	}
	return outcome.Action, nil
}

// backupReadme saves the current README as the template backup, rotating a
// previous backup aside first.
func (r *Reconciler) backupReadme(doc string) error {
	backup := r.path(r.layout.Readme.Backup)
	if _, err := os.Stat(backup); err == nil {
		rotated := backup + ".bak"
		if err := os.Rename(backup, rotated); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to rotate README backup").
				WithContext("path", backup).Build()
		}
		r.announce("moved %s to %s", r.rel(backup), r.rel(rotated))
	}
	if err := writeFile(backup, []byte(doc), 0o644); err != nil {
		return err
	}
	r.announce("saved README as %s", r.rel(backup))
	return nil
}

func readOptional(path string) (string, bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- layout path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}
