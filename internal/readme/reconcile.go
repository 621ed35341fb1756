package readme

import (
	"git.home.luguber.info/inful/pagestrap/internal/templates"
)

// Phase is the bootstrap state observed at the start of a run.
type Phase string

const (
	// PhaseNoState means no state record exists: this is a first run.
	PhaseNoState Phase = "NO_STATE"
	// PhaseBootstrapped means a state record exists: this is a re-run.
	PhaseBootstrapped Phase = "BOOTSTRAPPED"
)

// Action records which branch of the state machine was taken.
type Action string

const (
	ActionMaterialized        Action = "materialized"
	ActionBlockReplaced       Action = "block_replaced"
	ActionBlockAppended       Action = "block_appended"
	ActionPlaceholdersPatched Action = "placeholders_patched"
)

// Input is everything Reconcile needs to decide the next README.
type Input struct {
	Document string
	Exists   bool
	Block    string
	Phase    Phase

	// Replace is the first-run replace-vs-keep decision.
	Replace bool
	// Regenerate forces the replace path on a re-run.
	Regenerate bool

	Markers Markers
	// Substitutions fill the README template placeholders. The quick-install
	// placeholder is added by Reconcile.
	Substitutions []templates.Substitution
}

// Outcome is the reconciled README.
type Outcome struct {
	Document string
	Action   Action
	// BackupOriginal asks the caller to save the previous README as the
	// template backup before writing Document.
	BackupOriginal bool
}

// Reconcile runs the README state machine:
//
//	NO_STATE      --replace-->            materialize (backup existing)
//	NO_STATE      --keep-->               replace or append block
//	BOOTSTRAPPED  --regenerate-->         materialize (backup existing)
//	BOOTSTRAPPED  --placeholders left-->  patch placeholders (and add a missing block)
//	BOOTSTRAPPED  --otherwise-->          replace or append block
//
// A missing README is always materialized.
func Reconcile(in Input) (Outcome, error) {
	subs := append(append([]templates.Substitution{}, in.Substitutions...), templates.Substitution{
		Placeholder: templates.PlaceholderQuickInstall,
		Value:       in.Markers.Format(in.Block),
	})

	replace := in.Replace
	if in.Phase == PhaseBootstrapped {
		replace = in.Regenerate
	}

	if !in.Exists || replace {
		return Outcome{
			Document:       templates.RenderAll(templates.ReadmeTemplate(), subs...),
			Action:         ActionMaterialized,
			BackupOriginal: in.Exists,
		}, nil
	}

	_, _, hasBlock, err := in.Markers.locate(in.Document)
	if err != nil {
		return Outcome{}, err
	}

	if in.Phase == PhaseBootstrapped && !hasBlock && templates.ContainsAny(in.Document, subs...) {
		doc := templates.ReplaceEvery(in.Document, subs...)
		if !in.Markers.HasBlock(doc) {
			// Without a block the next run would append one and the
			// README would change twice for the same configuration.
			doc = in.Markers.AppendBlock(doc, in.Block)
		}
		return Outcome{Document: doc, Action: ActionPlaceholdersPatched}, nil
	}

	doc, appended, err := in.Markers.UpsertBlock(in.Document, in.Block)
	if err != nil {
		return Outcome{}, err
	}
	action := ActionBlockReplaced
	if appended {
		action = ActionBlockAppended
	}
	return Outcome{Document: doc, Action: action}, nil
}
