package bootstrap

import (
	"context"
	"os"

	ferrors "git.home.luguber.info/inful/pagestrap/internal/foundation/errors"
)

// ResetResult reports what Reset undid.
type ResetResult struct {
	StateRemoved   bool
	ReadmeRestored bool
	// Rerun is set when Reset re-ran the bootstrap.
	Rerun *Result
}

// Reset deletes the state record and restores the README from the template
// backup when one exists, removing the backup. With reinit the bootstrap is
// run again from the first-run state.
func (r *Reconciler) Reset(ctx context.Context, reinit bool, flags Flags) (*ResetResult, error) {
	res := &ResetResult{}

	removed, err := r.store.Delete()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to delete state record").Build()
	}
	res.StateRemoved = removed
	if removed {
		r.announce("removed %s", r.rel(r.path(r.layout.State.Path)))
	}

	backup := r.path(r.layout.Readme.Backup)
	original, ok, err := readOptional(backup)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read README backup").
			WithContext("path", backup).Build()
	}
	if ok {
		readmePath := r.path(r.layout.Readme.Path)
		if err := writeFile(readmePath, []byte(original), 0o644); err != nil {
			return nil, err
		}
		if err := os.Remove(backup); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to remove README backup").
				WithContext("path", backup).Build()
		}
		res.ReadmeRestored = true
		r.announce("restored %s from %s", r.rel(readmePath), r.rel(backup))
	}

	if reinit {
		run, err := r.Run(ctx, flags)
		if err != nil {
			return res, err
		}
		res.Rerun = run
	}
	return res, nil
}
