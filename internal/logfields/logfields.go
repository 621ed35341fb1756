package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyOwner    = "owner"
	KeyRepo     = "repository"
	KeyDomain   = "domain"
	KeyURL      = "url"
	KeyPath     = "path"
	KeyArtifact = "artifact"
	KeyStep     = "step"
	KeyTool     = "tool"
	KeyExitCode = "exit_code"
	KeyState    = "state"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Owner(o string) slog.Attr      { return slog.String(KeyOwner, o) }
func Repository(r string) slog.Attr { return slog.String(KeyRepo, r) }
func Domain(d string) slog.Attr     { return slog.String(KeyDomain, d) }
func URL(u string) slog.Attr        { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Artifact(a string) slog.Attr   { return slog.String(KeyArtifact, a) }
func Step(s string) slog.Attr       { return slog.String(KeyStep, s) }
func Tool(t string) slog.Attr       { return slog.String(KeyTool, t) }
func ExitCode(c int) slog.Attr      { return slog.Int(KeyExitCode, c) }
func State(s string) slog.Attr      { return slog.String(KeyState, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
