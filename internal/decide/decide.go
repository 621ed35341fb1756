// Package decide resolves operator choices with one explicit precedence:
// an explicit override, then the inferred default when running
// non-interactively, then an interactive prompt.
package decide

import (
	"fmt"
	"strings"
)

// Source records where a resolved value came from.
type Source string

const (
	SourceNone     Source = "none"
	SourceOverride Source = "override"
	SourceInferred Source = "inferred"
	SourcePrompt   Source = "prompt"
)

// ParseBool accepts the usual spellings of yes and no.
func ParseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "y", "yes", "true", "on":
		return true, true
	case "0", "n", "no", "false", "off":
		return false, true
	}
	return false, false
}

// Bool describes a yes/no decision.
type Bool struct {
	// Override is the raw explicit value (flag or environment variable).
	// Empty means not set.
	Override string
	// Default is used when non-interactive and proposed when prompting.
	Default        bool
	NonInteractive bool
	Question       string
}

// Resolve applies the precedence to a yes/no decision.
func (d Bool) Resolve(p Prompter) (bool, Source, error) {
	if d.Override != "" {
		v, ok := ParseBool(d.Override)
		if !ok {
			return false, SourceNone, fmt.Errorf("invalid yes/no value %q", d.Override)
		}
		return v, SourceOverride, nil
	}
	if d.NonInteractive || p == nil {
		return d.Default, SourceInferred, nil
	}
	v, err := p.Confirm(d.Question, d.Default)
	if err != nil {
		return false, SourceNone, err
	}
	return v, SourcePrompt, nil
}

// String describes a free-text value.
type String struct {
	Override       string
	Inferred       string
	NonInteractive bool
	Question       string
}

// Resolve applies the precedence to a free-text value. An empty result with
// SourceNone means no source could supply it.
func (d String) Resolve(p Prompter) (string, Source, error) {
	if v := strings.TrimSpace(d.Override); v != "" {
		return v, SourceOverride, nil
	}
	if d.NonInteractive || p == nil {
		if d.Inferred != "" {
			return d.Inferred, SourceInferred, nil
		}
		return "", SourceNone, nil
	}
	v, err := p.Ask(d.Question, d.Inferred)
	if err != nil {
		return "", SourceNone, err
	}
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return "", SourceNone, nil
	case v == d.Inferred:
		return v, SourceInferred, nil
	default:
		return v, SourcePrompt, nil
	}
}
