// Package readme maintains the tool-owned quick-install block of a README
// and decides, per run, how the README is reconciled.
package readme

import (
	"errors"
	"strings"
)

// ErrUnbalancedMarkers is returned when only one of the two markers is
// present, or they appear out of order. Appending a fresh block would leave
// an orphan marker that a later run could pair with the wrong partner.
var ErrUnbalancedMarkers = errors.New("README block markers are unbalanced")

// Markers are the two literal lines bounding the managed block.
type Markers struct {
	Start string
	End   string
}

// Format renders body between the markers. The result has no trailing newline.
func (m Markers) Format(body string) string {
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return m.Start + "\n" + body + m.End
}

// locate returns the byte offsets of the start marker and of the first byte
// after the end marker. found is false when neither marker is present.
func (m Markers) locate(doc string) (start, end int, found bool, err error) {
	start = strings.Index(doc, m.Start)
	endIdx := -1
	if start >= 0 {
		if rel := strings.Index(doc[start+len(m.Start):], m.End); rel >= 0 {
			endIdx = start + len(m.Start) + rel
		}
	}
	switch {
	case start < 0 && !strings.Contains(doc, m.End):
		return 0, 0, false, nil
	case start < 0 || endIdx < 0:
		return 0, 0, false, ErrUnbalancedMarkers
	}
	return start, endIdx + len(m.End), true, nil
}

// HasBlock reports whether doc contains a complete block.
func (m Markers) HasBlock(doc string) bool {
	_, _, found, err := m.locate(doc)
	return found && err == nil
}

// ReplaceBlock swaps the content between the markers for body. Everything
// outside the markers is preserved byte for byte. replaced is false when the
// document has no block.
func (m Markers) ReplaceBlock(doc, body string) (out string, replaced bool, err error) {
	start, end, found, err := m.locate(doc)
	if err != nil || !found {
		return doc, false, err
	}
	return doc[:start] + m.Format(body) + doc[end:], true, nil
}

// AppendBlock adds a new block at the end of doc, separated by a blank line.
func (m Markers) AppendBlock(doc, body string) string {
	var b strings.Builder
	b.WriteString(doc)
	if doc != "" {
		if !strings.HasSuffix(doc, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.Format(body))
	b.WriteString("\n")
	return b.String()
}

// UpsertBlock replaces the block when present and appends it otherwise.
func (m Markers) UpsertBlock(doc, body string) (out string, appended bool, err error) {
	out, replaced, err := m.ReplaceBlock(doc, body)
	if err != nil {
		return doc, false, err
	}
	if replaced {
		return out, false, nil
	}
	return m.AppendBlock(doc, body), true, nil
}
