package templates

import "strings"

// Substitution pairs a placeholder token with its replacement.
type Substitution struct {
	Placeholder string
	Value       string
}

// Render replaces only the first occurrence of placeholder in tmpl.
// Later occurrences are left intact so a template can show the token
// literally, for example in a usage comment.
func Render(tmpl, placeholder, value string) string {
	if placeholder == "" {
		return tmpl
	}
	return strings.Replace(tmpl, placeholder, value, 1)
}

// RenderAll applies Render for each substitution in order.
func RenderAll(tmpl string, subs ...Substitution) string {
	for _, s := range subs {
		tmpl = Render(tmpl, s.Placeholder, s.Value)
	}
	return tmpl
}

// ReplaceEvery substitutes every occurrence of each placeholder. It is used
// on documents that were never materialized from a template, where a token
// left twice would otherwise survive one run and be patched on the next.
func ReplaceEvery(doc string, subs ...Substitution) string {
	for _, s := range subs {
		if s.Placeholder == "" {
			continue
		}
		doc = strings.ReplaceAll(doc, s.Placeholder, s.Value)
	}
	return doc
}

// ContainsAny reports whether doc still carries any of the placeholders.
func ContainsAny(doc string, subs ...Substitution) bool {
	for _, s := range subs {
		if s.Placeholder != "" && strings.Contains(doc, s.Placeholder) {
			return true
		}
	}
	return false
}
