package automata

import (
	"fmt"
	"strings"
)

// LinkMode controls how ReplaceMatches rewrites matched spans.
type LinkMode int

const (
	// PlainText substitutes the concept's normalized value.
	PlainText LinkMode = iota
	// MarkdownLinks produces [term](url).
	MarkdownLinks
	// HTMLLinks produces <a href="url">term</a>.
	HTMLLinks
	// WikiLinks produces [[normalized value]].
	WikiLinks
)

// linkTarget returns the URL for a matched concept, falling back to a
// concept: URI when the term carries none.
func linkTarget(m Match) string {
	if m.Concept.URL != "" {
		return m.Concept.URL
	}
	return fmt.Sprintf("concept:%d", m.Concept.ID)
}

// ReplaceMatches rewrites text in one pass, substituting each matched
// span according to mode and leaving everything outside matched spans
// byte-for-byte untouched.
func (a *Automaton) ReplaceMatches(text string, mode LinkMode) string {
	matches := a.FindMatches(text)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(matches)*16)
	prev := 0
	for _, m := range matches {
		b.WriteString(text[prev:m.Start])
		switch mode {
		case MarkdownLinks:
			fmt.Fprintf(&b, "[%s](%s)", m.Term, linkTarget(m))
		case HTMLLinks:
			fmt.Fprintf(&b, "<a href=%q>%s</a>", linkTarget(m), m.Term)
		case WikiLinks:
			fmt.Fprintf(&b, "[[%s]]", m.Concept.Value)
		default:
			b.WriteString(string(m.Concept.Value))
		}
		prev = m.End
	}
	b.WriteString(text[prev:])
	return b.String()
}
