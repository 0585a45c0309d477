package automata

import "regexp"

// blankLine matches a paragraph separator: two consecutive newlines with
// optional carriage returns and inter-line whitespace.
var blankLine = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// Paragraph pairs a match with the text window that follows it.
type Paragraph struct {
	Match Match
	Text  string
}

// ExtractParagraphs returns, for every match in text, the window from the
// match to the next blank-line separator strictly after the match end, or
// end-of-text if none exists. With includeTerm the window starts at the
// match itself; otherwise at the character after it.
func (a *Automaton) ExtractParagraphs(text string, includeTerm bool) []Paragraph {
	matches := a.FindMatches(text)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Paragraph, 0, len(matches))
	for _, m := range matches {
		start := m.End
		if includeTerm {
			start = m.Start
		}
		end := len(text)
		if loc := blankLine.FindStringIndex(text[m.End:]); loc != nil {
			end = m.End + loc[0]
		}
		out = append(out, Paragraph{Match: m, Text: text[start:end]})
	}
	return out
}
