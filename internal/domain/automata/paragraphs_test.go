package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParagraphs_WindowToBlankLine(t *testing.T) {
	a := buildTestAutomaton(t)
	text := "the graph holds concepts\nand their links\n\nnext paragraph"

	ps := a.ExtractParagraphs(text, false)
	require.Len(t, ps, 1)
	assert.Equal(t, "graph", ps[0].Match.Term)
	assert.Equal(t, " holds concepts\nand their links", ps[0].Text)
}

func TestExtractParagraphs_IncludeTerm(t *testing.T) {
	a := buildTestAutomaton(t)
	text := "the graph holds concepts\n\nmore"

	ps := a.ExtractParagraphs(text, true)
	require.Len(t, ps, 1)
	assert.Equal(t, "graph holds concepts", ps[0].Text)
}

func TestExtractParagraphs_NoTrailingBlankLine(t *testing.T) {
	// No separator after the match: window runs to end of text.
	a := buildTestAutomaton(t)
	ps := a.ExtractParagraphs("about the service layer", true)
	require.Len(t, ps, 1)
	assert.Equal(t, "service layer", ps[0].Text)
}

func TestExtractParagraphs_SeparatorInsideMatchIgnored(t *testing.T) {
	// The blank line must come strictly after the match end.
	a := buildTestAutomaton(t)
	text := "haystack\n\ntail"
	ps := a.ExtractParagraphs(text, true)
	require.Len(t, ps, 1)
	assert.Equal(t, "haystack", ps[0].Text)
}

func TestExtractParagraphs_CRLFSeparator(t *testing.T) {
	a := buildTestAutomaton(t)
	text := "graph notes\r\n\r\nrest"
	ps := a.ExtractParagraphs(text, true)
	require.Len(t, ps, 1)
	assert.Equal(t, "graph notes", ps[0].Text)
}

func TestExtractParagraphs_MultipleMatches(t *testing.T) {
	a := buildTestAutomaton(t)
	text := "graph one\n\nservice two\n\nend"
	ps := a.ExtractParagraphs(text, true)
	require.Len(t, ps, 2)
	assert.Equal(t, "graph one", ps[0].Text)
	assert.Equal(t, "service two", ps[1].Text)
}

func TestExtractParagraphs_NoMatches(t *testing.T) {
	a := buildTestAutomaton(t)
	assert.Nil(t, a.ExtractParagraphs("plain prose\n\nmore prose", true))
}
