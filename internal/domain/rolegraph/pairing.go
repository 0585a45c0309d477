package rolegraph

import "regexp"

// pairKey combines two node IDs into one edge key using Szudzik's
// elegant pairing function. Order-insensitive because the arguments are
// sorted first, so the edge A-B and the edge B-A share a key.
func pairKey(x, y uint64) uint64 {
	if x < y {
		x, y = y, x
	}
	// x >= y here
	return x*x + x + y
}

// paragraphSep splits documents into blank-line separated paragraphs for
// paragraph-scoped co-occurrence.
var paragraphSep = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

func splitParagraphs(text string) []string {
	return paragraphSep.Split(text, -1)
}
