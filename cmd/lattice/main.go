// lattice is a knowledge-graph term matching and relevance ranking
// engine: thesaurus-driven text matching, typo-tolerant autocomplete,
// and concept-graph document ranking from one binary.
package main

import (
	"os"

	"github.com/lattice-search/lattice/cmd/lattice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
