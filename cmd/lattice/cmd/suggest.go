package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattice-search/lattice/internal/domain/autocomplete"
)

var (
	suggestFuzzy     bool
	suggestThreshold float64
	suggestLimit     int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Autocomplete thesaurus terms by prefix or fuzzy match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, rc, err := loadConfig()
		if err != nil {
			return fail(err)
		}
		store, err := openStore(cfg)
		if err != nil {
			return fail(err)
		}
		defer store.Close()

		role, err := loadOrBuildRole(cmd.Context(), cfg, rc, store)
		if err != nil {
			return fail(err)
		}

		var results []autocomplete.Result
		if suggestFuzzy {
			results = role.Autocomplete.FuzzySearch(args[0], suggestThreshold, suggestLimit)
		} else {
			results = role.Autocomplete.LookupPrefix(args[0], suggestLimit)
		}
		if len(results) == 0 {
			fmt.Println("no suggestions")
			return nil
		}
		for _, r := range results {
			if suggestFuzzy {
				fmt.Printf("%.3f  %s -> %s\n", r.Score, r.Term, r.Value)
			} else {
				fmt.Printf("%s -> %s\n", r.Term, r.Value)
			}
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().BoolVarP(&suggestFuzzy, "fuzzy", "f", false, "typo-tolerant matching")
	suggestCmd.Flags().Float64VarP(&suggestThreshold, "threshold", "t", 0.8, "minimum Jaro-Winkler similarity for --fuzzy")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 10, "maximum suggestions")
}
