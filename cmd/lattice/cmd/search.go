package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank indexed documents for a query through the concept graph",
	Args:  cobra.MinimumNArgs(1),
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

		query := strings.Join(args, " ")
		results := role.Search(query, searchLimit)
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, dr := range results {
			fmt.Printf("%6d  %s  [%s]\n", dr.Rank, dr.ID, strings.Join(dr.Tags, ", "))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum results")
}
