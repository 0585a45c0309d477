package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <text>",
	Short: "Check whether every concept in the text is connected in the graph",
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

		text := strings.Join(args, " ")
		ids := role.Graph.FindMatchingNodeIDs(text)
		connected, approximate := role.Graph.PathCheck(text)

		fmt.Printf("concepts: %d\n", len(ids))
		if connected {
			fmt.Println("connected: yes")
		} else {
			fmt.Println("connected: no")
		}
		if approximate {
			fmt.Println("note: component-level approximation (too many concepts for exact path search)")
		}
		return nil
	},
}
