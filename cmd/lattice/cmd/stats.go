package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print role thesaurus and graph statistics",
	Args:  cobra.NoArgs,
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

		fmt.Printf("role:    %s\n", role.Name)
		fmt.Printf("terms:   %d\n", role.Thesaurus.Len())
		fmt.Printf("entries: %d\n", role.Autocomplete.Len())
		fmt.Printf("nodes:   %d\n", role.Graph.NodeCount())
		fmt.Printf("edges:   %d\n", role.Graph.EdgeCount())
		return nil
	},
}
