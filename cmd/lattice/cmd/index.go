package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Ingest a directory of documents into the role's graph",
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

		count, err := role.IngestDir(cmd.Context(), args[0])
		if err != nil {
			return fail(err)
		}
		if err := role.Save(store); err != nil {
			return fail(err)
		}

		fmt.Printf("indexed %d documents: %d nodes, %d edges\n",
			count, role.Graph.NodeCount(), role.Graph.EdgeCount())
		return nil
	},
}
