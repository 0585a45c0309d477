package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattice-search/lattice/internal/app"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a role's thesaurus and cache it",
	Long:  "Builds the thesaurus from the role's configured source (markdown directory, local or remote JSON), constructs the matcher, autocomplete index and empty graph, and caches the result.",
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

		a, err := app.NewApp(cmd.Context(), &app.Config{CachePath: cfg.CachePath, Roles: []app.RoleConfig{*rc}})
		if err != nil {
			return fail(err)
		}
		role := a.Role(rc.Name)
		if err := role.Save(store); err != nil {
			return fail(err)
		}

		fmt.Printf("role %q built: %d terms, %d autocomplete entries\n",
			role.Name, role.Thesaurus.Len(), role.Autocomplete.Len())
		return nil
	},
}
