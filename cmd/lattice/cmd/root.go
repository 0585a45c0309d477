package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lattice-search/lattice/internal/adapters/bolt"
	"github.com/lattice-search/lattice/internal/app"
)

var (
	configPath string
	roleName   string
)

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "lattice — knowledge-graph term matching and ranking engine",
	Long:  "Thesaurus-driven text matching, fuzzy autocomplete, and concept-graph document ranking.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lattice.yml", "config file")
	rootCmd.PersistentFlags().StringVarP(&roleName, "role", "r", "", "role name (defaults to the first configured role)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stopCmd)
}

// loadConfig loads the config file and resolves the selected role.
func loadConfig() (*app.Config, *app.RoleConfig, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if roleName == "" {
		return cfg, &cfg.Roles[0], nil
	}
	rc, err := cfg.Role(roleName)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rc, nil
}

// openStore opens the snapshot cache, creating its directory if needed.
func openStore(cfg *app.Config) (*bolt.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0755); err != nil {
		return nil, err
	}
	return bolt.NewStore(cfg.CachePath)
}

// loadOrBuildRole restores the role from the cache when possible and
// builds it from source otherwise.
func loadOrBuildRole(ctx context.Context, cfg *app.Config, rc *app.RoleConfig, store *bolt.Store) (*app.Role, error) {
	role, err := app.LoadRole(store, rc)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return role, nil
	}
	a, err := app.NewApp(ctx, &app.Config{CachePath: cfg.CachePath, Roles: []app.RoleConfig{*rc}})
	if err != nil {
		return nil, err
	}
	return a.Role(rc.Name), nil
}

// fail prints an error the way every subcommand reports it.
func fail(err error) error {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return err
}
