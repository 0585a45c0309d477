package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattice-search/lattice/internal/adapters/socket"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running lattice daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := socket.NewClient(socket.SocketPath(configPath))
		if !client.Ping() {
			fmt.Println("daemon not running")
			return nil
		}
		if err := client.Shutdown(); err != nil {
			return fail(err)
		}
		fmt.Println("daemon stopped")
		return nil
	},
}
