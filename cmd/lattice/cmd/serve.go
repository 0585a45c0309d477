package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lattice-search/lattice/internal/adapters/fsnotify"
	"github.com/lattice-search/lattice/internal/adapters/socket"
	"github.com/lattice-search/lattice/internal/app"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lattice daemon on a Unix socket",
	Long:  "Builds every configured role and serves search, suggest, check and stats requests over a Unix socket until stopped.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return fail(err)
		}

		ctx := cmd.Context()
		store, err := openStore(cfg)
		if err != nil {
			return fail(err)
		}
		a, err := app.NewAppFromStore(ctx, cfg, store)
		store.Close()
		if err != nil {
			return fail(err)
		}

		if serveWatch {
			for i := range cfg.Roles {
				rc := &cfg.Roles[i]
				if rc.KGPath == "" {
					continue
				}
				w, err := fsnotify.NewWatcher()
				if err != nil {
					return fail(err)
				}
				defer w.Stop()
				if err := a.Watch(ctx, rc, w); err != nil {
					return fail(err)
				}
			}
		}

		srv := socket.NewServer(a, socket.SocketPath(configPath))
		if err := srv.Start(); err != nil {
			return fail(err)
		}
		defer srv.Stop()
		fmt.Printf("listening on %s\n", srv.Addr())

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-srv.ShutdownCh():
		case <-ctx.Done():
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "rebuild roles when knowledge-graph files change")
}
