package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"contentfilter/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	var saveOnExit bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON dashboard API",
		Long: `Serve the store over HTTP. Basic auth is enforced on every /api/ route
except /api/health when server.password_hash is set in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, loadErr := a.sessionStore()
			if loadErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; serving an empty store\n", loadErr)
				if saveOnExit {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: --save-on-exit ignored so the unreadable file is kept")
					saveOnExit = false
				}
			}
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := server.New(store, server.Options{
				Addr:         addr,
				StorePath:    a.storePath,
				Username:     a.cfg.Server.Username,
				PasswordHash: a.cfg.Server.PasswordHash,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", a.storePath, addr)
			if !a.cfg.AuthEnabled() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: dashboard has no authentication (set server.password_hash)")
			}
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			if saveOnExit {
				if err := a.saveStore(); err != nil {
					return err
				}
				slog.Info("store saved on exit", "path", a.storePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().BoolVar(&saveOnExit, "save-on-exit", false, "save the store when the server stops")
	return cmd
}
