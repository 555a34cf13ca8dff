package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"contentfilter/internal/ui"
)

type tuiOptions struct {
	dryRun  bool
	noColor bool
	split   bool
}

func (o *tuiOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "show changes without applying")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "disable color output")
	cmd.Flags().BoolVar(&o.split, "split", false, "start with whitelist and blacklist side by side")
}

func newTUICmd(a *app) *cobra.Command {
	opts := &tuiOptions{}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) runTUI(cmd *cobra.Command, opts *tuiOptions) error {
	store, loadErr := a.sessionStore()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return ui.RunWithContext(ctx, store, ui.Options{
		StorePath:  a.storePath,
		ExportDir:  a.cfg.Export.Dir,
		BackupKeep: a.cfg.Backup.Keep,
		Autosave:   a.cfg.Store.Autosave,
		SplitView:  opts.split || a.cfg.UI.SplitView,
		DryRun:     opts.dryRun,
		NoColor:    opts.noColor,
		LoadErr:    loadErr,
	})
}
