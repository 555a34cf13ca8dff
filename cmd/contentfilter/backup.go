package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"contentfilter/internal/backup"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list and restore store snapshots",
	}
	cmd.AddCommand(newBackupCreateCmd(a))
	cmd.AddCommand(newBackupListCmd(a))
	cmd.AddCommand(newBackupRestoreCmd(a))
	return cmd
}

func newBackupCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create [description]",
		Short: "Snapshot the store file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			item, err := backup.Create(a.storePath, store.Snapshot(), strings.Join(args, " "), a.cfg.Backup.Keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", item.Path)
			return nil
		},
	}
}

func newBackupListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots of the store, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := backup.List(a.storePath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "No backups for %s\n", a.storePath)
				return nil
			}
			for i, item := range items {
				fmt.Fprintf(out, "%3d  %s  %s\n", i+1, item.Time.Format("2006-01-02 15:04:05"), item.Summary())
			}
			return nil
		},
	}
}

func newBackupRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <n>",
		Short: "Restore snapshot n from \"backup list\" over the store file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid backup number %q", args[0])
			}
			items, err := backup.List(a.storePath)
			if err != nil {
				return err
			}
			if n < 1 || n > len(items) {
				return fmt.Errorf("backup %d does not exist (have %d)", n, len(items))
			}
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			item := items[n-1]
			data, err := backup.Restore(item, a.storePath, store.Snapshot(), a.cfg.Backup.Keep)
			if err != nil {
				return err
			}
			store.Replace(data)
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", a.storePath, item.Time.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}
