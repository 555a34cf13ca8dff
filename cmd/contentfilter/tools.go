package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"contentfilter/internal/codec"
)

func newStatsCmd(a *app) *cobra.Command {
	var flags modeFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show item counts and lengths of a mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, _, err := flags.resolve(a)
			if err != nil {
				return err
			}
			stats, err := store.Stats(mode)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var flags modeFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check [text]...",
		Short: "Classify text as ALLOWED or BLOCKED (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, _, err := flags.resolve(a)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(raw)
			}
			verdict, err := store.Check(mode, text)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), verdict)
			}
			printVerdict(cmd.OutOrStdout(), verdict)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var flags modeFlags
	var out, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one mode to a .csv or .txt file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, _, err := flags.resolve(a)
			if err != nil {
				return err
			}
			if out == "" {
				f, err := codec.ParseFormat(format)
				if err != nil {
					return err
				}
				out = filepath.Join(a.cfg.Export.Dir, codec.ExportFileName(mode, time.Now(), f))
			}
			lists, err := store.Lists(mode)
			if err != nil {
				return err
			}
			if err := codec.ExportFile(out, mode, lists); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d items) to %s\n", mode, len(lists.Whitelist)+len(lists.Blacklist), out)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default content_filter_<mode>_<timestamp>.<format>)")
	cmd.Flags().StringVar(&format, "format", string(codec.FormatCSV), "format when --out is not given (csv|txt)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var flags modeFlags
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a .csv or .txt export into a mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, _, err := flags.resolve(a)
			if err != nil {
				return err
			}
			lists, err := codec.ImportFile(args[0])
			if err != nil {
				return err
			}
			if err := a.snapshot("before import"); err != nil {
				return err
			}
			added, err := codec.Merge(store, mode, lists)
			if err != nil {
				return err
			}
			if added > 0 {
				if err := a.saveStore(); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new item(s) into %s\n", added, mode)
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <path>",
		Short: "Write a copy of the store to another JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}
			data := store.Snapshot()
			if err := codec.SaveStore(args[0], data); err != nil {
				return err
			}
			raw, err := codec.EncodeStore(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d modes (%s) to %s\n", len(data), humanize.Bytes(uint64(len(raw))), args[0])
			return nil
		},
	}
}
