package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contentfilter/internal/filter"
	"contentfilter/internal/validation"
)

func newListCmd(a *app) *cobra.Command {
	var flags modeFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the lists of a mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, kind, err := flags.resolve(a)
			if err != nil {
				return err
			}
			lists, err := store.Lists(mode)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				if kind != "" {
					return printJSON(out, lists.Get(kind))
				}
				return printJSON(out, lists)
			}
			fmt.Fprintf(out, "%s\n", mode)
			if desc := filter.Describe(mode); desc != "" {
				fmt.Fprintf(out, "%s\n", desc)
			}
			for _, k := range filter.Kinds {
				if kind != "" && k != kind {
					continue
				}
				printItems(out, k.Label(), lists.Get(k))
			}
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "only this list (whitelist|blacklist)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var flags modeFlags
	cmd := &cobra.Command{
		Use:   "add <item>...",
		Short: "Add items to a list (comma separated values are split)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, kind, err := flags.resolve(a)
			if err != nil {
				return err
			}
			items := validation.SplitItems(strings.Join(args, ","))
			if len(items) == 0 {
				return filter.ErrEmptyItem
			}
			for _, item := range items {
				if err := validation.ValidateItem(item); err != nil {
					return fmt.Errorf("%q: %w", item, err)
				}
			}
			added, err := store.AddMany(mode, kind, items)
			if err != nil {
				return err
			}
			if added > 0 {
				if err := a.saveStore(); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d item(s) to %s of %s", added, kind.Label(), mode)
			if dup := len(items) - added; dup > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d already present)", dup)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var flags modeFlags
	cmd := &cobra.Command{
		Use:     "remove <item>...",
		Aliases: []string{"rm"},
		Short:   "Remove items from a list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, kind, err := flags.resolve(a)
			if err != nil {
				return err
			}
			removed := 0
			var missing []string
			for _, item := range args {
				err := store.Remove(mode, kind, item)
				switch {
				case err == nil:
					removed++
				case errors.Is(err, filter.ErrItemNotFound):
					missing = append(missing, item)
				default:
					return err
				}
			}
			if removed > 0 {
				if err := a.saveStore(); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d item(s) from %s of %s\n", removed, kind.Label(), mode)
			if len(missing) > 0 {
				return fmt.Errorf("%w: %s", filter.ErrItemNotFound, strings.Join(missing, ", "))
			}
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var flags modeFlags
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find items containing a substring (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, kind, err := flags.resolve(a)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range filter.Kinds {
				if kind != "" && k != kind {
					continue
				}
				matches, err := store.Search(mode, k, args[0])
				if err != nil {
					return err
				}
				printItems(out, k.Label(), matches)
			}
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "only this list (whitelist|blacklist)")
	return cmd
}

func newSortCmd(a *app) *cobra.Command {
	var flags modeFlags
	var desc bool
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort both lists of a mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, mode, _, err := flags.resolve(a)
			if err != nil {
				return err
			}
			dir := filter.Ascending
			if desc {
				dir = filter.Descending
			}
			if err := store.Sort(mode, dir); err != nil {
				return err
			}
			if err := a.saveStore(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sorted %s %s\n", mode, dir)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	var flags modeFlags
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from both lists of a mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			store, mode, _, err := flags.resolve(a)
			if err != nil {
				return err
			}
			if err := a.snapshot("before clear"); err != nil {
				return err
			}
			if err := store.Clear(mode); err != nil {
				return err
			}
			if err := a.saveStore(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared all lists of %s\n", mode)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm clearing")
	return cmd
}
