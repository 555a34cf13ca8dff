package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"contentfilter/internal/backup"
	"contentfilter/internal/codec"
	"contentfilter/internal/config"
	"contentfilter/internal/filter"
	"contentfilter/internal/logger"
	"contentfilter/internal/validation"
)

// app holds the state shared by every subcommand of one root command.
type app struct {
	storeFlag string
	logLevel  string

	cfg        config.Config
	configPath string
	storePath  string
	store      *filter.Store
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, warnings, path, found, err := config.Load()
	if err != nil {
		return err
	}
	level := a.logLevel
	if level == "" {
		level = cfg.Advanced.LogLevel
	}
	logDir, err := config.Dir()
	if err != nil {
		logDir = ""
	}
	if err := logger.Init(logger.Options{Level: level, Dir: logDir}); err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		slog.Warn("config warning", "path", path, "warning", w)
	}
	if found {
		slog.Debug("config loaded", "path", path)
	}
	a.cfg = cfg
	a.configPath = path
	a.storePath = cfg.Store.Path
	if a.storeFlag != "" {
		a.storePath = a.storeFlag
	}
	return nil
}

func (a *app) teardown() {
	_ = logger.Close()
}

// loadStore reads the store file once. A missing file yields a store with
// every predefined mode empty.
func (a *app) loadStore() (*filter.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	data, err := codec.LoadStore(a.storePath)
	switch {
	case err == nil:
		a.store = filter.NewStoreFrom(data)
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("store file not found, starting empty", "path", a.storePath)
		a.store = filter.NewStore()
	default:
		return nil, fmt.Errorf("load store: %w", err)
	}
	return a.store, nil
}

// sessionStore loads the store for an interactive session. A file that
// cannot be read or decoded does not stop the session: it starts empty and
// the load error is returned for display.
func (a *app) sessionStore() (*filter.Store, error) {
	store, err := a.loadStore()
	if err == nil {
		return store, nil
	}
	slog.Error("store load failed, starting empty", "path", a.storePath, "err", err)
	a.store = filter.NewStore()
	return a.store, err
}

func (a *app) saveStore() error {
	if a.store == nil {
		return nil
	}
	return codec.SaveStore(a.storePath, a.store.Snapshot())
}

// snapshot backs up the store file before a destructive command.
func (a *app) snapshot(description string) error {
	if a.store == nil {
		return nil
	}
	if _, err := backup.Create(a.storePath, a.store.Snapshot(), description, a.cfg.Backup.Keep); err != nil {
		return fmt.Errorf("backup before %s: %w", description, err)
	}
	return nil
}

// resolveMode matches name against the store's modes, ignoring case. Only a
// name that matches no mode is validated.
func resolveMode(store *filter.Store, name string) (string, error) {
	name = strings.TrimSpace(name)
	if store.HasMode(name) {
		return name, nil
	}
	for _, mode := range store.Modes() {
		if strings.EqualFold(mode, name) {
			return mode, nil
		}
	}
	if err := validation.ValidateModeName(name); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: %q (available: %s)", filter.ErrUnknownMode, name, strings.Join(store.Modes(), ", "))
}

type modeFlags struct {
	mode string
	kind string
}

func (f *modeFlags) register(cmd *cobra.Command, withKind bool) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", filter.DefaultMode(), "filter mode")
	if withKind {
		cmd.Flags().StringVarP(&f.kind, "kind", "k", string(filter.Whitelist), "list kind (whitelist|blacklist)")
	}
}

// resolve loads the store and validates the flags against it.
func (f *modeFlags) resolve(a *app) (*filter.Store, string, filter.ListKind, error) {
	store, err := a.loadStore()
	if err != nil {
		return nil, "", "", err
	}
	mode, err := resolveMode(store, f.mode)
	if err != nil {
		return nil, "", "", err
	}
	if f.kind == "" {
		return store, mode, "", nil
	}
	kind, err := filter.ParseListKind(f.kind)
	if err != nil {
		return nil, "", "", err
	}
	return store, mode, kind, nil
}
