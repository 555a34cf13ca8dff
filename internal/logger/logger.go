package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	logName = "contentfilter.log"

	// maxLogBytes is the size at which the log is rotated to contentfilter.log.1.
	maxLogBytes = 5 << 20
)

// Options selects where and how much to log.
type Options struct {
	// Level overrides CONTENTFILTER_DEBUG when set.
	Level string
	// Dir holds contentfilter.log, normally the config directory.
	// Empty means stderr unless CONTENTFILTER_LOG_FILE is set.
	Dir string
}

var logFile *os.File

// Init installs the default slog logger. Records go to a file so they never
// corrupt the TUI; CONTENTFILTER_LOG_STDERR=1 forces stderr and
// CONTENTFILTER_LOG_FILE names the file explicitly.
func Init(opts Options) error {
	level, err := resolveLevel(opts.Level)
	if err != nil {
		return err
	}

	var writer io.Writer = os.Stderr
	var openErr error
	path := logPath(opts.Dir)
	if path != "" {
		if logFile, openErr = openLogFile(path); openErr == nil {
			writer = logFile
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})))
	if openErr != nil {
		slog.Warn("log file unavailable, logging to stderr", "path", path, "err", openErr)
	}
	return nil
}

// Close releases the log file opened by Init, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q (use debug|info|warn|error)", value)
	}
}

func resolveLevel(override string) (slog.Level, error) {
	if override != "" {
		return ParseLevel(override)
	}
	if os.Getenv("CONTENTFILTER_DEBUG") == "1" {
		return slog.LevelDebug, nil
	}
	return slog.LevelInfo, nil
}

// logPath returns "" when records should go to stderr.
func logPath(dir string) string {
	if os.Getenv("CONTENTFILTER_LOG_STDERR") == "1" {
		return ""
	}
	if path := os.Getenv("CONTENTFILTER_LOG_FILE"); path != "" {
		return path
	}
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, logName)
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := rotate(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// rotate keeps a single previous generation.
func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < maxLogBytes {
		return nil
	}
	return os.Rename(path, path+".1")
}
