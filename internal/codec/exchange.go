package codec

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contentfilter/internal/filter"
	"contentfilter/internal/validation"
)

var ErrUnknownFormat = errors.New("unknown format (use .csv or .txt)")

type Format string

const (
	FormatCSV Format = "csv"
	FormatTXT Format = "txt"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), ".")) {
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "text/plain"
}

const exportTimeFormat = "20060102_150405"

// ExportFileName returns content_filter_<mode>_<timestamp>.<ext>.
func ExportFileName(mode string, ts time.Time, format Format) string {
	return fmt.Sprintf("content_filter_%s_%s.%s", mode, ts.Format(exportTimeFormat), format)
}

const (
	csvHeaderType = "Type"
	csvHeaderItem = "Item"

	txtWhitelistMarker = "=== Whitelist ==="
	txtBlacklistMarker = "=== Blacklist ==="
)

// WriteCSV writes the header Type,Item followed by whitelist rows then
// blacklist rows.
func WriteCSV(w io.Writer, lists filter.Lists) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write([]string{csvHeaderType, csvHeaderItem}); err != nil {
		return err
	}
	for _, kind := range filter.Kinds {
		for _, item := range lists.Get(kind) {
			if err := cw.Write([]string{string(kind), item}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an exported CSV. The first row is always treated as the
// header. Rows without exactly two fields, with an unknown type or with an
// item that would not survive the TXT format are skipped.
func ReadCSV(r io.Reader) (filter.Lists, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	lists := filter.Lists{Whitelist: []string{}, Blacklist: []string{}}
	skipped := 0
	header := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return lists, skipped, err
		}
		if header {
			header = false
			continue
		}
		if len(row) != 2 || validation.ValidateItem(row[1]) != nil {
			skipped++
			continue
		}
		switch filter.ListKind(row[0]) {
		case filter.Whitelist:
			lists.Whitelist = append(lists.Whitelist, row[1])
		case filter.Blacklist:
			lists.Blacklist = append(lists.Blacklist, row[1])
		default:
			skipped++
		}
	}
	return lists, skipped, nil
}

// WriteTXT writes the sectioned text format.
func WriteTXT(w io.Writer, mode string, lists filter.Lists) error {
	var b strings.Builder
	b.WriteString("=== " + mode + " ===\n\n")
	b.WriteString(txtWhitelistMarker + "\n")
	b.WriteString(strings.Join(lists.Whitelist, "\n"))
	b.WriteString("\n\n" + txtBlacklistMarker + "\n")
	b.WriteString(strings.Join(lists.Blacklist, "\n"))
	_, err := io.WriteString(w, b.String())
	return err
}

// ReadTXT parses the sectioned text format. Lines before the first section
// marker and other "===" lines are ignored.
func ReadTXT(r io.Reader) (filter.Lists, int, error) {
	lists := filter.Lists{Whitelist: []string{}, Blacklist: []string{}}
	var current filter.ListKind
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, txtWhitelistMarker):
			current = filter.Whitelist
		case strings.HasPrefix(line, txtBlacklistMarker):
			current = filter.Blacklist
		case line == "" || strings.HasPrefix(line, "==="):
		case current == "":
			skipped++
		case current == filter.Whitelist:
			lists.Whitelist = append(lists.Whitelist, line)
		default:
			lists.Blacklist = append(lists.Blacklist, line)
		}
	}
	return lists, skipped, scanner.Err()
}

// Encode renders one mode in the given format.
func Encode(format Format, mode string, lists filter.Lists) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatCSV:
		err = WriteCSV(&buf, lists)
	case FormatTXT:
		err = WriteTXT(&buf, mode, lists)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses one exported mode in the given format.
func Decode(format Format, r io.Reader) (filter.Lists, error) {
	var (
		lists   filter.Lists
		skipped int
		err     error
	)
	switch format {
	case FormatCSV:
		lists, skipped, err = ReadCSV(r)
	case FormatTXT:
		lists, skipped, err = ReadTXT(r)
	default:
		return filter.Lists{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if skipped > 0 {
		slog.Debug("skipped malformed import lines", "format", format, "skipped", skipped)
	}
	return lists, err
}

// ExportFile writes one mode to path; the format comes from the extension.
func ExportFile(path, mode string, lists filter.Lists) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	raw, err := Encode(format, mode, lists)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}
	slog.Info("lists exported", "mode", mode, "path", path, "format", format)
	return nil
}

// ImportFile reads lists from path; the format comes from the extension.
func ImportFile(path string) (filter.Lists, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return filter.Lists{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return filter.Lists{}, err
	}
	defer f.Close()
	return Decode(format, f)
}

// Merge adds imported lists into mode and returns the number of new items.
func Merge(store *filter.Store, mode string, lists filter.Lists) (int, error) {
	total := 0
	for _, kind := range filter.Kinds {
		n, err := store.AddMany(mode, kind, lists.Get(kind))
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
