package codec

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"contentfilter/internal/filter"
)

// DefaultStorePath is the store file loaded at startup when present.
const DefaultStorePath = "content_filter_config.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeStore renders the store as 4-space indented JSON.
func EncodeStore(data filter.Data) ([]byte, error) {
	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(raw, '\n'), nil
}

func DecodeStore(raw []byte) (filter.Data, error) {
	var data filter.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	if data == nil {
		data = filter.Data{}
	}
	return data, nil
}

// LoadStore reads a JSON store file.
func LoadStore(path string) (filter.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err := DecodeStore(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("store loaded", "path", path, "modes", len(data))
	return data, nil
}

// SaveStore writes the store atomically through a temp file and rename.
func SaveStore(path string, data filter.Data) error {
	raw, err := EncodeStore(data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	slog.Info("store saved", "path", path, "modes", len(data))
	return nil
}
