package ui

import (
	"path/filepath"
	"time"

	"contentfilter/internal/codec"
)

// defaultExportPath names an export of the current mode after the current
// time, inside the configured export directory.
func (m *Model) defaultExportPath() string {
	name := codec.ExportFileName(m.currentMode(), time.Now(), codec.FormatCSV)
	if m.opts.ExportDir == "" {
		return name
	}
	return filepath.Join(m.opts.ExportDir, name)
}
