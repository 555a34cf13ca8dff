package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxItemLength     = 256
	maxModeNameLength = 64

	sectionMarker = "==="
)

var (
	ErrItemEmpty         = errors.New("item cannot be empty")
	ErrItemTooLong       = errors.New("item too long (max 256 characters)")
	ErrItemControlChar   = errors.New("item cannot contain control characters or line breaks")
	ErrItemMarker        = errors.New("item cannot start with \"===\"")
	ErrModeNameEmpty     = errors.New("mode name cannot be empty")
	ErrModeNameTooLong   = errors.New("mode name too long (max 64 characters)")
	ErrModeNameTraversal = errors.New("mode name cannot contain '..'")
	ErrModeNameSeparator = errors.New("mode name cannot contain path separators")
	ErrModeNameCharSet   = errors.New("mode name contains invalid characters")
)

// ValidateItem checks that an item survives every exchange format: the TXT
// format is line based, so line breaks and other control characters are
// rejected, and lines starting with "===" are read back as section markers.
func ValidateItem(item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return ErrItemEmpty
	}
	if utf8.RuneCountInString(item) > maxItemLength {
		return ErrItemTooLong
	}
	if strings.HasPrefix(item, sectionMarker) {
		return ErrItemMarker
	}
	for _, r := range item {
		if unicode.IsControl(r) {
			return ErrItemControlChar
		}
	}
	return nil
}

// ValidateModeName validates that a mode name is safe to embed in file names.
func ValidateModeName(name string) error {
	if name == "" {
		return ErrModeNameEmpty
	}
	if utf8.RuneCountInString(name) > maxModeNameLength {
		return ErrModeNameTooLong
	}
	if strings.Contains(name, "..") {
		return ErrModeNameTraversal
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrModeNameSeparator
	}

	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ' ' {
			continue
		}
		return ErrModeNameCharSet
	}

	return nil
}

// SplitItems splits user input holding several items separated by commas or
// line breaks, dropping blanks.
func SplitItems(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
