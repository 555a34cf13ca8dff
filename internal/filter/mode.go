package filter

import (
	"fmt"
	"strings"
)

// ModeInfo describes one of the predefined filter modes.
type ModeInfo struct {
	Name        string
	Description string
}

var catalogue = []ModeInfo{
	{
		Name:        "Child Safe Mode",
		Description: "Strict filtering for children.",
	},
	{
		Name:        "High School Teen Safe Mode",
		Description: "Moderate filtering for teens.",
	},
	{
		Name:        "Custom Mode",
		Description: "Customize your own filtering.",
	},
}

// Catalogue returns the predefined modes in display order.
func Catalogue() []ModeInfo {
	out := make([]ModeInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// DefaultMode is the mode selected at startup.
func DefaultMode() string {
	return catalogue[0].Name
}

// Describe returns the description of a predefined mode, or "" for others.
func Describe(mode string) string {
	for _, info := range catalogue {
		if info.Name == mode {
			return info.Description
		}
	}
	return ""
}

func isPredefined(mode string) bool {
	for _, info := range catalogue {
		if info.Name == mode {
			return true
		}
	}
	return false
}

type ListKind string

const (
	Whitelist ListKind = "whitelist"
	Blacklist ListKind = "blacklist"
)

// Kinds lists both kinds in export order.
var Kinds = []ListKind{Whitelist, Blacklist}

func ParseListKind(value string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "whitelist", "white", "wl", "allow":
		return Whitelist, nil
	case "blacklist", "black", "bl", "block":
		return Blacklist, nil
	default:
		return "", fmt.Errorf("invalid list %q (use whitelist|blacklist)", value)
	}
}

// Label is the capitalized name used in headings.
func (k ListKind) Label() string {
	if k == Blacklist {
		return "Blacklist"
	}
	return "Whitelist"
}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("invalid sort direction %q (use asc|desc)", value)
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}
