// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-salesrace/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-salesrace) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-salesrace") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoInput returns hints when no sales CSV was specified.
func ForNoInput() string {
	return format("pass the sales CSV as an argument, or set input.path in a config, or SALESRACE_INPUT")
}

// ForUnknownPlatform returns hints for unknown platform errors.
func ForUnknownPlatform(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingColumn returns hints for missing CSV column errors.
func ForMissingColumn() string {
	return format(`input must have "Order Date", "Sub-Category" and "Sales" columns`)
}

// ForBadOrderDate returns hints for unparseable order date errors.
func ForBadOrderDate() string {
	return format("supported date formats: M/D/YYYY, YYYY-MM-DD")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
