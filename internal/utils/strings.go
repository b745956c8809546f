package utils

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/lockbox/internal/ui"
)

// ParseAssignments turns "key=value" arguments into a map. The value may
// contain further "=" characters. Later assignments to the same key win.
func ParseAssignments(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: expected key=value", arg)
		}
		fields[key] = value
	}
	return fields, nil
}

// FormatNames formats a slice of secret names into an indented list.
func FormatNames(names []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString("    - ")
		b.WriteString(ui.Name.Sprint(name))
		b.WriteString("\n")
	}
	return b.String()
}
