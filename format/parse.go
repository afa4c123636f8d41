package format

import (
	"strings"
)

// IsBlank reports whether s holds nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
