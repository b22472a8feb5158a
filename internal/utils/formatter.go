package utils

import (
	"fmt"
	"strings"
)

// LineEnding selects the newline sequence of written files
type LineEnding string

const (
	LineEndingLF   LineEnding = "lf"
	LineEndingCRLF LineEnding = "crlf"
)

// ParseLineEnding validates a line ending name from configuration
func ParseLineEnding(name string) (LineEnding, error) {
	switch LineEnding(strings.ToLower(strings.TrimSpace(name))) {
	case LineEndingLF, "":
		return LineEndingLF, nil
	case LineEndingCRLF:
		return LineEndingCRLF, nil
	default:
		return "", fmt.Errorf("unknown line ending %q (expected %q or %q)", name, LineEndingLF, LineEndingCRLF)
	}
}

// FormatLineEndings rewrites every newline of source to the given ending
func FormatLineEndings(source string, ending LineEnding) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	if ending == LineEndingCRLF {
		return strings.ReplaceAll(normalized, "\n", "\r\n")
	}
	return normalized
}
