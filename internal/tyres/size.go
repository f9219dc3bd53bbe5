// Package tyres parses canonical tyre size strings into their structured
// components (width, aspect ratio, rim diameter).
package tyres

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// sizePattern is the strict matcher for canonical sizes like "205/55R16".
// No ZR, no spaces, no leading or trailing characters.
var sizePattern = regexp.MustCompile(`^(\d+)/(\d+)[Rr](\d+)$`)

// Size is a parsed tyre size. Canonical is the normalized string form
// ("205/55R16") that catalog uniqueness is keyed on.
type Size struct {
	Canonical   string
	Width       int
	AspectRatio int
	Diameter    int
}

// ParseError reports a string that does not match the canonical size format.
// The raw input is preserved so callers can surface it verbatim, either as a
// validation reason or as an opaque free-form size on the search side.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a tyre size: %q", e.Input)
}

// ParseSize parses a canonical tyre size string. Pure function, no I/O.
func ParseSize(input string) (Size, error) {
	m := sizePattern.FindStringSubmatch(input)
	if m == nil {
		return Size{}, &ParseError{Input: input}
	}

	width, err := strconv.Atoi(m[1])
	if err != nil {
		return Size{}, &ParseError{Input: input}
	}
	aspect, err := strconv.Atoi(m[2])
	if err != nil {
		return Size{}, &ParseError{Input: input}
	}
	diameter, err := strconv.Atoi(m[3])
	if err != nil {
		return Size{}, &ParseError{Input: input}
	}

	return Size{
		Canonical:   fmt.Sprintf("%d/%dR%d", width, aspect, diameter),
		Width:       width,
		AspectRatio: aspect,
		Diameter:    diameter,
	}, nil
}

// IsValidSize reports whether the input matches the strict canonical format.
func IsValidSize(input string) bool {
	return sizePattern.MatchString(input)
}

// Canonical normalizes a size string for lookup without rejecting free-form
// input: a parseable size comes back in canonical form, anything else is
// returned trimmed as-is. Used by the search path, which tolerates
// unparsed sizes.
func Canonical(input string) string {
	trimmed := strings.TrimSpace(input)
	if s, err := ParseSize(trimmed); err == nil {
		return s.Canonical
	}
	return trimmed
}
