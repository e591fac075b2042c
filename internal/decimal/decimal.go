// Package decimal parses numeric strings written in the Spanish convention
// used by the Catastro service: comma as decimal separator, optional dot or
// space thousands separators. Parsing is a pure string transformation and
// never consults the host locale.
package decimal

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrMalformed marks a value that cannot be interpreted as a number after
// normalization. Callers fail the whole record on it; substituting a default
// would corrupt surface and coefficient data downstream.
var ErrMalformed = eris.New("decimal: malformed number")

// Parse converts a decimal-comma string such as "85,5" or "1.234,56" to a
// float64.
func Parse(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, eris.Wrap(ErrMalformed, "empty input")
	}

	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, "\u00a0", "")

	if strings.Count(t, ",") > 1 {
		return 0, eris.Wrapf(ErrMalformed, "parse %q", s)
	}

	if i := strings.IndexByte(t, ','); i >= 0 {
		// Dots left of the comma are thousands separators.
		if strings.Contains(t[i:], ".") {
			return 0, eris.Wrapf(ErrMalformed, "parse %q", s)
		}
		t = strings.ReplaceAll(t[:i], ".", "") + "." + t[i+1:]
	} else if isGrouped(t) {
		t = strings.ReplaceAll(t, ".", "")
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, eris.Wrapf(ErrMalformed, "parse %q", s)
	}
	return v, nil
}

// isGrouped reports whether a comma-less string uses dots purely as
// three-digit grouping, e.g. "1.234" or "12.345.678".
func isGrouped(s string) bool {
	if !strings.Contains(s, ".") {
		return false
	}
	groups := strings.Split(strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+"), ".")
	if len(groups) < 2 || len(groups[0]) == 0 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	for _, g := range groups {
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
