package update

import (
	"strconv"
	"strings"
)

// Compare compares two dotted version strings numerically.
// Returns:
//   - -1 if a < b
//   - 0 if a == b
//   - 1 if a > b
//
// Each input may carry one leading non-digit prefix character (typically
// "v"), which is stripped. Missing or non-numeric segments count as zero, and
// the shorter version is zero-padded, so "1.0" == "1.0.0" and malformed input
// degrades rather than failing. Release tags therefore do not need to be
// strict semver for "current < latest" to be a safe update gate.
func Compare(a, b string) int {
	as := segments(a)
	bs := segments(b)

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}

	return 0
}

// IsNewer reports whether latest is strictly newer than current.
func IsNewer(current, latest string) bool {
	return Compare(current, latest) < 0
}

// Normalize strips the optional leading prefix character, returning the bare
// dotted version (e.g. "v1.1.0" -> "1.1.0").
func Normalize(v string) string {
	if v != "" && (v[0] < '0' || v[0] > '9') {
		return v[1:]
	}
	return v
}

// segments parses a version string into its numeric components. Segments
// that fail to parse, or parse negative, are treated as zero.
func segments(v string) []int {
	parts := strings.Split(Normalize(v), ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			continue
		}
		out[i] = n
	}
	return out
}
