package pacman

import "strings"

// compareVersions orders two pacman version strings the way vercmp
// does, close enough to tell an upgrade from a downgrade: versions are
// walked as alternating numeric and alphabetic segments, numeric
// segments compare numerically, a numeric segment beats an alphabetic
// one at the same position, and separators only delimit. Returns -1, 0,
// or 1 as a sorts before, equal to, or after b.
func compareVersions(a, b string) int {
	for a != "" || b != "" {
		a = trimSeparators(a)
		b = trimSeparators(b)
		if a == "" || b == "" {
			break
		}

		segA, restA, numA := nextSegment(a)
		segB, restB, numB := nextSegment(b)

		if numA != numB {
			// "1.0rc" vs "1.0.1": the numeric segment is newer.
			if numA {
				return 1
			}
			return -1
		}

		var cmp int
		if numA {
			cmp = compareNumeric(segA, segB)
		} else {
			cmp = strings.Compare(segA, segB)
		}
		if cmp != 0 {
			return cmp
		}

		a, b = restA, restB
	}

	// One side ran out of segments: the longer version is newer
	// ("1.0" < "1.0.1").
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// nextSegment takes the leading maximal run of digits or of
// non-digit characters from s.
func nextSegment(s string) (seg, rest string, numeric bool) {
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric && !isSeparator(s[i]) {
		i++
	}
	return s[:i], s[i:], numeric
}

// compareNumeric compares two digit runs numerically without parsing
// them into integers, so arbitrarily long version components are fine.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func trimSeparators(s string) string {
	i := 0
	for i < len(s) && isSeparator(s[i]) {
		i++
	}
	return s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSeparator(c byte) bool {
	return !isDigit(c) && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z')
}
