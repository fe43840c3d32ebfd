package classify

import "strings"

// maxTrivialLines is the longest unit, in non-blank lines, that can still be
// a bare accessor or mutator.
const maxTrivialLines = 4

// accessorHints are substrings of a lower-cased signature line that suggest
// an accessor or mutator.
var accessorHints = []string{"get", "set", "is"}

// IsTrivial reports whether a unit's text looks like a bare getter or setter:
// an accessor-like signature followed by at most a return or a single
// assignment. The check is conjunctive to keep false positives down; missing
// some trivial units is acceptable.
func IsTrivial(text string) bool {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return false
	}

	if !containsAny(strings.ToLower(lines[0]), accessorHints) || len(lines) > maxTrivialLines {
		return false
	}

	body := strings.Join(lines[1:], " ")
	if strings.HasPrefix(body, "return ") {
		return true
	}
	return strings.Contains(body, "=") &&
		(strings.Contains(body, "this.") || strings.HasSuffix(body, ";"))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
