package scan

import (
	"regexp"
	"strings"
)

// signaturePattern recognises a line that opens a method body:
//
//	@Override public static <T> List<T> copy(List<T> in) throws IOException {
//
// Annotations are optional, at least one modifier keyword is required, the
// return type is only checked to look like a type expression, and the opening
// brace must be on the same line. Constructors and package-private methods
// do not match.
var signaturePattern = regexp.MustCompile(
	`^(?:@\w+(?:\([^)]*\))?\s*)*` + // annotations
		`(?:public|protected|private|static|final|native|synchronized|abstract|transient|strictfp|\s)+` +
		`[\w<>\[\],\s]+` + // return type
		`\s+(\w+)` + // name
		`\s*\([^)]*\)` + // parameters
		`\s*(?:throws\s+[^{]+)?` +
		`\s*\{`,
)

// MatchSignature reports whether line opens a new unit and returns the
// captured method name. It is state-free; leading and trailing whitespace
// are ignored. Statements that happen to look like signatures are accepted.
func MatchSignature(line string) (name string, ok bool) {
	m := signaturePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsSignature is MatchSignature without the name.
func IsSignature(line string) bool {
	_, ok := MatchSignature(line)
	return ok
}
