package scan

// SourceLine is one line of raw file text with its 0-based index in the file.
type SourceLine struct {
	Index int
	Text  string
}

// Unit is one extracted method: the signature line through the line where
// block depth returned to zero.
type Unit struct {
	Text    string // newline-joined raw lines
	Name    string // method name captured from the signature line
	Start   int    // 0-based index of the signature line
	End     int    // 0-based index of the last consumed line (inclusive)
	Ordinal int    // 1-based position among the file's units

	// Partial is set when the file ended before depth returned to zero.
	// Only the final unit of a file can be partial.
	Partial bool
}

// LineCount returns the number of source lines the unit spans.
func (u Unit) LineCount() int {
	return u.End - u.Start + 1
}

// Fragment is a run of lines between units (fields, imports, class headers).
// Fragments are carried through for callers that want them but are never
// classified.
type Fragment struct {
	Text  string
	Start int
	End   int
}

// Result holds everything extracted from one file, in file order.
type Result struct {
	Units     []Unit
	Fragments []Fragment
}

// Empty reports whether no units were found.
func (r Result) Empty() bool {
	return len(r.Units) == 0
}

// Options tunes extraction.
type Options struct {
	// CountLiterals counts every brace character, including those inside
	// string/char literals and comments. The default skips them.
	CountLiterals bool
}
