package scan

import "strings"

// DepthCounter computes the block-depth change contributed by each line of a
// unit. Lines must be fed in file order: block comments and text blocks carry
// state from one line to the next.
type DepthCounter struct {
	countLiterals  bool
	inBlockComment bool
	inTextBlock    bool
}

// NewDepthCounter returns a counter for a single unit.
func NewDepthCounter(opts Options) *DepthCounter {
	return &DepthCounter{countLiterals: opts.CountLiterals}
}

// Delta returns opening minus closing braces on line.
func (d *DepthCounter) Delta(line string) int {
	if d.countLiterals {
		return strings.Count(line, "{") - strings.Count(line, "}")
	}

	delta := 0
	for i := 0; i < len(line); i++ {
		c := line[i]

		if d.inBlockComment {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				d.inBlockComment = false
				i++
			}
			continue
		}

		if d.inTextBlock {
			if c == '\\' {
				i++
			} else if strings.HasPrefix(line[i:], `"""`) {
				d.inTextBlock = false
				i += 2
			}
			continue
		}

		switch {
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return delta
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			d.inBlockComment = true
			i++
		case strings.HasPrefix(line[i:], `"""`):
			d.inTextBlock = true
			i += 2
		case c == '"' || c == '\'':
			end := closingQuote(line, i)
			if end < 0 {
				// Unterminated literal runs to end of line.
				return delta
			}
			i = end
		case c == '{':
			delta++
		case c == '}':
			delta--
		}
	}
	return delta
}

// closingQuote returns the index of the quote that closes the literal opened
// at line[start], or -1.
func closingQuote(line string, start int) int {
	quote := line[start]
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}
