package scan

import "strings"

// Extract walks lines once, left to right, and returns the units and the
// interstitial fragments between them. A unit starts on a line matched by
// MatchSignature and ends on the first line after which depth is exactly
// zero. A unit still open at end of input is flushed with Partial set.
func Extract(lines []SourceLine, opts Options) Result {
	var (
		res     Result
		pending []SourceLine
		current []SourceLine
		counter *DepthCounter
		name    string
		depth   int
		active  bool
	)

	for _, line := range lines {
		if !active {
			n, ok := MatchSignature(line.Text)
			if !ok {
				pending = append(pending, line)
				continue
			}
			res.addFragment(pending)
			pending = nil

			active = true
			name = n
			depth = 0
			counter = NewDepthCounter(opts)
		}

		current = append(current, line)
		depth += counter.Delta(line.Text)
		if depth == 0 {
			res.addUnit(current, name, false)
			current = nil
			active = false
		}
	}

	if active {
		res.addUnit(current, name, true)
	}
	res.addFragment(pending)

	return res
}

// ExtractText splits text into lines and extracts it.
func ExtractText(text string, opts Options) Result {
	return Extract(SplitLines(text), opts)
}

func (r *Result) addUnit(lines []SourceLine, name string, partial bool) {
	if len(lines) == 0 {
		return
	}
	r.Units = append(r.Units, Unit{
		Text:    JoinLines(lines),
		Name:    name,
		Start:   lines[0].Index,
		End:     lines[len(lines)-1].Index,
		Ordinal: len(r.Units) + 1,
		Partial: partial,
	})
}

func (r *Result) addFragment(lines []SourceLine) {
	if len(lines) == 0 {
		return
	}
	r.Fragments = append(r.Fragments, Fragment{
		Text:  JoinLines(lines),
		Start: lines[0].Index,
		End:   lines[len(lines)-1].Index,
	})
}

// JoinLines joins line texts with newlines.
func JoinLines(lines []SourceLine) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}
