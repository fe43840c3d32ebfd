package classify

import (
	"fmt"

	"github.com/mvp-joe/testforge/internal/scan"
)

// Kind is the per-file decision on what test generation is worth doing.
type Kind int

const (
	// KindNone means the file has no units; no ratio exists.
	KindNone Kind = iota

	// KindSkip marks a large, overwhelmingly trivial data holder.
	KindSkip

	// KindSinglePass marks a small data holder tested as one target.
	KindSinglePass

	// KindPerUnit marks a file whose non-trivial units are tested one by one.
	KindPerUnit
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSkip:
		return "skip"
	case KindSinglePass:
		return "single-pass"
	case KindPerUnit:
		return "per-unit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Default policy thresholds.
const (
	DefaultTrivialRatio  = 0.8
	DefaultSkipUnitCount = 60
)

// Thresholds are the policy constants behind the file decision.
type Thresholds struct {
	// TrivialRatio is the trivial/total ratio at or above which a file is
	// treated as a data holder.
	TrivialRatio float64

	// SkipUnitCount is the unit count above which a data holder is skipped.
	SkipUnitCount int
}

// DefaultThresholds returns 0.8 and 60.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TrivialRatio:  DefaultTrivialRatio,
		SkipUnitCount: DefaultSkipUnitCount,
	}
}

// FileClassification is the outcome for one file plus the counts behind it.
type FileClassification struct {
	Kind    Kind
	Total   int
	Trivial int
	Ratio   float64 // zero for KindNone
}

// Classifier applies Thresholds to unit counts.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Thresholds returns the classifier's policy values.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify decides from the total and trivial unit counts. A zero total is
// the degenerate case and yields KindNone without computing a ratio.
func (c *Classifier) Classify(total, trivial int) FileClassification {
	fc := FileClassification{Kind: KindNone, Total: total, Trivial: trivial}
	if total <= 0 {
		return fc
	}

	fc.Ratio = float64(trivial) / float64(total)
	switch {
	case fc.Ratio >= c.thresholds.TrivialRatio && total > c.thresholds.SkipUnitCount:
		fc.Kind = KindSkip
	case fc.Ratio >= c.thresholds.TrivialRatio:
		fc.Kind = KindSinglePass
	default:
		fc.Kind = KindPerUnit
	}
	return fc
}

// ClassifyUnits runs IsTrivial over units and classifies the file. The
// returned slice holds each unit's triviality, index-aligned with units.
func (c *Classifier) ClassifyUnits(units []scan.Unit) (FileClassification, []bool) {
	trivial := make([]bool, len(units))
	count := 0
	for i, u := range units {
		if IsTrivial(u.Text) {
			trivial[i] = true
			count++
		}
	}
	return c.Classify(len(units), count), trivial
}

// SelectUnits returns the units that downstream generation should treat
// individually or as a whole:
//   - KindNone, KindSkip: nothing
//   - KindSinglePass: every unit (the file is one target)
//   - KindPerUnit: the non-trivial units only
func SelectUnits(units []scan.Unit, trivial []bool, fc FileClassification) []scan.Unit {
	switch fc.Kind {
	case KindSinglePass:
		return units
	case KindPerUnit:
		var selected []scan.Unit
		for i, u := range units {
			if i < len(trivial) && trivial[i] {
				continue
			}
			selected = append(selected, u)
		}
		return selected
	default:
		return nil
	}
}
