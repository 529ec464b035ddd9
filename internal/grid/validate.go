package grid

import (
	"fmt"
	"iter"
	"strings"
)

// SpecID is the identifier used in a Violation that concerns the Spec
// itself rather than one of its regions.
const SpecID = "<grid>"

// Layout is anything that can enumerate its key regions by identifier.
// The sequence must be restartable; Validate and Analyze may walk it more
// than once.
type Layout interface {
	Regions() iter.Seq2[string, Rect]
}

// Violation lists everything wrong with one region.
type Violation struct {
	ID      string
	Region  Rect
	Reasons []string
}

func (v Violation) String() string {
	if v.ID == SpecID {
		return fmt.Sprintf("%s: %s", v.ID, strings.Join(v.Reasons, "; "))
	}
	return fmt.Sprintf("%s %s: %s", v.ID, v.Region, strings.Join(v.Reasons, "; "))
}

// ValidationError is returned by Validate and carries every violation
// found, in declaration order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ""
	}
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}
	if len(lines) == 1 {
		return "invalid layout: " + lines[0]
	}
	return fmt.Sprintf("invalid layout: %d violations: %s", len(lines), strings.Join(lines, "; "))
}

// Is makes every ValidationError match ErrConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrConfig
}

// IDs returns the identifiers named by the violations.
func (e *ValidationError) IDs() []string {
	if e == nil {
		return nil
	}
	ids := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		ids[i] = v.ID
	}
	return ids
}

// Validate checks the spec and every region of the layout. A region must be
// non-degenerate and lie within [0, denominator] on both axes. All problems
// are collected; the result is nil or a *ValidationError.
func Validate(spec Spec, layout Layout) error {
	var violations []Violation

	specProblems := spec.problems()
	if len(specProblems) > 0 {
		violations = append(violations, Violation{ID: SpecID, Reasons: specProblems})
	}
	rangeKnown := spec.Denominator > 0

	for id, r := range layout.Regions() {
		var reasons []string
		if r.Left >= r.Right {
			reasons = append(reasons, fmt.Sprintf("left %d is not less than right %d", r.Left, r.Right))
		}
		if r.Top >= r.Bottom {
			reasons = append(reasons, fmt.Sprintf("top %d is not less than bottom %d", r.Top, r.Bottom))
		}
		if rangeKnown {
			reasons = append(reasons, outOfRange("left", r.Left, spec.Denominator)...)
			reasons = append(reasons, outOfRange("top", r.Top, spec.Denominator)...)
			reasons = append(reasons, outOfRange("right", r.Right, spec.Denominator)...)
			reasons = append(reasons, outOfRange("bottom", r.Bottom, spec.Denominator)...)
		}
		if len(reasons) > 0 {
			violations = append(violations, Violation{ID: id, Region: r, Reasons: reasons})
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func outOfRange(edge string, v, denominator int) []string {
	if v < 0 || v > denominator {
		return []string{fmt.Sprintf("%s %d outside [0,%d]", edge, v, denominator)}
	}
	return nil
}
