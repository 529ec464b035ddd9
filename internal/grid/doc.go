// Package grid defines the shared fractional coordinate system that key
// regions are expressed in.
//
// A layout declares one integer denominator that subdivides both axes.
// Every key region is a rectangle of small integers in [0, denominator],
// and a renderer interpolates position/denominator onto whatever canvas it
// has, so the same layout positions correctly at any size:
//
//	     0   4   8  12
//	     +---+---+---+  0
//	     | 1 | 2 | 3 |
//	     +---+---+---+  3
//	     | 4 | 5 | 6 |
//	     +---+---+---+  6
//	     | 7 | 8 | 9 |
//	     +---+---+---+  9
//	     | * | 0 | # |
//	     +---+---+---+ 12
//
// A 3x4 grid uses denominator 12, a common multiple of both axis counts.
// The denominator is declared by the layout author; nothing here infers it.
//
// # Validation
//
// Validate checks every region against the denominator and reports all
// problems in one *ValidationError instead of stopping at the first one.
// Overlapping regions and uncovered area are not errors; Analyze reports
// them separately as authoring warnings.
package grid
