package grid

import "slices"

// Overlap records two regions that share cells.
type Overlap struct {
	First  string
	Second string
	Shared Rect
}

// Report holds authoring warnings for a layout that already validates.
// Neither overlaps nor gaps stop a layout from being used.
type Report struct {
	Overlaps []Overlap

	// Uncovered is the number of grid cells no region covers.
	Uncovered int

	// Total is denominator squared.
	Total int
}

// Clean reports whether the regions tile the grid exactly.
func (r Report) Clean() bool {
	return len(r.Overlaps) == 0 && r.Uncovered == 0
}

// Analyze looks for overlapping regions and uncovered area. Regions are
// clipped to the grid and degenerate ones are ignored, so it is safe to run
// on a layout that failed Validate.
func Analyze(spec Spec, layout Layout) Report {
	if spec.Denominator <= 0 {
		return Report{}
	}
	bounds := Rect{Right: spec.Denominator, Bottom: spec.Denominator}

	type region struct {
		id   string
		rect Rect
	}
	var regions []region
	for id, r := range layout.Regions() {
		clipped := r.Intersect(bounds)
		if clipped.Area() == 0 {
			continue
		}
		regions = append(regions, region{id: id, rect: clipped})
	}

	report := Report{Total: bounds.Area()}
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			shared := regions[i].rect.Intersect(regions[j].rect)
			if shared.Area() > 0 {
				report.Overlaps = append(report.Overlaps, Overlap{
					First:  regions[i].id,
					Second: regions[j].id,
					Shared: shared,
				})
			}
		}
	}

	// Coverage is computed on the compressed grid formed by every region
	// edge, so the cost depends on the number of keys, not the denominator.
	xs := []int{0, spec.Denominator}
	ys := []int{0, spec.Denominator}
	for _, r := range regions {
		xs = append(xs, r.rect.Left, r.rect.Right)
		ys = append(ys, r.rect.Top, r.rect.Bottom)
	}
	slices.Sort(xs)
	slices.Sort(ys)
	xs = slices.Compact(xs)
	ys = slices.Compact(ys)

	for yi := 0; yi+1 < len(ys); yi++ {
		for xi := 0; xi+1 < len(xs); xi++ {
			x, y := xs[xi], ys[yi]
			covered := false
			for _, r := range regions {
				if r.rect.Contains(x, y) {
					covered = true
					break
				}
			}
			if !covered {
				report.Uncovered += (xs[xi+1] - x) * (ys[yi+1] - y)
			}
		}
	}

	return report
}
