// core/design/ranges.go
package design

// lengthRange is the inclusive candidate-length window for one flank.
type lengthRange struct {
	min, max int
}

// resolveRange applies the override precedence for one flank, highest
// first: explicit per-flank length, then the global desired length, then
// the global min/max bounds.
//
// In the min/max tier the left flank's upper bound is additionally capped
// by the split index while the right flank's is not. The cap is redundant
// once the availability clamp runs (the left flank is exactly splitIdx
// long), and may be a historical artifact rather than a deliberate
// constraint; it is kept for output stability.
//
// The availability clamp always runs last. A range with min > max after
// clamping simply enumerates nothing.
func resolveRange(flank Flank, p Params, splitIdx, avail int) lengthRange {
	explicit := p.P1Len
	if flank == FlankP2 {
		explicit = p.P2Len
	}

	var r lengthRange
	switch {
	case explicit != nil:
		r = lengthRange{*explicit, *explicit}
	case p.DesiredLen != nil:
		r = lengthRange{*p.DesiredLen, *p.DesiredLen}
	default:
		r = lengthRange{p.MinLen, p.MaxLen}
		if flank == FlankP1 && splitIdx < r.max {
			r.max = splitIdx
		}
	}

	if r.max > avail {
		r.max = avail
	}
	if r.min > avail {
		r.min = avail
	}
	return r
}
