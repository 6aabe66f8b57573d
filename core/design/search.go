// core/design/search.go
package design

import (
	"math"

	"moligo-core/seq"
)

// candidate is one enumerated oligo during a flank scan. Not retained
// beyond the scan.
type candidate struct {
	seq  string
	l    int
	tm   float64
	diff float64
}

// better reports whether a should replace b. The comparison is strictly
// less-than, so on equal diffs the incumbent wins; scanning lengths in
// ascending order that makes the tie-break "shortest length wins".
func better(a, b candidate) bool { return a.diff < b.diff }

// searchFlank scans candidate lengths r.min..r.max over flank and folds
// them into the candidate whose Tm lands closest to target while inside
// the tolerance band. ok is false when nothing qualifies.
//
// The scan is linear on purpose: Tm is not monotonic in length near the
// tolerance band, so every length in the (small) range must be tried.
func searchFlank(flank Flank, chunk string, r lengthRange, target, tol float64, tm TmFunc) (candidate, bool) {
	best := candidate{diff: math.Inf(1)}
	found := false
	for l := r.min; l <= r.max; l++ {
		if l < 1 || l > len(chunk) {
			continue
		}
		var oligo string
		if flank == FlankP1 {
			oligo = seq.RevComp(chunk[len(chunk)-l:])
		} else {
			oligo = chunk[:l]
		}
		t, err := tm(oligo)
		if err != nil {
			continue
		}
		diff := math.Abs(t - target)
		if diff > tol {
			continue
		}
		c := candidate{seq: oligo, l: l, tm: t, diff: diff}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}
