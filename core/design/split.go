// core/design/split.go
package design

// ResolveSplit returns the 0-based split index for a sequence of length n.
// Absent an explicit index it defaults to the midpoint n/2. The low clamp
// runs before the high clamp, so a 1-nt sequence resolves to 0 and leaves
// an empty left flank; the downstream search then finds no candidate.
func ResolveSplit(n int, explicit *int) int {
	idx := n / 2
	if explicit != nil {
		idx = *explicit
	}
	if idx < 1 {
		idx = 1
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}
