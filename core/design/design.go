// core/design/design.go
package design

import "moligo-core/seq"

// Design normalizes raw, resolves the split point, and selects the P1
// (left, reverse complement) and P2 (right, literal) primers under the
// given constraints. The two flank searches are independent; they are run
// in order so that a P1 failure is always the one reported when both
// flanks fail. No partial result is ever returned.
func Design(raw string, p Params, tm TmFunc) (Pair, error) {
	s, err := seq.Normalize(raw)
	if err != nil {
		return Pair{}, err
	}

	split := ResolveSplit(len(s), p.SplitIdx)
	left, right := s[:split], s[split:]

	p1, ok := searchFlank(FlankP1, left, resolveRange(FlankP1, p, split, len(left)), p.TargetTm, p.Tolerance, tm)
	if !ok {
		return Pair{}, &NoPrimerError{Flank: FlankP1}
	}
	p2, ok := searchFlank(FlankP2, right, resolveRange(FlankP2, p, split, len(right)), p.TargetTm, p.Tolerance, tm)
	if !ok {
		return Pair{}, &NoPrimerError{Flank: FlankP2}
	}

	return Pair{
		P1:       assemble(p1, split-p1.l, split),
		P2:       assemble(p2, split, split+p2.l),
		SplitIdx: split,
	}, nil
}

func assemble(c candidate, start, end int) Primer {
	return Primer{
		Seq:   c.seq,
		Tm:    seq.Round1(c.tm),
		Len:   c.l,
		GC:    seq.GCPercent(c.seq),
		Start: start,
		End:   end,
	}
}
