// core/design/types.go
// Package design selects a pair of flanking oligos ("moligo" pair) around
// a split point in a target sequence, each constrained to a melting
// temperature window.
package design

import "fmt"

// Flank identifies which side of the split a primer covers.
type Flank string

const (
	// FlankP1 is left of the split; its primer is reported as the reverse
	// complement of the template (it binds the opposite strand).
	FlankP1 Flank = "P1"
	// FlankP2 is right of the split; its primer is the template prefix
	// taken literally.
	FlankP2 Flank = "P2"
)

// TmFunc computes the melting temperature (°C) of an oligo given 5'→3'.
// It must be deterministic and side-effect-free. An error rejects the
// candidate being evaluated, nothing more.
type TmFunc func(oligo string) (float64, error)

// Params are the design knobs. Optional fields are pointers so "absent"
// and "zero" stay distinguishable.
type Params struct {
	TargetTm   float64
	Tolerance  float64
	MinLen     int
	MaxLen     int
	DesiredLen *int
	P1Len      *int
	P2Len      *int
	SplitIdx   *int
}

// DefaultParams returns the stock design constraints.
func DefaultParams() Params {
	return Params{TargetTm: 60.0, Tolerance: 0.5, MinLen: 18, MaxLen: 30}
}

// Primer is one selected oligo with half-open [Start,End) coordinates on
// the normalized input sequence. Tm and GC are rounded to one decimal.
type Primer struct {
	Seq   string
	Tm    float64
	Len   int
	GC    float64
	Start int
	End   int
}

// Pair is the designed P1/P2 pair plus the split index actually used.
type Pair struct {
	P1       Primer
	P2       Primer
	SplitIdx int
}

// NoPrimerError reports the flank for which no candidate length produced
// a Tm within tolerance. The caller must resubmit with relaxed
// constraints; nothing is relaxed automatically.
type NoPrimerError struct {
	Flank Flank
}

func (e *NoPrimerError) Error() string {
	return fmt.Sprintf("no %s primer found matching criteria; try relaxing constraints", e.Flank)
}
