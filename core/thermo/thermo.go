// core/thermo/thermo.go
// Nearest-neighbor melting temperature for short DNA oligos.
//
// Steps:
//  1. Sum initiation + per-stack ΔH/ΔS over dinucleotides.
//  2. Salt correction to ΔS for monovalent ions:
//     ΔS([Na+]) = ΔS(1M) + 0.368*(N-1)*ln[Na+].
//  3. Two-state Tm (K): Tm = ΔH*1000 / (ΔS_Na + R ln(CT/x)) − 273.15 (°C).
//
// This package has no app deps; the design core consumes it through a
// plain function value.
package thermo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Conditions holds the commonly tuned wet-lab knobs.
type Conditions struct {
	NaM               float64 // monovalent cations, mol/L
	PrimerTotalM      float64 // total primer concentration, mol/L
	SelfComplementary bool
}

// Default returns the solution conditions assumed when nothing is
// configured: 50 mM monovalent salt, 50 nM primer, non-self-complementary
// duplex.
func Default() Conditions {
	return Conditions{NaM: 0.05, PrimerTotalM: 50e-9}
}

// Tm computes the melting temperature (°C) of oligo (5'→3') against its
// perfect complement. Sequences shorter than 2 nt or containing non-ACGT
// bases are rejected.
func (c Conditions) Tm(oligo string) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(oligo))
	if len(s) < 2 {
		return 0, errors.New("thermo: sequence shorter than 2 nt")
	}

	dH := initDH
	dS := initDS
	for i := 0; i < len(s)-1; i++ {
		dh, okH := nnDH[s[i:i+2]]
		ds, okS := nnDS[s[i:i+2]]
		if !okH || !okS {
			return 0, fmt.Errorf("thermo: non-ACGT dimer %q at %d", s[i:i+2], i)
		}
		dH += dh
		dS += ds
	}
	if c.SelfComplementary {
		dS += symmetryDS
	}

	na := c.NaM
	if na <= 0 {
		na = 1e-6
	}
	dS += 0.368 * float64(len(s)-1) * math.Log(na)

	ct := math.Max(c.PrimerTotalM, 1e-12)
	x := 4.0
	if c.SelfComplementary {
		x = 1.0
	}
	tmK := (dH * 1000.0) / (dS + rcal*math.Log(ct/x))
	return tmK - 273.15, nil
}
