// core/seq/seq.go
package seq

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

// ErrEmptySequence is returned when normalization leaves nothing behind.
var ErrEmptySequence = errors.New("empty sequence")

// Normalize strips whitespace and alignment gaps ('-') and uppercases the
// rest. Anything else passes through untouched: the alphabet is deliberately
// not validated here, so downstream consumers (the Tm calculator in
// particular) decide what they can model.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "", ErrEmptySequence
	}
	return b.String(), nil
}

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = byte(i)
	}
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// RevComp returns the reverse complement of s. Bytes outside A/C/G/T map to
// themselves, so RevComp(RevComp(s)) == s holds for any input.
func RevComp(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[s[n-1-i]]
	}
	return string(out)
}

// GCPercent returns the G+C content of s as a percentage, one decimal.
func GCPercent(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(s); i++ {
		if s[i] == 'G' || s[i] == 'C' {
			gc++
		}
	}
	return Round1(100 * float64(gc) / float64(len(s)))
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(x float64) float64 { return math.Round(x*10) / 10 }
