// core/seq/seq_test.go
package seq

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	got, err := Normalize(" ac gt\nAC-GT\t")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "ACGTACGT" {
		t.Errorf("Normalize = %q, want ACGTACGT", got)
	}
}

func TestNormalizePermissiveAlphabet(t *testing.T) {
	got, err := Normalize("acgtn x")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "ACGTNX" {
		t.Errorf("Normalize = %q, want ACGTNX (non-nucleotide bytes pass through)", got)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "---", "\n- \t"} {
		if _, err := Normalize(in); !errors.Is(err, ErrEmptySequence) {
			t.Errorf("Normalize(%q) err = %v, want ErrEmptySequence", in, err)
		}
	}
}

func TestRevComp(t *testing.T) {
	if got := RevComp("AGTC"); got != "GACT" {
		t.Errorf("RevComp(AGTC) = %q, want GACT", got)
	}
	if got := RevComp(""); got != "" {
		t.Errorf("RevComp(\"\") = %q, want \"\"", got)
	}
}

func TestRevCompRoundTrip(t *testing.T) {
	for _, s := range []string{"ACGT", "AAAA", "GATTACA", "ACGTNX", "TTTTTTTTTTGGGGG"} {
		if got := RevComp(RevComp(s)); got != s {
			t.Errorf("RevComp round trip of %q = %q", s, got)
		}
	}
}

func TestGCPercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"GGCC", 100},
		{"ATAT", 0},
		{"ACGT", 50},
		{"ACG", 66.7},
		{"", 0},
	}
	for _, c := range cases {
		if got := GCPercent(c.in); got != c.want {
			t.Errorf("GCPercent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(59.95); got != 60.0 {
		t.Errorf("Round1(59.95) = %v, want 60.0", got)
	}
	if got := Round1(33.333); got != 33.3 {
		t.Errorf("Round1(33.333) = %v, want 33.3", got)
	}
}
