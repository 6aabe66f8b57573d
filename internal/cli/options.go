// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"moligo/internal/version"
)

// Unset is the sentinel for optional integer flags.
const Unset = -1

// Options holds all CLI flags for the moligo designer.
type Options struct {
	// Input (one of)
	Seq       string
	FastaFile string

	// Design constraints
	TargetTm  float64
	Tolerance float64
	MinLen    int
	MaxLen    int
	Length    int // exact length for both primers; Unset = use min/max
	P1Len     int // exact length for P1 only
	P2Len     int // exact length for P2 only
	Split     int // 0-based split index; Unset = midpoint

	// Output
	Output string // text | json

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: flanking primer-pair design around a split point

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Seq, "seq", "", "target sequence (raw or FASTA) [*]")
	fs.StringVar(&opt.FastaFile, "fasta", "", "FASTA file with the target sequence (or '-' for stdin) [*]")

	fs.Float64Var(&opt.TargetTm, "target-tm", 60.0, "target melting temperature, °C [60.0]")
	fs.Float64Var(&opt.Tolerance, "tolerance", 0.5, "allowed |Tm - target| band, °C [0.5]")
	fs.IntVar(&opt.MinLen, "min-length", 18, "minimum primer length [18]")
	fs.IntVar(&opt.MaxLen, "max-length", 30, "maximum primer length [30]")
	fs.IntVar(&opt.Length, "length", Unset, "exact length for both primers (-1 = use min/max) [-1]")
	fs.IntVar(&opt.P1Len, "p1-length", Unset, "exact length for P1 only (-1 = unset) [-1]")
	fs.IntVar(&opt.P2Len, "p2-length", Unset, "exact length for P2 only (-1 = unset) [-1]")
	fs.IntVar(&opt.Split, "split", Unset, "0-based split index (-1 = midpoint) [-1]")

	fs.StringVar(&opt.Output, "output", "text", "output format: text | json [text]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	switch {
	case opt.Seq != "" && opt.FastaFile != "":
		return opt, errors.New("--seq conflicts with --fasta")
	case opt.Seq == "" && opt.FastaFile == "":
		return opt, errors.New("provide --seq or --fasta")
	}
	if opt.Tolerance < 0 {
		return opt, errors.New("--tolerance must be ≥ 0")
	}
	if opt.MinLen < 1 || opt.MaxLen < 1 {
		return opt, errors.New("--min-length and --max-length must be ≥ 1")
	}
	if opt.MinLen > opt.MaxLen {
		return opt, errors.New("--min-length must not exceed --max-length")
	}
	for _, v := range []struct {
		name string
		val  int
	}{{"--length", opt.Length}, {"--p1-length", opt.P1Len}, {"--p2-length", opt.P2Len}} {
		if v.val != Unset && v.val < 1 {
			return opt, fmt.Errorf("%s must be ≥ 1", v.name)
		}
	}
	if opt.Split != Unset && opt.Split < 0 {
		return opt, errors.New("--split must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}
