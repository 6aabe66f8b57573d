// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"moligo-core/design"
	"moligo-core/fasta"
	"moligo-core/thermo"
	"moligo/internal/cli"
	"moligo/internal/jsonutil"
	"moligo/internal/version"
	apiv1 "moligo/pkg/api"
)

// Exit codes: 0 ok, 1 no primer within constraints, 2 usage error, 3 I/O
// or output error.

func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("moligo")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "moligo version %s\n", version.Version)
		return 0
	}

	raw, err := readInput(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	pair, err := design.Design(raw, paramsFrom(opts), thermo.Default().Tm)
	if err != nil {
		var npe *design.NoPrimerError
		if errors.As(err, &npe) {
			_, _ = fmt.Fprintln(stderr, err)
			return 1
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if err := write(outw, opts.Output, pair); err != nil {
		if isBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := outw.Flush(); err != nil {
		if isBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func readInput(opts cli.Options) (string, error) {
	if opts.Seq != "" {
		return opts.Seq, nil
	}
	var r io.Reader
	if opts.FastaFile == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(opts.FastaFile)
		if err != nil {
			return "", err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	recs, err := fasta.Parse(r)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "", fmt.Errorf("no sequence found in %s", opts.FastaFile)
	}
	return recs[0].Seq, nil
}

func paramsFrom(opts cli.Options) design.Params {
	p := design.Params{
		TargetTm:  opts.TargetTm,
		Tolerance: opts.Tolerance,
		MinLen:    opts.MinLen,
		MaxLen:    opts.MaxLen,
	}
	set := func(v int) *int {
		if v == cli.Unset {
			return nil
		}
		return &v
	}
	p.DesiredLen = set(opts.Length)
	p.P1Len = set(opts.P1Len)
	p.P2Len = set(opts.P2Len)
	p.SplitIdx = set(opts.Split)
	return p
}

func write(w io.Writer, format string, pair design.Pair) error {
	if format == "json" {
		return jsonutil.EncodePretty(w, apiv1.MoligizeResponseV1{
			P1:       primerV1(pair.P1),
			P2:       primerV1(pair.P2),
			SplitIdx: pair.SplitIdx,
		})
	}
	if _, err := fmt.Fprintf(w, "split_idx\t%d\n", pair.SplitIdx); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "primer\tseq\tlen\ttm\tgc\tstart\tend"); err != nil {
		return err
	}
	for _, row := range []struct {
		name string
		p    design.Primer
	}{{"P1", pair.P1}, {"P2", pair.P2}} {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.1f\t%d\t%d\n",
			row.name, row.p.Seq, row.p.Len, row.p.Tm, row.p.GC, row.p.Start, row.p.End); err != nil {
			return err
		}
	}
	return nil
}

func primerV1(p design.Primer) apiv1.PrimerV1 {
	return apiv1.PrimerV1{Seq: p.Seq, Tm: p.Tm, Len: p.Len, GC: p.GC, Start: p.Start, End: p.End}
}

// isBrokenPipe reports whether an error is a broken pipe / closed pipe;
// downstream consumers (like `head`) closing early is not a failure.
func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
