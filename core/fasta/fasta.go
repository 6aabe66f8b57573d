// core/fasta/fasta.go
// Minimal, conservative FASTA helpers. This is not a general-purpose
// parser; it covers the shapes this service actually sees (pasted queries
// and alignment inputs).
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is one FASTA entry.
type Record struct {
	ID  string
	Seq string
}

// Parse reads FASTA records from r. Lines beginning with '>' start a new
// record; sequence lines are concatenated. Leading headerless sequence
// lines become a record with an empty ID.
func Parse(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8<<20)

	var recs []Record
	var cur *Record
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			recs = append(recs, Record{ID: strings.TrimSpace(line[1:])})
			cur = &recs[len(recs)-1]
			continue
		}
		if cur == nil {
			recs = append(recs, Record{})
			cur = &recs[len(recs)-1]
		}
		cur.Seq += line
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// Write emits recs to w, one two-line entry each, with sequences stripped
// of spaces and uppercased.
func Write(w io.Writer, recs []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range recs {
		clean := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rec.Seq), " ", ""))
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", rec.ID, clean); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SplitQuery interprets a raw query that may or may not carry a FASTA
// header. With a header, the first header line (minus '>') becomes the ID
// and the remaining non-header lines are joined. Headerless input gets the
// ID "Query" and is stripped of whitespace wholesale. Case is preserved.
func SplitQuery(raw string) (id, seq string) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, ">") {
		var b strings.Builder
		for _, r := range trimmed {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				continue
			}
			b.WriteRune(r)
		}
		return "Query", b.String()
	}
	lines := strings.Split(trimmed, "\n")
	id = strings.TrimSpace(strings.TrimPrefix(lines[0], ">"))
	var b strings.Builder
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			continue
		}
		b.WriteString(line)
	}
	return id, b.String()
}
