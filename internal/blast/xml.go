// internal/blast/xml.go
package blast

import (
	"encoding/xml"
	"errors"
	"strings"

	"moligo-core/seq"
)

const maxDescriptionLen = 100

// Wire shape of NCBI's BlastOutput XML, reduced to the fields we read.
type blastOutput struct {
	QueryLen int      `xml:"BlastOutput_query-len"`
	Hits     []xmlHit `xml:"BlastOutput_iterations>Iteration>Iteration_hits>Hit"`
}

type xmlHit struct {
	Accession string   `xml:"Hit_accession"`
	Def       string   `xml:"Hit_def"`
	Hsps      []xmlHsp `xml:"Hit_hsps>Hsp"`
}

type xmlHsp struct {
	Identity int     `xml:"Hsp_identity"`
	AlignLen int     `xml:"Hsp_align-len"`
	EValue   float64 `xml:"Hsp_evalue"`
	Hseq     string  `xml:"Hsp_hseq"`
}

// parseXML extracts hits from a BlastOutput document. Per hit only the
// first (best) HSP is used; hits whose subject sequence is empty after
// gap removal are dropped.
func parseXML(text string) ([]Hit, int, error) {
	var out blastOutput
	if err := xml.Unmarshal([]byte(text), &out); err != nil {
		return nil, 0, errors.New("blast: failed to parse XML response")
	}

	var hits []Hit
	for _, h := range out.Hits {
		if len(h.Hsps) == 0 {
			continue
		}
		hsp := h.Hsps[0]

		subject := strings.ReplaceAll(hsp.Hseq, "-", "")
		if subject == "" {
			continue
		}

		identity := 0.0
		if hsp.AlignLen > 0 {
			identity = seq.Round1(float64(hsp.Identity) / float64(hsp.AlignLen) * 100)
		}
		cover := 0.0
		if out.QueryLen > 0 {
			cover = seq.Round1(float64(hsp.AlignLen) / float64(out.QueryLen) * 100)
		}

		desc := h.Def
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}

		hits = append(hits, Hit{
			Accession:   h.Accession,
			Description: desc,
			EValue:      hsp.EValue,
			Identity:    identity,
			QueryCover:  cover,
			Sequence:    subject,
		})
	}
	return hits, out.QueryLen, nil
}
