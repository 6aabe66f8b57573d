// internal/api/handlers.go
// Thin endpoint layer: decode, delegate to collaborators, encode. All
// domain logic lives in moligo-core and the collaborator packages.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"moligo-core/design"
	"moligo-core/fasta"
	"moligo-core/seq"
	"moligo/internal/blast"
	"moligo/internal/httpx"
	apiv1 "moligo/pkg/api"
)

// Searcher is the remote BLAST collaborator.
type Searcher interface {
	Search(ctx context.Context, query string, opt blast.Options) ([]blast.Hit, blast.Meta, error)
}

// SequenceAligner is the external MSA collaborator.
type SequenceAligner interface {
	Align(ctx context.Context, recs []fasta.Record) (string, error)
}

// Handlers bundles the endpoints and their dependencies.
type Handlers struct {
	Blast       Searcher
	MSA         SequenceAligner
	Tm          design.TmFunc
	Log         *zap.Logger
	BlastAPIKey string // default key when the request carries none
}

// Healthz reports liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SearchAndAlign runs the full pipeline: BLAST the query, then align the
// query together with the hit subjects.
func (h *Handlers) SearchAndAlign(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body apiv1.SearchRequestV1
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("bad_request", "invalid JSON body", http.StatusBadRequest))
		return
	}
	if strings.TrimSpace(body.Sequence) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("empty_sequence", "sequence cannot be empty", http.StatusBadRequest))
		return
	}

	apiKey := body.APIKey
	if apiKey == "" {
		apiKey = h.BlastAPIKey
	}
	hits, meta, err := h.Blast.Search(ctx, body.Sequence, blast.Options{
		MaxHits:      body.MaxHits,
		APIKey:       apiKey,
		Organism:     body.Organism,
		EValue:       body.EValue,
		PercIdentity: body.PercIdentity,
	})
	if err != nil {
		h.Log.Warn("blast search failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("blast_failed", err.Error(), http.StatusBadGateway))
		return
	}
	if len(hits) == 0 {
		httpx.WriteError(ctx, w, httpx.NewError("no_hits", "no BLAST hits found", http.StatusNotFound))
		return
	}

	queryID, querySeq := fasta.SplitQuery(body.Sequence)
	recs := make([]fasta.Record, 0, len(hits)+1)
	recs = append(recs, fasta.Record{ID: queryID, Seq: querySeq})
	for _, hit := range hits {
		recs = append(recs, fasta.Record{ID: hit.Accession, Seq: hit.Sequence})
	}

	alignment, err := h.MSA.Align(ctx, recs)
	if err != nil {
		h.Log.Error("alignment failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("alignment_failed", err.Error(), http.StatusInternalServerError))
		return
	}

	out := apiv1.SearchResponseV1{
		BlastHits: make([]apiv1.BlastHitV1, 0, len(hits)),
		BlastMeta: apiv1.BlastMetaV1{RID: meta.RID, RTOE: meta.RTOE, QueryLen: meta.QueryLen},
		Alignment: alignment,
		NumHits:   len(hits),
	}
	for _, hit := range hits {
		out.BlastHits = append(out.BlastHits, apiv1.BlastHitV1{
			Accession:   hit.Accession,
			Description: hit.Description,
			EValue:      hit.EValue,
			Identity:    hit.Identity,
			QueryCover:  hit.QueryCover,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Align aligns caller-supplied sequences directly.
func (h *Handlers) Align(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body apiv1.AlignRequestV1
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("bad_request", "invalid JSON body", http.StatusBadRequest))
		return
	}
	if len(body.Sequences) < 2 {
		httpx.WriteError(ctx, w, httpx.NewError("too_few_sequences", "at least two sequences are required for alignment", http.StatusBadRequest))
		return
	}

	recs := make([]fasta.Record, 0, len(body.Sequences))
	for _, s := range body.Sequences {
		recs = append(recs, fasta.Record{ID: s.ID, Seq: s.Seq})
	}
	alignment, err := h.MSA.Align(ctx, recs)
	if err != nil {
		h.Log.Error("alignment failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("alignment_failed", err.Error(), http.StatusInternalServerError))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, apiv1.AlignResponseV1{Alignment: alignment})
}

// Moligize designs a flanking primer pair around a split point.
func (h *Handlers) Moligize(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body apiv1.MoligizeRequestV1
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("bad_request", "invalid JSON body", http.StatusBadRequest))
		return
	}

	p := design.DefaultParams()
	if body.TargetTm != nil {
		p.TargetTm = *body.TargetTm
	}
	if body.TmTolerance != nil {
		p.Tolerance = *body.TmTolerance
	}
	if body.MinLen != nil {
		p.MinLen = *body.MinLen
	}
	if body.MaxLen != nil {
		p.MaxLen = *body.MaxLen
	}
	p.DesiredLen = body.DesiredLen
	p.P1Len = body.P1Len
	p.P2Len = body.P2Len
	p.SplitIdx = body.SplitIdx

	pair, err := design.Design(body.Sequence, p, h.Tm)
	if err != nil {
		var npe *design.NoPrimerError
		switch {
		case errors.Is(err, seq.ErrEmptySequence):
			httpx.WriteError(ctx, w, httpx.NewError("empty_sequence", "sequence is empty", http.StatusBadRequest))
		case errors.As(err, &npe):
			// 400 rather than 404 so a missing primer cannot be confused
			// with a missing route.
			httpx.WriteError(ctx, w, httpx.NewError("no_primer", err.Error(), http.StatusBadRequest))
		default:
			h.Log.Error("design failed", zap.Error(err))
			httpx.WriteError(ctx, w, httpx.NewError("internal", err.Error(), http.StatusInternalServerError))
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apiv1.MoligizeResponseV1{
		P1:       primerV1(pair.P1),
		P2:       primerV1(pair.P2),
		SplitIdx: pair.SplitIdx,
	})
}

func primerV1(p design.Primer) apiv1.PrimerV1 {
	return apiv1.PrimerV1{
		Seq:   p.Seq,
		Tm:    p.Tm,
		Len:   p.Len,
		GC:    p.GC,
		Start: p.Start,
		End:   p.End,
	}
}
