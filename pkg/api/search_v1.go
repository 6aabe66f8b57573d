// pkg/api/search_v1.go
package api

// SearchRequestV1 is the request body for POST /search.
type SearchRequestV1 struct {
	Sequence     string   `json:"sequence"`
	MaxHits      int      `json:"max_hits,omitempty"`
	APIKey       string   `json:"api_key,omitempty"`
	Organism     string   `json:"organism,omitempty"` // name or taxid, e.g. "human" or "txid9606"
	EValue       *float64 `json:"e_value,omitempty"`
	PercIdentity *float64 `json:"perc_identity,omitempty"`
}

// BlastHitV1 summarizes one remote hit for the caller.
type BlastHitV1 struct {
	Accession   string  `json:"accession"`
	Description string  `json:"description"`
	EValue      float64 `json:"evalue"`
	Identity    float64 `json:"identity"`
	QueryCover  float64 `json:"query_cover"`
}

// BlastMetaV1 carries remote job metadata.
type BlastMetaV1 struct {
	RID      string `json:"rid"`
	RTOE     int    `json:"rtoe"`
	QueryLen int    `json:"query_len"`
}

// SearchResponseV1 is the combined search-then-align payload.
type SearchResponseV1 struct {
	BlastHits []BlastHitV1 `json:"blast_hits"`
	BlastMeta BlastMetaV1  `json:"blast_meta"`
	Alignment string       `json:"alignment"`
	NumHits   int          `json:"num_hits"`
}

// SequenceV1 is one id/sequence pair for direct alignment.
type SequenceV1 struct {
	ID  string `json:"id"`
	Seq string `json:"seq"`
}

// AlignRequestV1 is the request body for POST /align.
type AlignRequestV1 struct {
	Sequences []SequenceV1 `json:"sequences"`
}

// AlignResponseV1 is the aligned FASTA text.
type AlignResponseV1 struct {
	Alignment string `json:"alignment"`
}
