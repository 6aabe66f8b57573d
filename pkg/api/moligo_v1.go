// pkg/api/moligo_v1.go
// Stable JSON schemas for the primer-design endpoint and CLI output.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
package api

// MoligizeRequestV1 is the request body for POST /moligize. Optional
// fields are pointers so an absent field and an explicit zero differ.
type MoligizeRequestV1 struct {
	Sequence    string   `json:"sequence"`
	TargetTm    *float64 `json:"target_tm,omitempty"`
	TmTolerance *float64 `json:"tm_tolerance,omitempty"`
	MinLen      *int     `json:"min_len,omitempty"`
	MaxLen      *int     `json:"max_len,omitempty"`
	DesiredLen  *int     `json:"desired_len,omitempty"`
	P1Len       *int     `json:"p1_len,omitempty"`
	P2Len       *int     `json:"p2_len,omitempty"`
	SplitIdx    *int     `json:"split_idx,omitempty"` // 0-based, relative to the normalized sequence
}

// PrimerV1 is one designed primer. Start/End are 0-based half-open
// coordinates on the normalized input sequence.
type PrimerV1 struct {
	Seq   string  `json:"seq"`
	Tm    float64 `json:"tm"`
	Len   int     `json:"len"`
	GC    float64 `json:"gc"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// MoligizeResponseV1 is the successful design payload.
type MoligizeResponseV1 struct {
	P1       PrimerV1 `json:"p1"`
	P2       PrimerV1 `json:"p2"`
	SplitIdx int      `json:"split_idx"`
}
