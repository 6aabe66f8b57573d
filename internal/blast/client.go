// internal/blast/client.go
// Client for the NCBI BLAST URL API (Blast.cgi). The protocol is a simple
// submit → poll-until-ready → fetch cycle over form-encoded requests.
package blast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"moligo-core/fasta"
)

// DefaultBaseURL is the public NCBI endpoint.
const DefaultBaseURL = "https://blast.ncbi.nlm.nih.gov/blast/Blast.cgi"

var (
	// ErrRemoteFailed reports Status=FAILED from NCBI.
	ErrRemoteFailed = errors.New("blast: search failed on the remote service")
	// ErrTimedOut reports poll-budget exhaustion before Status=READY.
	ErrTimedOut = errors.New("blast: timed out waiting for results")
)

// Options tune a single search.
type Options struct {
	MaxHits      int      // HITLIST_SIZE; 0 means 50
	APIKey       string   // optional NCBI API key
	Organism     string   // becomes ENTREZ_QUERY "<organism>[ORGN]"
	EValue       *float64 // EXPECT threshold
	PercIdentity *float64 // post-filter, 0..100
}

// Hit is one remote hit with the aligned subject sequence (gaps removed).
type Hit struct {
	Accession   string
	Description string
	EValue      float64
	Identity    float64
	QueryCover  float64
	Sequence    string
}

// Meta carries remote job metadata.
type Meta struct {
	RID      string
	RTOE     int
	QueryLen int
}

// Client drives the submit→poll→fetch cycle. Zero values of the knobs are
// replaced by production defaults in NewClient; tests shrink the waits.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	Log            *zap.Logger
	PollInterval   time.Duration
	MaxPolls       int
	InitialWaitCap time.Duration
}

// NewClient returns a Client with production defaults.
func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:        DefaultBaseURL,
		HTTPClient:     &http.Client{Timeout: 60 * time.Second},
		Log:            log,
		PollInterval:   3 * time.Second,
		MaxPolls:       30,
		InitialWaitCap: 15 * time.Second,
	}
}

// Search runs a blastn query against the nt database and returns ranked
// hits plus job metadata. The query may be raw sequence or FASTA. All
// waits respect ctx.
func (c *Client) Search(ctx context.Context, query string, opt Options) ([]Hit, Meta, error) {
	cleaned := cleanQuery(query)
	if cleaned == "" {
		return nil, Meta{}, errors.New("blast: no sequence data found in input")
	}
	if opt.MaxHits <= 0 {
		opt.MaxHits = 50
	}

	meta, err := c.submit(ctx, cleaned, opt)
	if err != nil {
		return nil, Meta{}, err
	}
	if err := c.waitReady(ctx, meta); err != nil {
		return nil, meta, err
	}

	hits, queryLen, err := c.fetch(ctx, meta.RID)
	if err != nil {
		return nil, meta, err
	}
	meta.QueryLen = queryLen

	if opt.PercIdentity != nil {
		kept := hits[:0]
		for _, h := range hits {
			if h.Identity >= *opt.PercIdentity {
				kept = append(kept, h)
			}
		}
		hits = kept
	}
	c.Log.Info("blast search complete",
		zap.String("rid", meta.RID),
		zap.Int("hits", len(hits)))
	return hits, meta, nil
}

func (c *Client) submit(ctx context.Context, seq string, opt Options) (Meta, error) {
	form := url.Values{
		"CMD":          {"Put"},
		"PROGRAM":      {"blastn"},
		"DATABASE":     {"nt"},
		"QUERY":        {seq},
		"HITLIST_SIZE": {strconv.Itoa(opt.MaxHits)},
		"FORMAT_TYPE":  {"XML"},
	}
	if opt.APIKey != "" {
		form.Set("API_KEY", opt.APIKey)
	}
	if opt.Organism != "" {
		form.Set("ENTREZ_QUERY", opt.Organism+"[ORGN]")
	}
	if opt.EValue != nil {
		form.Set("EXPECT", strconv.FormatFloat(*opt.EValue, 'g', -1, 64))
	}

	c.Log.Info("submitting blast query", zap.Int("query_len", len(seq)))
	body, err := c.post(ctx, form)
	if err != nil {
		return Meta{}, err
	}

	meta := Meta{RTOE: 10}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "RID ="); ok {
			meta.RID = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "RTOE ="); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				meta.RTOE = n
			}
		}
	}
	if meta.RID == "" {
		return Meta{}, errors.New("blast: failed to submit job: no RID returned")
	}
	c.Log.Info("blast job submitted", zap.String("rid", meta.RID), zap.Int("rtoe", meta.RTOE))
	return meta, nil
}

func (c *Client) waitReady(ctx context.Context, meta Meta) error {
	// Honor the remote's own estimate first, capped so a wild RTOE cannot
	// stall the request.
	initial := time.Duration(meta.RTOE) * time.Second
	if initial > c.InitialWaitCap {
		initial = c.InitialWaitCap
	}
	if err := sleepCtx(ctx, initial); err != nil {
		return err
	}

	for poll := 0; poll < c.MaxPolls; poll++ {
		body, err := c.get(ctx, url.Values{
			"CMD":           {"Get"},
			"FORMAT_OBJECT": {"SearchInfo"},
			"RID":           {meta.RID},
		})
		if err != nil {
			return err
		}
		switch {
		case strings.Contains(body, "Status=FAILED"):
			return ErrRemoteFailed
		case strings.Contains(body, "Status=READY"):
			c.Log.Debug("blast results ready", zap.String("rid", meta.RID), zap.Int("polls", poll))
			return nil
		default:
			c.Log.Debug("blast still waiting", zap.String("rid", meta.RID), zap.Int("poll", poll+1))
			if err := sleepCtx(ctx, c.PollInterval); err != nil {
				return err
			}
		}
	}
	return ErrTimedOut
}

func (c *Client) fetch(ctx context.Context, rid string) ([]Hit, int, error) {
	body, err := c.get(ctx, url.Values{
		"CMD":         {"Get"},
		"FORMAT_TYPE": {"XML"},
		"RID":         {rid},
	})
	if err != nil {
		return nil, 0, err
	}
	return parseXML(body)
}

func (c *Client) post(ctx context.Context, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, params url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (string, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("blast: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("blast: remote returned HTTP %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("blast: %w", err)
	}
	return string(b), nil
}

// cleanQuery strips an optional FASTA header and all whitespace, and
// uppercases the remainder.
func cleanQuery(raw string) string {
	_, s := fasta.SplitQuery(raw)
	return strings.ToUpper(s)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
