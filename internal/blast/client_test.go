// internal/blast/client_test.go
package blast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const resultXML = `<?xml version="1.0"?>
<BlastOutput>
  <BlastOutput_query-len>100</BlastOutput_query-len>
  <BlastOutput_iterations>
    <Iteration>
      <Iteration_hits>
        <Hit>
          <Hit_accession>NM_0001</Hit_accession>
          <Hit_def>Homo sapiens example mRNA</Hit_def>
          <Hit_hsps>
            <Hsp>
              <Hsp_identity>90</Hsp_identity>
              <Hsp_align-len>100</Hsp_align-len>
              <Hsp_evalue>1e-30</Hsp_evalue>
              <Hsp_hseq>ACGT-ACGT</Hsp_hseq>
            </Hsp>
          </Hit_hsps>
        </Hit>
        <Hit>
          <Hit_accession>NM_0002</Hit_accession>
          <Hit_def>Mus musculus example</Hit_def>
          <Hit_hsps>
            <Hsp>
              <Hsp_identity>50</Hsp_identity>
              <Hsp_align-len>100</Hsp_align-len>
              <Hsp_evalue>0.5</Hsp_evalue>
              <Hsp_hseq>TTTTTTTT</Hsp_hseq>
            </Hsp>
          </Hit_hsps>
        </Hit>
      </Iteration_hits>
    </Iteration>
  </BlastOutput_iterations>
</BlastOutput>`

// stub mimics Blast.cgi: Put returns an RID, SearchInfo polls walk a
// scripted status list, the XML fetch returns resultXML.
type stub struct {
	statuses []string
	polls    atomic.Int32
	lastPut  map[string]string
}

func (s *stub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		switch {
		case r.FormValue("CMD") == "Put":
			s.lastPut = map[string]string{}
			for k := range r.Form {
				s.lastPut[k] = r.FormValue(k)
			}
			_, _ = w.Write([]byte("    RID = TESTRID42\n    RTOE = 1\n"))
		case r.FormValue("FORMAT_OBJECT") == "SearchInfo":
			i := int(s.polls.Add(1)) - 1
			if i >= len(s.statuses) {
				i = len(s.statuses) - 1
			}
			_, _ = w.Write([]byte("Status=" + s.statuses[i] + "\n"))
		default:
			_, _ = w.Write([]byte(resultXML))
		}
	}
}

func testClient(t *testing.T, s *stub) *Client {
	t.Helper()
	srv := httptest.NewServer(s.handler())
	t.Cleanup(srv.Close)

	c := NewClient(zap.NewNop())
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	c.PollInterval = 0
	c.InitialWaitCap = 0
	c.MaxPolls = 5
	return c
}

func TestSearchSuccess(t *testing.T) {
	s := &stub{statuses: []string{"WAITING", "READY"}}
	c := testClient(t, s)

	hits, meta, err := c.Search(context.Background(), "acgt acgt\nACGT", Options{MaxHits: 10})
	require.NoError(t, err)

	assert.Equal(t, "TESTRID42", meta.RID)
	assert.Equal(t, 1, meta.RTOE)
	assert.Equal(t, 100, meta.QueryLen)

	require.Len(t, hits, 2)
	assert.Equal(t, "NM_0001", hits[0].Accession)
	assert.Equal(t, 90.0, hits[0].Identity)
	assert.Equal(t, 100.0, hits[0].QueryCover)
	assert.Equal(t, "ACGTACGT", hits[0].Sequence, "gaps stripped from subject")
	assert.Equal(t, 1e-30, hits[0].EValue)

	// Submission form carried the cleaned, uppercased query.
	assert.Equal(t, "ACGTACGTACGT", s.lastPut["QUERY"])
	assert.Equal(t, "blastn", s.lastPut["PROGRAM"])
	assert.Equal(t, "nt", s.lastPut["DATABASE"])
	assert.Equal(t, "10", s.lastPut["HITLIST_SIZE"])
}

func TestSearchFastaQueryAndFilters(t *testing.T) {
	s := &stub{statuses: []string{"READY"}}
	c := testClient(t, s)

	ev := 0.001
	ident := 80.0
	hits, _, err := c.Search(context.Background(), ">myquery\nacgt\nACGT\n", Options{
		APIKey:       "secret",
		Organism:     "txid9606",
		EValue:       &ev,
		PercIdentity: &ident,
	})
	require.NoError(t, err)

	assert.Equal(t, "ACGTACGT", s.lastPut["QUERY"], "header dropped, joined, uppercased")
	assert.Equal(t, "secret", s.lastPut["API_KEY"])
	assert.Equal(t, "txid9606[ORGN]", s.lastPut["ENTREZ_QUERY"])
	assert.Equal(t, "0.001", s.lastPut["EXPECT"])

	// Identity post-filter drops the 50% hit.
	require.Len(t, hits, 1)
	assert.Equal(t, "NM_0001", hits[0].Accession)
}

func TestSearchEmptyQuery(t *testing.T) {
	c := NewClient(nil)
	_, _, err := c.Search(context.Background(), "  \n ", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sequence data")
}

func TestSearchRemoteFailure(t *testing.T) {
	s := &stub{statuses: []string{"WAITING", "FAILED"}}
	c := testClient(t, s)

	_, _, err := c.Search(context.Background(), "ACGTACGT", Options{})
	assert.ErrorIs(t, err, ErrRemoteFailed)
}

func TestSearchPollTimeout(t *testing.T) {
	s := &stub{statuses: []string{"WAITING"}}
	c := testClient(t, s)
	c.MaxPolls = 2

	_, _, err := c.Search(context.Background(), "ACGTACGT", Options{})
	assert.ErrorIs(t, err, ErrTimedOut)
	assert.Equal(t, int32(2), s.polls.Load())
}

func TestSearchNoRID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("no rid here"))
	}))
	defer srv.Close()

	c := NewClient(zap.NewNop())
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()

	_, _, err := c.Search(context.Background(), "ACGT", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no RID")
}

func TestSearchContextCancelled(t *testing.T) {
	s := &stub{statuses: []string{"WAITING"}}
	c := testClient(t, s)
	c.PollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := c.Search(ctx, "ACGTACGT", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseXMLMalformed(t *testing.T) {
	_, _, err := parseXML("<not-xml")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse"))
}
