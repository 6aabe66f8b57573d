// internal/app/app_test.go
package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiv1 "moligo/pkg/api"
)

// A wide tolerance makes any candidate acceptable, so the run succeeds
// regardless of the thermodynamic model's exact output.
func TestRunJSONOutput(t *testing.T) {
	var out, errBuf bytes.Buffer
	seq := strings.Repeat("ACGTTGCA", 8)
	code := Run([]string{"--seq", seq, "--tolerance", "100", "--output", "json"}, &out, &errBuf)
	require.Equal(t, 0, code, errBuf.String())

	var resp apiv1.MoligizeResponseV1
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 32, resp.SplitIdx)
	assert.Equal(t, resp.P1.End, resp.SplitIdx)
	assert.Equal(t, resp.P2.Start, resp.SplitIdx)
	assert.Equal(t, len(resp.P1.Seq), resp.P1.Len)
}

func TestRunTextOutput(t *testing.T) {
	var out, errBuf bytes.Buffer
	seq := strings.Repeat("ACGTTGCA", 8)
	code := Run([]string{"--seq", seq, "--tolerance", "100"}, &out, &errBuf)
	require.Equal(t, 0, code, errBuf.String())
	assert.Contains(t, out.String(), "split_idx\t32")
	assert.Contains(t, out.String(), "P1\t")
	assert.Contains(t, out.String(), "P2\t")
}

func TestRunFastaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.fa")
	require.NoError(t, os.WriteFile(path, []byte(">t\n"+strings.Repeat("ACGTTGCA", 8)+"\n"), 0o644))

	var out, errBuf bytes.Buffer
	code := Run([]string{"--fasta", path, "--tolerance", "100", "--output", "json"}, &out, &errBuf)
	require.Equal(t, 0, code, errBuf.String())
}

func TestRunNoPrimerExitCode(t *testing.T) {
	var out, errBuf bytes.Buffer
	// Impossible band: tolerance 0 around an unreachable target.
	code := Run([]string{"--seq", strings.Repeat("ACGT", 16), "--target-tm", "500", "--tolerance", "0"}, &out, &errBuf)
	assert.Equal(t, 1, code)
	assert.Contains(t, errBuf.String(), "P1")
}

func TestRunUsageError(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run([]string{"--output", "bogus"}, &out, &errBuf)
	assert.Equal(t, 2, code)
}

func TestRunMissingFile(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run([]string{"--fasta", filepath.Join(t.TempDir(), "missing.fa")}, &out, &errBuf)
	assert.Equal(t, 3, code)
}

func TestRunVersion(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := Run([]string{"--version"}, &out, &errBuf)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "moligo version")
}
