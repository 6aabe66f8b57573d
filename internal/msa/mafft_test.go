// internal/msa/mafft_test.go
package msa

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moligo-core/fasta"
)

// fakeMafft installs a stand-in script that echoes its input file.
func fakeMafft(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "mafft-stub")
	script := "#!/bin/sh\ncat \"$3\"\n" // $1=--auto $2=--quiet $3=input
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestAlignRunsBinary(t *testing.T) {
	a := New(nil)
	a.Binary = fakeMafft(t)

	out, err := a.Align(context.Background(), []fasta.Record{
		{ID: "q", Seq: "ac gt"},
		{ID: "h1", Seq: "ACGA"},
	})
	require.NoError(t, err)
	assert.Equal(t, ">q\nACGT\n>h1\nACGA\n", out)
}

func TestAlignEmptyInput(t *testing.T) {
	a := New(nil)
	out, err := a.Align(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAlignMissingBinary(t *testing.T) {
	a := New(nil)
	a.Binary = "definitely-not-mafft-bin"

	_, err := a.Align(context.Background(), []fasta.Record{{ID: "a", Seq: "ACGT"}, {ID: "b", Seq: "ACGT"}})
	assert.ErrorIs(t, err, ErrMafftNotFound)
}

func TestAlignFailedRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell-script stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "mafft-fail")
	script := "#!/bin/sh\necho boom >&2\nexit 1\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	a := New(nil)
	a.Binary = path
	_, err := a.Align(context.Background(), []fasta.Record{{ID: "a", Seq: "ACGT"}, {ID: "b", Seq: "ACGT"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
