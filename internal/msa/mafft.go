// internal/msa/mafft.go
// Runs MAFFT over a temporary FASTA file and captures the aligned output.
package msa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"moligo-core/fasta"
)

// ErrMafftNotFound reports a missing mafft executable.
var ErrMafftNotFound = errors.New("msa: mafft executable not found; ensure it is installed and in PATH")

// Aligner shells out to an external MAFFT binary.
type Aligner struct {
	Binary string
	Log    *zap.Logger
}

// New returns an Aligner using "mafft" from PATH.
func New(log *zap.Logger) *Aligner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aligner{Binary: "mafft", Log: log}
}

// Align writes recs to a temp FASTA file, runs `mafft --auto --quiet` on
// it, and returns the aligned FASTA text. An empty input aligns to "".
func (a *Aligner) Align(ctx context.Context, recs []fasta.Record) (string, error) {
	if len(recs) == 0 {
		return "", nil
	}

	in, err := os.CreateTemp("", "moligo-msa-*.fasta")
	if err != nil {
		return "", fmt.Errorf("msa: %w", err)
	}
	defer func() { _ = os.Remove(in.Name()) }()

	if err := fasta.Write(in, recs); err != nil {
		_ = in.Close()
		return "", fmt.Errorf("msa: %w", err)
	}
	if err := in.Close(); err != nil {
		return "", fmt.Errorf("msa: %w", err)
	}

	// MAFFT scratch space goes under our own TMPDIR to avoid permission
	// surprises on shared hosts.
	tmpDir := filepath.Join(os.TempDir(), "moligo-mafft")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("msa: %w", err)
	}

	cmd := exec.CommandContext(ctx, a.Binary, "--auto", "--quiet", in.Name())
	cmd.Env = append(os.Environ(), "TMPDIR="+tmpDir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.Log.Debug("running mafft", zap.String("binary", a.Binary), zap.Int("sequences", len(recs)))
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return "", ErrMafftNotFound
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("msa: mafft alignment failed: %s", msg)
	}
	return stdout.String(), nil
}
