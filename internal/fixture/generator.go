// Package fixture materializes test input files for an external
// fixed-length-record sorting program.
//
// A fixture file is N records in the format defined by internal/record,
// written in index order under a selected key distribution. Payload bytes
// are always uniform-random regardless of distribution, so only the keys
// carry structure.
package fixture

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/hawaka-joe/recfix/internal/record"
)

// Summary reports what a generation run produced.
type Summary struct {
	Path    string `json:"path,omitempty"`
	Records int64  `json:"records"`
	Bytes   int64  `json:"bytes"`
}

// Generator produces fixture files. It owns an explicit random source so
// tests can inject a seeded one and get byte-for-byte deterministic output;
// there is no ambient global randomness.
//
// A Generator is not safe for concurrent use; rand.Rand is stateful.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator backed by the given random source.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeeded creates a Generator with a fixed seed. Output is fully
// deterministic for a given (seed, count, distribution) triple.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// NewEntropy creates a Generator seeded from the wall clock, for callers
// that want fresh fixtures on every run.
func NewEntropy() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// Generate writes n records to path and returns a summary. Any existing
// file at path is truncated first. On error the file may be left partially
// written; fixtures are disposable and regeneration always starts over, so
// there is no atomic write-then-rename.
func (g *Generator) Generate(path string, n int64, dist Distribution) (Summary, error) {
	f, err := os.Create(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create fixture file: %w", err)
	}

	summary, err := g.WriteTo(f, n, dist)
	if err != nil {
		f.Close()
		return Summary{}, err
	}
	if err := f.Close(); err != nil {
		return Summary{}, fmt.Errorf("failed to close fixture file: %w", err)
	}

	summary.Path = path
	return summary, nil
}

// WriteTo streams n records to w in index order. n = 0 writes nothing and
// succeeds: an empty file is a valid fixture.
func (g *Generator) WriteTo(w io.Writer, n int64, dist Distribution) (Summary, error) {
	if n < 0 {
		return Summary{}, fmt.Errorf("record count must be >= 0, got %d", n)
	}

	bw := bufio.NewWriter(w)
	payload := make([]byte, record.PayloadSize)

	for i := int64(0); i < n; i++ {
		// rand.Rand.Read never returns an error.
		g.rng.Read(payload)

		buf, err := record.Encode(g.key(i, n, dist), payload)
		if err != nil {
			return Summary{}, err
		}
		if _, err := bw.Write(buf); err != nil {
			return Summary{}, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return Summary{}, fmt.Errorf("failed to flush fixture: %w", err)
	}

	return Summary{Records: n, Bytes: n * record.Size}, nil
}

// key computes the i-th record's key under the distribution.
func (g *Generator) key(i, n int64, dist Distribution) uint32 {
	switch dist {
	case Ascending:
		return uint32(i)
	case Descending:
		return uint32(n - 1 - i)
	default:
		return g.rng.Uint32()
	}
}
