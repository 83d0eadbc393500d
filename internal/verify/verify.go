// Package verify is the test oracle for the external sorting program: it
// checks that a fixture-format file holds records in non-decreasing key
// order, independently of whatever the sorter did to produce it.
package verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hawaka-joe/recfix/internal/record"
)

// Result is the verdict of a verification pass.
//
// On a pass, Records is the total number of complete records scanned. On a
// fail, Index/Key/PrevKey describe the first out-of-order pair and Records
// counts the records examined up to and including the offender; nothing
// past the first violation is read.
type Result struct {
	Sorted  bool   `json:"sorted"`
	Records int64  `json:"records"`
	Index   int64  `json:"index,omitempty"`
	Key     uint32 `json:"key,omitempty"`
	PrevKey uint32 `json:"prev_key,omitempty"`
}

// Check opens path and verifies its record order. An unreadable path is an
// error; an unsorted file is a verdict, not an error.
func Check(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return CheckReader(f)
}

// CheckReader verifies record order in a single sequential pass.
//
// Equal adjacent keys are accepted: the check is non-decreasing, not
// strictly increasing, so duplicate keys never fail. A trailing fragment
// shorter than one record is silently discarded; files written by the
// generator are always whole, and a sorter that emits trailing garbage is
// judged on its complete records only. An empty input is trivially sorted.
func CheckReader(r io.Reader) (Result, error) {
	br := bufio.NewReader(r)
	buf := make([]byte, record.Size)

	var (
		prev    uint32
		hasPrev bool
		count   int64
	)

	for {
		_, err := io.ReadFull(br, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// EOF is a clean end; ErrUnexpectedEOF is a partial
			// trailing record, discarded by policy.
			return Result{Sorted: true, Records: count}, nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to read record %d: %w", count, err)
		}

		key, err := record.Key(buf)
		if err != nil {
			return Result{}, err
		}

		if hasPrev && key < prev {
			return Result{
				Sorted:  false,
				Records: count + 1,
				Index:   count,
				Key:     key,
				PrevKey: prev,
			}, nil
		}

		prev = key
		hasPrev = true
		count++
	}
}
