// Package record defines the on-disk record format shared by the fixture
// generator and the order verifier.
//
// A record is exactly 100 bytes: a 4-byte big-endian uint32 sort key
// followed by 96 bytes of opaque payload. Fixture files are a flat
// concatenation of records with no header, footer, or separator; record i
// occupies byte offset [100*i, 100*i+100).
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// On-disk layout constants. These are a format contract with the external
// sort program under test and must never change.
const (
	// KeySize is the width of the big-endian uint32 sort key.
	KeySize = 4

	// PayloadSize is the width of the opaque payload following the key.
	PayloadSize = 96

	// Size is the total width of one record.
	Size = KeySize + PayloadSize
)

var (
	// ErrInvalidPayloadSize indicates Encode was given a payload whose
	// length is not exactly PayloadSize bytes.
	ErrInvalidPayloadSize = errors.New("payload must be exactly 96 bytes")

	// ErrInvalidRecordSize indicates Decode was given a buffer whose
	// length is not exactly Size bytes.
	ErrInvalidRecordSize = errors.New("record must be exactly 100 bytes")
)

// Encode serializes a key and payload into a fresh 100-byte buffer.
// The payload is copied verbatim after the big-endian key.
func Encode(key uint32, payload []byte) ([]byte, error) {
	if len(payload) != PayloadSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPayloadSize, len(payload))
	}

	buf := make([]byte, Size)
	binary.BigEndian.PutUint32(buf[:KeySize], key)
	copy(buf[KeySize:], payload)
	return buf, nil
}

// Decode extracts the key and payload from a 100-byte buffer.
// The returned payload aliases buf; callers that retain it past the next
// reuse of buf must copy it.
func Decode(buf []byte) (uint32, []byte, error) {
	if len(buf) != Size {
		return 0, nil, fmt.Errorf("%w: got %d", ErrInvalidRecordSize, len(buf))
	}

	key := binary.BigEndian.Uint32(buf[:KeySize])
	return key, buf[KeySize:], nil
}

// Key reads just the sort key from a record buffer without touching the
// payload. Same size contract as Decode.
func Key(buf []byte) (uint32, error) {
	if len(buf) != Size {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRecordSize, len(buf))
	}
	return binary.BigEndian.Uint32(buf[:KeySize]), nil
}
