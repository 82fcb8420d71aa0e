// Package base64data provides a byte-slice type that marshals to/from JSON
// as Base64 text, used by internal/testvectors to load OCB3 test fixtures
// (key, nonce, associated data, plaintext, ciphertext, tag) from JSON files
// without base64-decoding every field by hand.
//
// Adapted from the SJCL-blob-loading Base64Data type in pschlump/AesCCM;
// the JS-console-array emulation that package carried (Int32Array,
// Uint32Array, Int64Array) has no OCB3 use and was dropped - see
// DESIGN.md.
package base64data

import (
	"encoding/base64"
	"fmt"

	tr "github.com/pschlump/godebug"
)

// Base64Data extends the JSON marshal/unmarshal interface to support Base64 data.
type Base64Data []byte

// MarshalText implements encoding.TextMarshaller - convert to Base64 on output.
func (b Base64Data) MarshalText() ([]byte, error) {
	text := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(text, b)
	return text, nil
}

// UnmarshalText implements encoding.TextUnmarshaller - convert from Base64 to byte.
func (b *Base64Data) UnmarshalText(text []byte) error {
	if n := base64.StdEncoding.DecodedLen(len(text)); cap(*b) < n {
		*b = make([]byte, n)
	}
	n, err := base64.StdEncoding.Decode(*b, text)
	*b = (*b)[:n]
	return err
}

// ConvToString renders b as the Base64 text JSON would emit for it.
func (b Base64Data) ConvToString() string {
	text := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(text, b)
	return string(text)
}

// CopyIn copies raw (non-Base64) bytes into b, growing it if needed.
func (b *Base64Data) CopyIn(raw []byte) {
	if cap(*b) < len(raw) {
		*b = make([]byte, len(raw))
	}
	*b = (*b)[:len(raw)]
	copy(*b, raw)
}

// IsEmpty reports whether b is zero-length or all-zero bytes.
func (b Base64Data) IsEmpty() bool {
	if len(b) == 0 {
		return true
	}
	for _, ww := range b {
		if ww != 0 {
			return false
		}
	}
	return true
}

// Debug prints a one-line hex dump of b when db is true, tagged with the
// caller's source location - same idiom as aesccm's godebug.Printf(db, ...)
// calls, applied to fixture-loading diagnostics instead of CCM internals.
func (b Base64Data) Debug(db bool, name string) {
	if db {
		fmt.Printf("%s: len=%d, 0x%x, %s\n", name, len(b), []byte(b), tr.LF(2))
	}
}
