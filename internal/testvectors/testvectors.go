// Package testvectors loads OCB3 known-answer test vectors from a JSON
// fixture file, the way pschlump/AesCCM's sjcl package loads SJCL blobs -
// same shape (Base64Data fields + pschlump/json), re-pointed at RFC 7253
// vectors instead of SJCL's CCM-over-PBKDF2 format (see SPEC_FULL.md).
package testvectors

import (
	"fmt"
	"os"

	"github.com/pschlump/json"

	"github.com/pschlump/ocb3/base64data"
)

// Vector is one RFC 7253 (or RFC-7253-shaped) known-answer test case.
type Vector struct {
	Name       string                `json:"name"`
	Key        base64data.Base64Data `json:"key"`
	Nonce      base64data.Base64Data `json:"nonce"`
	TagLen     int                   `json:"tag_len"`
	AssocData  base64data.Base64Data `json:"adata"`
	Plaintext  base64data.Base64Data `json:"plaintext"`
	Ciphertext base64data.Base64Data `json:"ciphertext"`
	Tag        base64data.Base64Data `json:"tag"`
}

// Load reads a JSON array of Vector from fn. Mirrors ReadSJCL's validation
// style (fail fast with a descriptive error) but returns the error instead
// of calling log.Fatal, since this is a library helper used from tests.
func Load(fn string) ([]Vector, error) {
	file, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("testvectors: reading %s: %w", fn, err)
	}

	var vecs []Vector
	if err := json.Unmarshal(file, &vecs); err != nil {
		return nil, fmt.Errorf("testvectors: decoding %s: %w", fn, err)
	}

	for i := range vecs {
		if vecs[i].TagLen == 0 {
			vecs[i].TagLen = 16
		}
	}
	return vecs, nil
}
