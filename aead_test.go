package ocb3

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/pschlump/ocb3/internal/testvectors"
)

// TestAEADSealOpenMatchesVectors exercises the one-shot cipher.AEAD wrapper
// against the same fixtures as TestRFC7253Vectors, the way aesccm tests
// both its streaming and Seal/Open-shaped surfaces against the same table.
func TestAEADSealOpenMatchesVectors(t *testing.T) {
	vecs, err := testvectors.Load("testdata/rfc7253.json")
	if err != nil {
		t.Fatalf("loading vectors: %v", err)
	}

	for _, v := range vecs {
		blk, err := aes.NewCipher(v.Key)
		if err != nil {
			t.Fatalf("%s: aes.NewCipher: %v", v.Name, err)
		}
		a, err := New(blk, v.TagLen)
		if err != nil {
			t.Fatalf("%s: New: %v", v.Name, err)
		}

		sealed := a.Seal(nil, v.Nonce, v.Plaintext, v.AssocData)
		wantSealed := append(append([]byte{}, v.Ciphertext...), v.Tag...)
		if !bytes.Equal(sealed, wantSealed) {
			t.Errorf("%s: Seal = %x, want %x", v.Name, sealed, wantSealed)
		}

		blk2, _ := aes.NewCipher(v.Key)
		a2, _ := New(blk2, v.TagLen)
		opened, err := a2.Open(nil, v.Nonce, sealed, v.AssocData)
		if err != nil {
			t.Fatalf("%s: Open: %v", v.Name, err)
		}
		if !bytes.Equal(opened, v.Plaintext) {
			t.Errorf("%s: Open = %x, want %x", v.Name, opened, []byte(v.Plaintext))
		}
	}
}

func TestAEADOpenRejectsShortCiphertext(t *testing.T) {
	blk, _ := aes.NewCipher(make([]byte, 16))
	a, err := New(blk, 16)
	if err != nil {
		t.Fatal(err)
	}
	nonce := make([]byte, 12)
	if _, err := a.Open(nil, nonce, []byte("short"), nil); err == nil {
		t.Fatal("Open accepted a ciphertext shorter than the tag")
	}
}

func TestAEADRejectsBadTagLen(t *testing.T) {
	blk, _ := aes.NewCipher(make([]byte, 16))
	if _, err := New(blk, 4); err != ErrInvalidTagLength {
		t.Fatalf("New with tagLen=4: got %v, want ErrInvalidTagLength", err)
	}
	if _, err := New(blk, 17); err != ErrInvalidTagLength {
		t.Fatalf("New with tagLen=17: got %v, want ErrInvalidTagLength", err)
	}
}

func TestAEADNonceSizeAndOverhead(t *testing.T) {
	blk, _ := aes.NewCipher(make([]byte, 16))
	a, err := New(blk, 12)
	if err != nil {
		t.Fatal(err)
	}
	if a.NonceSize() != 15 {
		t.Errorf("NonceSize() = %d, want 15", a.NonceSize())
	}
	if a.Overhead() != 12 {
		t.Errorf("Overhead() = %d, want 12", a.Overhead())
	}
}
