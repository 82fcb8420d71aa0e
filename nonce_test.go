package ocb3

import (
	"encoding/hex"
	"testing"
)

// TestNonceBlock checks the byte-level construction against a vector traced
// by hand from RFC 7253's bit-string definition of Nonce for a 12-byte N
// and tag_len=16 (tag field occupies the top 7 bits of byte 0; the lone "1"
// marker bit lands at byte 15-len(N) because 120-bitlen(N) is a whole
// number of bytes whenever len(N) <= 15 and bitlen(N) is a multiple of 8).
func TestNonceBlock(t *testing.T) {
	nonce, err := hex.DecodeString("BBAA99887766554433221100")
	if err != nil {
		t.Fatal(err)
	}
	got := nonceBlock(nonce, 16)
	want, err := hex.DecodeString("00000001bbaa99887766554433221100")
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(got[:]) != hex.EncodeToString(want) {
		t.Errorf("nonceBlock = %x, want %x", got, want)
	}
}

func TestNonceBlockTagLenField(t *testing.T) {
	nonce, err := hex.DecodeString("BBAA9988776655443322110D")
	if err != nil {
		t.Fatal(err)
	}
	got := nonceBlock(nonce, 12)
	// tag_len=12 bytes -> 96 bits -> 96 mod 128 = 96 = 0x60, shifted left
	// by one bit in the top byte gives 0xC0.
	if got[0] != 0xC0 {
		t.Errorf("nonceBlock byte 0 = %02x, want c0", got[0])
	}
}

func TestExtractShiftedNoShift(t *testing.T) {
	var stretch [24]byte
	for i := range stretch {
		stretch[i] = byte(i + 1)
	}
	got := extractShifted(&stretch, 0)
	for i := 0; i < BlockSize; i++ {
		if got[i] != stretch[i] {
			t.Fatalf("bottom=0 should copy verbatim, byte %d: got %02x want %02x", i, got[i], stretch[i])
		}
	}
}

func TestExtractShiftedFullByte(t *testing.T) {
	var stretch [24]byte
	for i := range stretch {
		stretch[i] = byte(i + 1)
	}
	got := extractShifted(&stretch, 8) // bottom=8 -> whole-byte shift
	for i := 0; i < BlockSize; i++ {
		if got[i] != stretch[i+1] {
			t.Fatalf("bottom=8 byte %d: got %02x want %02x", i, got[i], stretch[i+1])
		}
	}
}
