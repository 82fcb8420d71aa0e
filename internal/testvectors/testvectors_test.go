package testvectors

import (
	"bytes"
	"testing"
)

func TestLoadRFC7253Fixture(t *testing.T) {
	vecs, err := Load("../../testdata/rfc7253.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(vecs) == 0 {
		t.Fatal("expected at least one vector")
	}

	for _, v := range vecs {
		if v.Name == "" {
			t.Error("vector missing name")
		}
		if len(v.Key) == 0 {
			t.Errorf("%s: empty key", v.Name)
		}
		if len(v.Nonce) < 1 || len(v.Nonce) > 15 {
			t.Errorf("%s: nonce length %d out of range", v.Name, len(v.Nonce))
		}
		if v.TagLen < 8 || v.TagLen > 16 {
			t.Errorf("%s: tag_len %d out of range", v.Name, v.TagLen)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.json"); err == nil {
		t.Fatal("expected an error loading a nonexistent fixture file")
	}
}

func TestBase64DataMarshalRoundTrip(t *testing.T) {
	var v Vector
	raw := []byte{0xde, 0xad, 0xbe, 0xef}
	v.Key.CopyIn(raw)

	text, err := v.Key.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var back Vector
	if err := back.Key.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Key, raw) {
		t.Errorf("round trip = %x, want %x", []byte(back.Key), raw)
	}
}
