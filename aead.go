package ocb3

import "crypto/cipher"

// ocbAEAD adapts the streaming Session to the standard library's
// cipher.AEAD interface for callers who don't need incremental framing -
// grounded on aesccm.CCMType's Seal/Open (which does the same thing for
// CCM) and on the eaxCipher shape in the EAX reference implementation.
type ocbAEAD struct {
	blk    cipher.Block
	tagLen int
}

// New wraps blk (a 128-bit block cipher under a fixed key) as a one-shot
// OCB3 cipher.AEAD with the given tag length. The nonce length is not fixed
// here: Seal and Open accept any 1..15 byte nonce. Errors:
// ErrInvalidTagLength, ErrUnsupportedBlockSize.
func New(blk cipher.Block, tagLen int) (cipher.AEAD, error) {
	if err := checkBlockCipher(blk); err != nil {
		return nil, err
	}
	if tagLen < MinTagLen || tagLen > MaxTagLen {
		return nil, ErrInvalidTagLength
	}
	return &ocbAEAD{blk: blk, tagLen: tagLen}, nil
}

// NonceSize reports the maximum OCB3 nonce length this wrapper accepts.
// RFC 7253 nonces may be 1..15 bytes; Seal/Open accept any length in that
// range, but cipher.AEAD callers that size their nonce buffer off
// NonceSize() get the largest permitted size.
func (a *ocbAEAD) NonceSize() int { return 15 }

// Overhead reports the tag length in bytes appended to every ciphertext.
func (a *ocbAEAD) Overhead() int { return a.tagLen }

// Seal encrypts and authenticates plaintext, authenticates additionalData,
// and appends ciphertext||tag to dst. Panics on an invalid nonce length or
// a closed/misused Session, matching the cipher.AEAD contract that Seal
// cannot fail for well-formed arguments.
func (a *ocbAEAD) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	s, err := Open(a.blk, nonce, a.tagLen)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	if len(additionalData) > 0 {
		if err := s.Absorb(additionalData); err != nil {
			panic(err)
		}
	}
	ciphertext, tag, err := s.EncryptAndDigest(plaintext)
	if err != nil {
		panic(err)
	}

	ret, out := sliceForAppend(dst, len(ciphertext)+len(tag))
	n := copy(out, ciphertext)
	copy(out[n:], tag)
	return ret
}

// Open decrypts and authenticates ciphertext, authenticates
// additionalData, and on success appends plaintext to dst.
func (a *ocbAEAD) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < a.tagLen {
		return nil, ErrMacMismatch
	}
	ct := ciphertext[:len(ciphertext)-a.tagLen]
	tag := ciphertext[len(ciphertext)-a.tagLen:]

	s, err := Open(a.blk, nonce, a.tagLen)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if len(additionalData) > 0 {
		if err := s.Absorb(additionalData); err != nil {
			return nil, err
		}
	}
	plaintext, err := s.DecryptAndVerify(ct, tag)
	if err != nil {
		return nil, err
	}

	ret, out := sliceForAppend(dst, len(plaintext))
	copy(out, plaintext)
	return ret, nil
}

// sliceForAppend takes a slice and a requested number of bytes. It returns
// a slice with the contents of the given slice followed by that many bytes
// and a second slice that aliases into it and contains only the extra
// bytes. If the original slice has sufficient capacity then no allocation
// is performed.
//
// Carried over verbatim from aesccm.sliceForAppend (itself taken from
// crypto/cipher/gcm.go).
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
