package ocb3

import "crypto/cipher"

// phase enumerates every state a Session can occupy (RFC 7253's streaming
// engine expressed as an explicit, exhaustively-checked transition table
// rather than a set of callable references - see SPEC_FULL.md design notes).
type phase int

const (
	phaseInit phase = iota
	phaseAD
	phaseEncrypt
	phaseDecrypt
	phaseEncFinal
	phaseDecFinal
	phaseTagReady
	phaseClosed
)

// Session is the per-message OCB3 context: one running offset and
// accumulator per stream (AD, message), a lazily-extended L-tree, and a
// phase enforcing the permitted call sequence of RFC 7253 section 4 /
// the core spec's §4.7.
type Session struct {
	blk    blockCipher
	ltree  ltree
	tagLen int

	offsetAD, offsetMsg     [BlockSize]byte
	sumAD, checksumMsg      [BlockSize]byte
	blockIdxAD, blockIdxMsg uint64
	pendingAD, pendingMsg   []byte

	phase       phase
	encrypting  bool // true once Encrypt* has been called, false once Decrypt* has
	decrypting  bool
	adFinalized bool
	tag         [BlockSize]byte
	haveTag     bool
}

// Open creates a new Session for a single message exchange under blk's key.
// nonce must be 1..15 bytes and must never repeat for this key; tagLen must
// be 8..16 bytes. blk's block size must be 16 bytes (ok from spec §6).
func Open(blk cipher.Block, nonce []byte, tagLen int) (*Session, error) {
	if err := checkBlockCipher(blk); err != nil {
		return nil, err
	}
	if tagLen < MinTagLen || tagLen > MaxTagLen {
		return nil, ErrInvalidTagLength
	}
	if len(nonce) < 1 || len(nonce) > 15 {
		return nil, ErrInvalidNonceLength
	}

	s := &Session{
		blk:        blk,
		ltree:      newLtree(blk),
		tagLen:     tagLen,
		pendingAD:  make([]byte, 0, BlockSize),
		pendingMsg: make([]byte, 0, BlockSize),
		phase:      phaseInit,
	}
	s.offsetMsg = offsetZero(blk, nonce, tagLen)
	return s, nil
}

// invalidSequence closes the session (§7: "on any error, the Session moves
// to CLOSED") and returns ErrInvalidSequence.
func (s *Session) invalidSequence() error {
	s.closeAndWipe()
	return ErrInvalidSequence
}

// closeAndWipe zeroes every secret-bearing buffer and moves to CLOSED. Safe
// to call more than once.
func (s *Session) closeAndWipe() {
	s.phase = phaseClosed
	zero(s.offsetAD[:])
	zero(s.offsetMsg[:])
	zero(s.sumAD[:])
	zero(s.checksumMsg[:])
	zero(s.pendingAD)
	zero(s.pendingMsg)
	zero(s.tag[:])
	s.ltree.wipe()
}

// Close retires the session, zeroing all heap-held secrets - ok from spec
// §5: "all heap-held secrets ... should be zeroed on disposal". Safe to
// call at any point in the lifecycle, including after an error.
func (s *Session) Close() {
	s.closeAndWipe()
}

// feedBlocks tops pending up to a full block and flushes it, then walks
// whole blocks directly out of data (no extra copy), leaving any 1..15
// byte tail in *pending - ok from spec §4.7 buffering rule.
func feedBlocks(pending *[]byte, data []byte, onBlock func(block []byte)) {
	if len(*pending) > 0 {
		need := BlockSize - len(*pending)
		if need > len(data) {
			*pending = append(*pending, data...)
			return
		}
		*pending = append(*pending, data[:need]...)
		onBlock(*pending)
		*pending = (*pending)[:0]
		data = data[need:]
	}
	for len(data) >= BlockSize {
		onBlock(data[:BlockSize])
		data = data[BlockSize:]
	}
	*pending = append(*pending, data...)
}

// absorbBlock folds one full 16-byte AD block into sum_ad (§4.5).
func (s *Session) absorbBlock(block []byte) {
	s.blockIdxAD++
	advanceOffset(&s.offsetAD, &s.ltree, s.blockIdxAD)

	var masked, enc [BlockSize]byte
	copy(masked[:], block)
	xorBlockInto(&masked, &s.offsetAD)
	encryptBlock(s.blk, enc[:], masked[:])
	xorBlockInto(&s.sumAD, &enc)
}

// guardBlockCipher runs fn and converts any panic raised by the
// collaborator cipher.Block (e.g. a buggy implementation given a
// wrong-length slice) into ErrBlockCipherError, closing the session the
// same way any other error does (core spec §7: "BlockCipherError -
// wrapping any failure reported by the collaborator cipher"). The standard
// cipher.Block contract has no error return for Encrypt/Decrypt, so a
// recover at this boundary is the only place such a failure can surface.
func (s *Session) guardBlockCipher(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.closeAndWipe()
			err = ErrBlockCipherError
		}
	}()
	fn()
	return nil
}

// Absorb streams associated data. May be called any number of times while
// the session is in INIT or AD phase.
func (s *Session) Absorb(assocData []byte) error {
	if s.phase != phaseInit && s.phase != phaseAD {
		return s.invalidSequence()
	}
	s.phase = phaseAD
	return s.guardBlockCipher(func() {
		feedBlocks(&s.pendingAD, assocData, s.absorbBlock)
	})
}

// finalizeADOnce folds any buffered AD tail into sum_ad exactly once per
// session, the way §4.5's finalization step is defined (pad, XOR L_star,
// one more block cipher call) - triggered the first time the message
// stream starts or a direct digest/verify happens from INIT.
func (s *Session) finalizeADOnce() {
	if s.adFinalized {
		return
	}
	s.adFinalized = true
	if len(s.pendingAD) == 0 {
		return
	}
	xorBlockInto(&s.offsetAD, s.ltree.LStar())

	var padded, enc [BlockSize]byte
	copy(padded[:], s.pendingAD)
	padded[len(s.pendingAD)] = 0x80
	xorBlockInto(&padded, &s.offsetAD)
	encryptBlock(s.blk, enc[:], padded[:])
	xorBlockInto(&s.sumAD, &enc)
}

// transcodeBlock runs one full-block encrypt or decrypt step (§4.6),
// appending the result to *out.
func (s *Session) transcodeBlock(block []byte, encrypt bool, out *[]byte) {
	s.blockIdxMsg++
	advanceOffset(&s.offsetMsg, &s.ltree, s.blockIdxMsg)

	var in, masked, result [BlockSize]byte
	copy(in[:], block)
	xorBlock(&masked, &in, &s.offsetMsg)

	if encrypt {
		var enc [BlockSize]byte
		encryptBlock(s.blk, enc[:], masked[:])
		xorBlock(&result, &enc, &s.offsetMsg)
		xorBlockInto(&s.checksumMsg, &in)
	} else {
		var dec [BlockSize]byte
		decryptBlock(s.blk, dec[:], masked[:])
		xorBlock(&result, &dec, &s.offsetMsg)
		xorBlockInto(&s.checksumMsg, &result)
	}
	*out = append(*out, result[:]...)
}

// processStream is shared by Encrypt and Decrypt: finalizes AD on first
// use, validates/records the stream direction, and feeds whole blocks.
func (s *Session) processStream(data []byte, encrypt bool) ([]byte, error) {
	if encrypt {
		if s.phase != phaseInit && s.phase != phaseAD && s.phase != phaseEncrypt {
			return nil, s.invalidSequence()
		}
		if s.decrypting {
			return nil, s.invalidSequence()
		}
		s.encrypting = true
		s.phase = phaseEncrypt
	} else {
		if s.phase != phaseInit && s.phase != phaseAD && s.phase != phaseDecrypt {
			return nil, s.invalidSequence()
		}
		if s.encrypting {
			return nil, s.invalidSequence()
		}
		s.decrypting = true
		s.phase = phaseDecrypt
	}

	out := make([]byte, 0, len(data)+BlockSize)
	err := s.guardBlockCipher(func() {
		s.finalizeADOnce()
		feedBlocks(&s.pendingMsg, data, func(block []byte) {
			s.transcodeBlock(block, encrypt, &out)
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Encrypt streams plaintext and returns any whole-block ciphertext produced
// so far. Call EncryptFinal to flush the final 0-15 byte tail.
func (s *Session) Encrypt(plaintext []byte) ([]byte, error) {
	return s.processStream(plaintext, true)
}

// Decrypt streams ciphertext and returns any whole-block plaintext produced
// so far. Call DecryptFinal to flush the final 0-15 byte tail.
func (s *Session) Decrypt(ciphertext []byte) ([]byte, error) {
	return s.processStream(ciphertext, false)
}

// finalizeMessage runs §4.6's final partial-block step if (and only if)
// pendingMsg holds 1..15 buffered bytes; a message that is empty, or an
// exact multiple of the block size, skips it entirely (§4.6 "zero-length
// message case").
func (s *Session) finalizeMessage(encrypt bool) []byte {
	if len(s.pendingMsg) == 0 {
		return nil
	}
	xorBlockInto(&s.offsetMsg, s.ltree.LStar())

	var pad [BlockSize]byte
	encryptBlock(s.blk, pad[:], s.offsetMsg[:])

	n := len(s.pendingMsg)
	tail := make([]byte, n)
	for i := 0; i < n; i++ {
		tail[i] = s.pendingMsg[i] ^ pad[i]
	}

	var padded [BlockSize]byte
	if encrypt {
		copy(padded[:], s.pendingMsg)
	} else {
		copy(padded[:], tail)
	}
	padded[n] = 0x80
	xorBlockInto(&s.checksumMsg, &padded)

	s.pendingMsg = s.pendingMsg[:0]
	return tail
}

// EncryptFinal signals end-of-message (the spec's `encrypt(None)`),
// returning any remaining 0-15 ciphertext bytes.
func (s *Session) EncryptFinal() ([]byte, error) {
	if s.phase != phaseInit && s.phase != phaseAD && s.phase != phaseEncrypt {
		return nil, s.invalidSequence()
	}
	if s.decrypting {
		return nil, s.invalidSequence()
	}
	s.encrypting = true
	var tail []byte
	if err := s.guardBlockCipher(func() {
		s.finalizeADOnce()
		tail = s.finalizeMessage(true)
	}); err != nil {
		return nil, err
	}
	s.phase = phaseEncFinal
	return tail, nil
}

// DecryptFinal signals end-of-message (the spec's `decrypt(None)`),
// returning any remaining 0-15 plaintext bytes.
func (s *Session) DecryptFinal() ([]byte, error) {
	if s.phase != phaseInit && s.phase != phaseAD && s.phase != phaseDecrypt {
		return nil, s.invalidSequence()
	}
	if s.encrypting {
		return nil, s.invalidSequence()
	}
	s.decrypting = true
	var tail []byte
	if err := s.guardBlockCipher(func() {
		s.finalizeADOnce()
		tail = s.finalizeMessage(false)
	}); err != nil {
		return nil, err
	}
	s.phase = phaseDecFinal
	return tail, nil
}

// computeTag runs §4.8's tag construction against the session's current
// (fully finalized) accumulators.
func (s *Session) computeTag() [BlockSize]byte {
	return finalizeTag(s.blk, &s.checksumMsg, &s.offsetMsg, &s.sumAD, s.ltree.LDollar())
}

// Digest emits the tag_len-byte authentication tag. Requires ENC_FINAL, or
// INIT with no AD/message ever supplied (the fully-empty case, §8 "Empty
// inputs").
func (s *Session) Digest() ([]byte, error) {
	switch s.phase {
	case phaseEncFinal:
		if len(s.pendingMsg) != 0 {
			s.closeAndWipe()
			return nil, ErrPendingData
		}
	case phaseInit:
		if err := s.guardBlockCipher(s.finalizeADOnce); err != nil {
			return nil, err
		}
	default:
		return nil, s.invalidSequence()
	}

	if err := s.guardBlockCipher(func() { s.tag = s.computeTag() }); err != nil {
		return nil, err
	}
	s.haveTag = true
	s.phase = phaseTagReady
	out := make([]byte, s.tagLen)
	copy(out, s.tag[:s.tagLen])
	return out, nil
}

// Verify validates receivedTag against the computed tag in constant time.
// Requires DEC_FINAL, or INIT with no AD/message ever supplied. On
// mismatch the session closes and ErrMacMismatch is returned; the caller
// MUST discard any plaintext already emitted by Decrypt.
func (s *Session) Verify(receivedTag []byte) error {
	switch s.phase {
	case phaseDecFinal:
		if len(s.pendingMsg) != 0 {
			s.closeAndWipe()
			return ErrPendingData
		}
	case phaseInit:
		if err := s.guardBlockCipher(s.finalizeADOnce); err != nil {
			return err
		}
	default:
		return s.invalidSequence()
	}

	var computed [BlockSize]byte
	if err := s.guardBlockCipher(func() { computed = s.computeTag() }); err != nil {
		return err
	}
	ok := verifyTag(&computed, s.tagLen, receivedTag)
	if !ok {
		s.closeAndWipe()
		return ErrMacMismatch
	}
	s.tag = computed
	s.haveTag = true
	s.phase = phaseTagReady
	return nil
}

// EncryptAndDigest is the convenience composition of Encrypt, EncryptFinal
// and Digest: it guarantees the concatenation of the two ciphertext chunks
// equals the complete ciphertext, even when len(plaintext) is an exact
// multiple of the block size (the EncryptFinal call then emits zero bytes).
func (s *Session) EncryptAndDigest(plaintext []byte) (ciphertext, tag []byte, err error) {
	head, err := s.Encrypt(plaintext)
	if err != nil {
		return nil, nil, err
	}
	tail, err := s.EncryptFinal()
	if err != nil {
		return nil, nil, err
	}
	tag, err = s.Digest()
	if err != nil {
		return nil, nil, err
	}
	return append(head, tail...), tag, nil
}

// DecryptAndVerify is the convenience composition of Decrypt, DecryptFinal
// and Verify.
func (s *Session) DecryptAndVerify(ciphertext, tag []byte) (plaintext []byte, err error) {
	head, err := s.Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	tail, err := s.DecryptFinal()
	if err != nil {
		return nil, err
	}
	if err := s.Verify(tag); err != nil {
		return nil, err
	}
	return append(head, tail...), nil
}
