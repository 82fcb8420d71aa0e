package ocb3

// nonceBlock builds the 16-byte "Nonce" value of RFC 7253 section 4 from
// the tag length (in bytes) and the caller-supplied nonce N (1..15 bytes):
//
//	byte 0        = (tag_len*8 mod 128) << 1
//	bytes 1..14   = zero, except byte (15-len(N)) which is set to 0x01
//	                (for a 15-byte N that byte is byte 0, and the 0x01 is
//	                OR-ed into the tag field)
//	bytes 16-len(N)..15 = N
//
// This is the standard byte-level rendering of the RFC's bit-string
// definition "num2str(TAGLEN mod 128,7) || zeros(120-bitlen(N)) || 1 || N";
// written out in bytes, the "1" bit and the zero run before it land on a
// single dedicated byte at offset 15-len(N) rather than as one extra zero
// byte plus a separate marker byte - see DESIGN.md for why.
func nonceBlock(nonce []byte, tagLen int) [BlockSize]byte {
	var nb [BlockSize]byte
	nb[0] = byte((tagLen * 8 % 128) << 1)
	nb[BlockSize-1-len(nonce)] |= 0x01
	copy(nb[BlockSize-len(nonce):], nonce)
	return nb
}

// offsetZero derives Offset_0 from the nonce and tag length (RFC 7253
// section 4, "Key-dependent and nonce-dependent variables"). blk is the
// session's block cipher, used here only for the Ktop computation; this is
// otherwise independent of the L-tree.
func offsetZero(blk blockCipher, nonce []byte, tagLen int) [BlockSize]byte {
	nb := nonceBlock(nonce, tagLen)

	bottom := nb[BlockSize-1] & 0x3F

	var masked [BlockSize]byte
	masked = nb
	masked[BlockSize-1] &= 0xC0

	var ktop [BlockSize]byte
	encryptBlock(blk, ktop[:], masked[:])

	// Stretch = Ktop || (Ktop[0:8] XOR Ktop[1:9]), 24 bytes.
	var stretch [24]byte
	copy(stretch[:16], ktop[:])
	for i := 0; i < 8; i++ {
		stretch[16+i] = ktop[i] ^ ktop[i+1]
	}

	return extractShifted(&stretch, bottom)
}

// extractShifted returns the 16 bytes of stretch starting at bit offset
// bottom (0..63), i.e. stretch left-shifted by bottom bits and truncated to
// the first 16 bytes of the result.
func extractShifted(stretch *[24]byte, bottom byte) [BlockSize]byte {
	var out [BlockSize]byte
	byteShift := int(bottom / 8)
	bitShift := uint(bottom % 8)
	if bitShift == 0 {
		copy(out[:], stretch[byteShift:byteShift+BlockSize])
		return out
	}
	for i := 0; i < BlockSize; i++ {
		hi := stretch[byteShift+i] << bitShift
		lo := stretch[byteShift+i+1] >> (8 - bitShift)
		out[i] = hi | lo
	}
	return out
}
