package ocb3

import "crypto/subtle"

// finalizeTag computes the full 16-byte OCB3 tag from a session's
// checksum/offset/sum_ad state (RFC 7253 section 4, §4.8 of the core spec):
//
//	Final = E_K(checksum_msg XOR offset_msg XOR L_dollar) XOR sum_ad
//
// The caller truncates the result to tagLen bytes.
func finalizeTag(blk blockCipher, checksum, offset, sumAD *[BlockSize]byte, lDollar *[BlockSize]byte) [BlockSize]byte {
	var mix [BlockSize]byte
	xorBlock(&mix, checksum, offset)
	xorBlockInto(&mix, lDollar)

	var final [BlockSize]byte
	encryptBlock(blk, final[:], mix[:])
	xorBlockInto(&final, sumAD)
	return final
}

// verifyTag compares a computed tag against the tag supplied by the peer in
// constant time. Only the tagLen bytes that are actually exposed by this
// session's configuration participate - ok from spec §4.8/§9: "prefer a
// dedicated constant-time equality primitive".
func verifyTag(computed *[BlockSize]byte, tagLen int, received []byte) bool {
	if len(received) != tagLen {
		return false
	}
	return subtle.ConstantTimeCompare(computed[:tagLen], received) == 1
}
