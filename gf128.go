package ocb3

import "encoding/binary"

// reductionByte is the low byte of the OCB reduction polynomial
// p(x) = x^128 + x^7 + x^2 + x + 1, i.e. 0x87.
const reductionByte = 0x87

// double computes 2*X in the OCB GF(2^128) polynomial basis (RFC 7253
// section 3): a big-endian left shift by one bit, with the output XORed by
// the reduction constant whenever the input's MSB was set. Runs in constant
// time with respect to X - no branch depends on any data bit.
func double(dst, src *[BlockSize]byte) {
	hi := binary.BigEndian.Uint64(src[0:8])
	lo := binary.BigEndian.Uint64(src[8:16])

	msb := hi >> 63 // 0 or 1, constant-time extraction of the top bit

	hi = (hi << 1) | (lo >> 63)
	lo = lo << 1

	// branchless: XOR in the reduction constant iff msb == 1, via a
	// 64-bit mask derived from msb without a conditional jump.
	mask := uint64(0) - msb
	lo ^= mask & reductionByte

	binary.BigEndian.PutUint64(dst[0:8], hi)
	binary.BigEndian.PutUint64(dst[8:16], lo)
}

// xorBlock computes dst = a XOR b, 16 bytes, word at a time.
func xorBlock(dst, a, b *[BlockSize]byte) {
	ah := binary.BigEndian.Uint64(a[0:8])
	al := binary.BigEndian.Uint64(a[8:16])
	bh := binary.BigEndian.Uint64(b[0:8])
	bl := binary.BigEndian.Uint64(b[8:16])
	binary.BigEndian.PutUint64(dst[0:8], ah^bh)
	binary.BigEndian.PutUint64(dst[8:16], al^bl)
}

// xorBlockInto computes dst ^= src in place, 16 bytes, word at a time.
func xorBlockInto(dst *[BlockSize]byte, src *[BlockSize]byte) {
	xorBlock(dst, dst, src)
}

// ntz returns the number of trailing zero bits in i, for i >= 1. Used to
// pick which L-tree entry masks the i-th block's offset (the Gray-code walk
// from RFC 7253 section 4).
func ntz(i uint64) uint {
	if i == 0 {
		return 0
	}
	var n uint
	for i&1 == 0 {
		i >>= 1
		n++
	}
	return n
}
