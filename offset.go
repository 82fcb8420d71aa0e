package ocb3

// advanceOffset updates offset in place for the i-th full block (i >= 1):
// offset ^= L(ntz(i)). This realizes the Gray-code offset sequence of
// RFC 7253 without ever materializing the full sequence of offsets.
func advanceOffset(offset *[BlockSize]byte, t *ltree, blockIdx uint64) {
	l := t.L(ntz(blockIdx))
	xorBlockInto(offset, l)
}
