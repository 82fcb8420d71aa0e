package ocb3

// ltreeInitialCap pre-allocates room for 32 L-tree entries (covering 2^32
// full blocks, i.e. 64 GiB of associated data or message at 16 bytes per
// block) so ordinary sessions never trigger a reallocation of the backing
// slice - ok from spec, see design notes in SPEC_FULL.md.
const ltreeInitialCap = 32

// ltree lazily derives and memoizes L_star, L_dollar and L(0), L(1), ...
// per RFC 7253 section 4: L_star = E_K(0^128), L_dollar = double(L_star),
// L(0) = double(L_dollar), L(i) = double(L(i-1)). Entries, once computed,
// are immutable. Not safe for concurrent use or for sharing across
// Sessions - each Session owns its own ltree.
type ltree struct {
	star    [BlockSize]byte
	dollar  [BlockSize]byte
	entries [][BlockSize]byte // entries[i] == L(i)
}

// newLtree derives L_star and L_dollar from the block cipher handle and
// primes entries[0] = L(0) = double(L_dollar).
func newLtree(blk blockCipher) ltree {
	t := ltree{entries: make([][BlockSize]byte, 0, ltreeInitialCap)}

	var zero [BlockSize]byte
	encryptBlock(blk, t.star[:], zero[:])
	double(&t.dollar, &t.star)

	var l0 [BlockSize]byte
	double(&l0, &t.dollar)
	t.entries = append(t.entries, l0)
	return t
}

// LStar returns L_star = E_K(0^128).
func (t *ltree) LStar() *[BlockSize]byte { return &t.star }

// LDollar returns L_dollar = double(L_star).
func (t *ltree) LDollar() *[BlockSize]byte { return &t.dollar }

// L returns L(i), extending the cache with chained doublings from its
// current tail if i is beyond what has been computed so far.
func (t *ltree) L(i uint) *[BlockSize]byte {
	for uint(len(t.entries)) <= i {
		var next [BlockSize]byte
		double(&next, &t.entries[len(t.entries)-1])
		t.entries = append(t.entries, next)
	}
	return &t.entries[i]
}

// wipe zeroes every cached L-tree entry, called on Session disposal.
func (t *ltree) wipe() {
	zero(t.star[:])
	zero(t.dollar[:])
	for i := range t.entries {
		zero(t.entries[i][:])
	}
	t.entries = t.entries[:0]
}
