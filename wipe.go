package ocb3

// zero overwrites b with zero bytes. Used on every exit path that retires a
// Session's secret-bearing buffers - ok from spec §5: "all heap-held
// secrets ... should be zeroed on disposal".
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
