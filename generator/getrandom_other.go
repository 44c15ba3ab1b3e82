//go:build !linux

package generator

// IsSupported returns false, getrandom(2) is only used on Linux.
func (g *Getrandom) IsSupported() bool {
	return false
}

// Bytes always fails with ErrUnsupported.
func (g *Getrandom) Bytes(count int) ([]byte, error) {
	return nil, ErrUnsupported
}
