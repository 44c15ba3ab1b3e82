//go:build !unix

package generator

// IsSupported returns false, random devices only exist on unix systems.
func (dr *DeviceReader) IsSupported() bool {
	return false
}
