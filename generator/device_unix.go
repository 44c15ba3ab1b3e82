//go:build unix

package generator

import (
	"golang.org/x/sys/unix"
)

// IsSupported reports whether the device path is readable.
func (dr *DeviceReader) IsSupported() bool {
	return unix.Access(dr.path, unix.R_OK) == nil
}
