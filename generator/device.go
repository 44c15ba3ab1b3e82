package generator

import (
	"fmt"
	"io"
	"os"

	"github.com/safing/securerandom/log"
)

// Well known random devices.
const (
	DevURandom = "/dev/urandom"
	DevRandom  = "/dev/random"
)

// DeviceReader reads random bytes from a device file such as /dev/urandom.
// The file is opened on first use and kept open until Close is called.
// DeviceReader is not safe for concurrent use.
type DeviceReader struct {
	path string
	file *os.File
}

// NewDeviceReader returns a reader for the given device path. An empty path
// selects /dev/urandom.
func NewDeviceReader(path string) *DeviceReader {
	if path == "" {
		path = DevURandom
	}
	return &DeviceReader{
		path: path,
	}
}

// Path returns the device path.
func (dr *DeviceReader) Path() string {
	return dr.path
}

// IsOpen reports whether the device file is currently held open.
func (dr *DeviceReader) IsOpen() bool {
	return dr.file != nil
}

// Bytes returns count bytes read from the device.
func (dr *DeviceReader) Bytes(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative byte count %d", ErrInvalidArgument, count)
	}

	if dr.file == nil {
		f, err := os.Open(dr.path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open %s: %w", ErrGeneration, dr.path, err)
		}
		dr.file = f
	}

	data := make([]byte, count)
	if _, err := io.ReadFull(dr.file, data); err != nil {
		return nil, fmt.Errorf("%w: failed to read from %s: %w", ErrGeneration, dr.path, err)
	}
	return data, nil
}

// Close releases the device file. It is safe to call Close multiple times
// and after failed reads. A later read opens the device again.
func (dr *DeviceReader) Close() error {
	if dr.file == nil {
		return nil
	}

	err := dr.file.Close()
	dr.file = nil
	if err != nil {
		log.Warningf("generator: failed to close %s: %s", dr.path, err)
	}
	return err
}
