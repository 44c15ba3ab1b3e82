//go:build linux

package generator

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// IsSupported probes the system call with an empty buffer.
func (g *Getrandom) IsSupported() bool {
	_, err := unix.Getrandom(nil, unix.GRND_NONBLOCK)
	return err == nil
}

// Bytes returns count bytes read from getrandom(2). Short reads and
// interrupted calls are retried.
func (g *Getrandom) Bytes(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative byte count %d", ErrInvalidArgument, count)
	}

	var flags int
	if g.Blocking {
		flags = unix.GRND_RANDOM
	}

	data := make([]byte, count)
	err := fill(data, func(buf []byte) (int, error) {
		for {
			n, err := unix.Getrandom(buf, flags)
			if !errors.Is(err, unix.EINTR) {
				return n, err
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
