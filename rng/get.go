package rng

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/safing/securerandom/generator"
)

var (
	// Reader provides a global instance to read from the RNG.
	Reader io.Reader = reader{}

	// ErrNotReady is returned if the RNG is read before the module started.
	ErrNotReady = errors.New("rng is not ready yet")

	rngBytesRead int64
	rngLastFeed  = time.Now()
)

// reader provides an io.Reader interface.
type reader struct{}

// checkEntropy reseeds the generator if too many bytes were read or too much
// time passed since the last feed. Must be called with rngLock held.
func checkEntropy() error {
	if !rngReady {
		return ErrNotReady
	}

	if rngBytesRead > reseedAfterBytes() ||
		int64(time.Since(rngLastFeed).Seconds()) > reseedAfterSeconds() {
		select {
		case r := <-rngFeeder:
			rng.Reseed(r)
			rngBytesRead = 0
			rngLastFeed = time.Now()
		case <-time.After(1 * time.Second):
			return errors.New("failed to get new entropy")
		}
	}
	return nil
}

// Read reads random bytes into the supplied byte slice.
func Read(b []byte) (n int, err error) {
	if len(b) == 0 {
		return 0, nil
	}

	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return 0, err
	}

	rngBytesRead += int64(len(b))
	return copy(b, rng.PseudoRandomData(uint(len(b)))), nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with random data.
func Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative byte count %d", generator.ErrInvalidArgument, n)
	}
	if n == 0 {
		return []byte{}, nil
	}

	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return nil, err
	}

	rngBytesRead += int64(n)
	return rng.PseudoRandomData(uint(n)), nil
}
