package generator

import "fmt"

// Getrandom reads from the getrandom(2) system call.
type Getrandom struct {
	// Blocking draws from the blocking pool (GRND_RANDOM) instead of the
	// urandom pool.
	Blocking bool
}

// NewGetrandom returns a getrandom(2) source.
func NewGetrandom(blocking bool) *Getrandom {
	return &Getrandom{
		Blocking: blocking,
	}
}

// fill calls read until data is full. A read that returns no bytes and no
// error is a failure, not a reason to retry.
func fill(data []byte, read func([]byte) (int, error)) error {
	for filled := 0; filled < len(data); {
		n, err := read(data[filled:])
		switch {
		case err != nil:
			return fmt.Errorf("%w: getrandom: %w", ErrGeneration, err)
		case n <= 0:
			return fmt.Errorf("%w: getrandom returned no data", ErrGeneration)
		}
		filled += n
	}
	return nil
}
