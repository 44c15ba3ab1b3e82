package generator

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Internal reads from the platform CSPRNG provided by crypto/rand and
// generates numbers natively.
type Internal struct{}

// NewInternal returns the platform CSPRNG source.
func NewInternal() *Internal {
	return &Internal{}
}

// IsSupported always returns true, crypto/rand is available on every platform.
func (i *Internal) IsSupported() bool {
	return true
}

// Bytes returns count bytes from crypto/rand.
func (i *Internal) Bytes(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative byte count %d", ErrInvalidArgument, count)
	}

	data := make([]byte, count)
	if _, err := io.ReadFull(rand.Reader, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return data, nil
}

// Number returns a uniformly distributed integer between min and max, inclusive.
func (i *Internal) Number(min, max int64) (int64, error) {
	switch {
	case min > max:
		return 0, fmt.Errorf("%w: minimum %d is greater than maximum %d", ErrInvalidArgument, min, max)
	case min == max:
		return min, nil
	}

	// span = max - min + 1, computed outside of int64
	span := new(big.Int).Sub(big.NewInt(max), big.NewInt(min))
	span.Add(span, big.NewInt(1))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return n.Add(n, big.NewInt(min)).Int64(), nil
}
