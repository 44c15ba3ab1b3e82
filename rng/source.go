package rng

import (
	"errors"
	"fmt"

	"github.com/safing/securerandom/generator"
)

// Source exposes the Fortuna generator as an entropy source. It is only
// supported while the rng module is running.
type Source struct{}

// NewSource returns the Fortuna entropy source.
func NewSource() *Source {
	return &Source{}
}

// IsSupported reports whether the rng module is running.
func (s *Source) IsSupported() bool {
	rngLock.Lock()
	defer rngLock.Unlock()

	return rngReady
}

// Bytes returns count bytes from the Fortuna generator.
func (s *Source) Bytes(count int) ([]byte, error) {
	data, err := Bytes(count)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, generator.ErrInvalidArgument):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", generator.ErrGeneration, err)
	}
}
