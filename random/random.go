// Package random provides unbiased random integers, floats, sampling,
// random sequences and version 4 UUIDs on top of a cryptographically secure
// entropy source.
//
// A SecureRandom is bound to one generator for its whole lifetime and is not
// safe for concurrent use.
package random

import (
	"fmt"
	"io"
	"math"

	"github.com/gofrs/uuid"

	"github.com/safing/securerandom/generator"
)

// Errors returned by SecureRandom and the sampling functions.
var (
	ErrUnsupported     = generator.ErrUnsupported
	ErrGeneration      = generator.ErrGeneration
	ErrInvalidArgument = generator.ErrInvalidArgument
)

const (
	randomBytes = 7
	uuidBytes   = 16
)

// SecureRandom generates random values from a single NumberGenerator.
type SecureRandom struct {
	gen generator.NumberGenerator
}

// New returns a SecureRandom using g. If g is nil, the first supported
// entry of DefaultGenerators is used. A generator that cannot produce
// numbers itself is wrapped in a RangeGenerator.
func New(g generator.Generator) (*SecureRandom, error) {
	if g == nil {
		var err error
		g, err = defaultGenerator()
		if err != nil {
			return nil, err
		}
	} else if !g.IsSupported() {
		return nil, fmt.Errorf("%w: the provided generator %T is not supported by the system", ErrUnsupported, g)
	}

	ng, ok := g.(generator.NumberGenerator)
	if !ok {
		ng = generator.NewRangeGenerator(g)
	}

	return &SecureRandom{
		gen: ng,
	}, nil
}

// Generator returns the generator in use.
func (r *SecureRandom) Generator() generator.NumberGenerator {
	return r.gen
}

// Close releases resources held by the generator, such as an open device file.
func (r *SecureRandom) Close() error {
	if closer, ok := r.gen.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Bytes returns count random bytes.
func (r *SecureRandom) Bytes(count int) ([]byte, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: number of bytes must be 0 or more", ErrInvalidArgument)
	}
	return generator.ReadExactly(r.gen, count)
}

// Integer returns a random integer between min and max, inclusive. Both
// limits must be non-negative and min must not exceed max.
func (r *SecureRandom) Integer(min, max int64) (int64, error) {
	if min < 0 || max < min {
		return 0, fmt.Errorf("%w: invalid minimum %d or maximum %d", ErrInvalidArgument, min, max)
	}
	return r.gen.Number(min, max)
}

// Random returns a random float in the range [0, 1) with 53 random bits.
func (r *SecureRandom) Random() (float64, error) {
	data, err := generator.ReadExactly(r.gen, randomBytes)
	if err != nil {
		return 0, err
	}

	tail := data[randomBytes-1] & 0x1f
	var result float64
	for _, b := range data[:randomBytes-1] {
		result = (float64(b) + result) / 256
	}
	return (float64(tail) + result) / 32, nil
}

// Float returns a random float in the range [0, 1]. Unlike Random, it may
// return 1.
func (r *SecureRandom) Float() (float64, error) {
	n, err := r.gen.Number(0, math.MaxInt64)
	if err != nil {
		return 0, err
	}
	return float64(n) / float64(math.MaxInt64), nil
}

// String returns a string of length characters chosen from choices, with
// replacement. Characters are runes.
func (r *SecureRandom) String(choices string, length int) (string, error) {
	seq, err := Sequence(r, []rune(choices), length)
	if err != nil {
		return "", err
	}
	return string(seq), nil
}

// UUID returns a random version 4 UUID in canonical lowercase form.
func (r *SecureRandom) UUID() (string, error) {
	data, err := generator.ReadExactly(r.gen, uuidBytes)
	if err != nil {
		return "", err
	}

	u, err := uuid.FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	u.SetVersion(uuid.V4)
	u.SetVariant(uuid.VariantRFC4122)
	return u.String(), nil
}
