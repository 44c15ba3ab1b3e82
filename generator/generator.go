// Package generator defines the contracts for entropy sources and turns
// their uniformly distributed bytes into unbiased integers.
//
// A Generator only produces bytes. A NumberGenerator additionally produces
// integers in an inclusive range. Any Generator can be turned into a
// NumberGenerator by wrapping it with NewRangeGenerator.
package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned if no usable entropy source is available.
	ErrUnsupported = errors.New("entropy source is not supported")
	// ErrGeneration is returned if an entropy source failed or returned a wrong number of bytes.
	ErrGeneration = errors.New("failed to generate random data")
	// ErrInvalidArgument is returned for counts or ranges that cannot be satisfied.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Generator is a source of uniformly distributed random bytes.
type Generator interface {
	// IsSupported reports whether the source can be used in the current
	// environment. It must be cheap and free of side effects.
	IsSupported() bool
	// Bytes returns exactly count random bytes.
	Bytes(count int) ([]byte, error)
}

// NumberGenerator is a Generator that also returns uniformly distributed
// integers in an inclusive range.
type NumberGenerator interface {
	Generator
	Number(min, max int64) (int64, error)
}

// ReadExactly reads count bytes from g, verifies the length of the result
// and counts the bytes as read. A count of zero returns an empty slice
// without touching g.
func ReadExactly(g Generator, count int) ([]byte, error) {
	data, err := readExactly(g, count)
	if err != nil {
		return nil, err
	}

	bytesRead.Add(len(data))
	return data, nil
}

// readExactly is ReadExactly without counting, for generators that pass
// bytes through from another source.
func readExactly(g Generator, count int) ([]byte, error) {
	switch {
	case count < 0:
		return nil, fmt.Errorf("%w: negative byte count %d", ErrInvalidArgument, count)
	case count == 0:
		return []byte{}, nil
	}

	data, err := g.Bytes(count)
	if err != nil {
		if errors.Is(err, ErrGeneration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(data) != count {
		return nil, fmt.Errorf("%w: source returned %d bytes instead of %d", ErrGeneration, len(data), count)
	}
	return data, nil
}
