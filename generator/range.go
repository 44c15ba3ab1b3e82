package generator

import (
	"fmt"
	"io"
	"math"
)

// RangeGenerator turns a byte source into a NumberGenerator by rejection
// sampling. It holds no state apart from its source.
type RangeGenerator struct {
	source Generator
}

// NewRangeGenerator returns a RangeGenerator that draws bytes from source.
func NewRangeGenerator(source Generator) *RangeGenerator {
	return &RangeGenerator{
		source: source,
	}
}

// IsSupported reports whether the underlying source is supported.
func (rg *RangeGenerator) IsSupported() bool {
	return rg.source.IsSupported()
}

// Bytes returns count bytes from the underlying source. The bytes are
// counted by the caller's ReadExactly, not here.
func (rg *RangeGenerator) Bytes(count int) ([]byte, error) {
	return readExactly(rg.source, count)
}

// Close closes the underlying source if it holds resources.
func (rg *RangeGenerator) Close() error {
	if closer, ok := rg.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Number returns a uniformly distributed integer between min and max, inclusive.
func (rg *RangeGenerator) Number(min, max int64) (int64, error) {
	switch {
	case min > max:
		return 0, fmt.Errorf("%w: minimum %d is greater than maximum %d", ErrInvalidArgument, min, max)
	case min == max:
		return min, nil
	case min < 0 && max > math.MaxInt64+min:
		return 0, fmt.Errorf("%w: range %d to %d is too large", ErrGeneration, min, max)
	}

	n, err := rg.sample(uint64(max - min))
	if err != nil {
		return 0, err
	}
	return min + int64(n), nil
}

// sample returns a uniformly distributed integer between 0 and limit,
// inclusive. It reads the fewest whole bytes that can hold limit, masks them
// to the bit length of limit and retries until the value is within range.
func (rg *RangeGenerator) sample(limit uint64) (uint64, error) {
	if limit == 0 {
		return 0, nil
	}

	bits, mask := 1, uint64(1)
	for limit>>bits > 0 {
		mask |= 1 << bits
		bits++
	}
	byteCount := (bits + 7) / 8

	for {
		data, err := ReadExactly(rg.source, byteCount)
		if err != nil {
			return 0, err
		}
		value, err := packBigEndian(data)
		if err != nil {
			return 0, err
		}

		value &= mask
		if value <= limit {
			return value, nil
		}
		rejections.Inc()
	}
}

// packBigEndian interprets 1 to 8 bytes as an unsigned big-endian integer.
func packBigEndian(data []byte) (uint64, error) {
	if len(data) == 0 || len(data) > 8 {
		return 0, fmt.Errorf("%w: cannot pack %d bytes into an integer", ErrGeneration, len(data))
	}

	var value uint64
	for _, b := range data {
		value = value<<8 | uint64(b)
	}
	return value, nil
}
