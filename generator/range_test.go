package generator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errExhausted = errors.New("script exhausted")

// scripted returns prepared byte chunks in order and records the requested counts.
type scripted struct {
	chunks    [][]byte
	requested []int
}

func (s *scripted) IsSupported() bool { return true }

func (s *scripted) Bytes(count int) ([]byte, error) {
	s.requested = append(s.requested, count)
	if len(s.chunks) == 0 {
		return nil, errExhausted
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return chunk, nil
}

// cycling returns the bytes 0 to 255 in order, one at a time.
type cycling struct {
	next byte
}

func (c *cycling) IsSupported() bool { return true }

func (c *cycling) Bytes(count int) ([]byte, error) {
	data := make([]byte, count)
	for i := range data {
		data[i] = c.next
		c.next++
	}
	return data, nil
}

func TestEvenDistribution(t *testing.T) {
	rg := NewRangeGenerator(&cycling{})
	counts := make([]int, 18)

	for i := 0; i < 20*18; i++ {
		n, err := rg.Number(0, 17)
		require.NoError(t, err)
		counts[n]++
	}

	for value, count := range counts {
		assert.Equal(t, 20, count, "value %d", value)
	}
}

func TestNumberVectors(t *testing.T) {
	source := &scripted{chunks: [][]byte{
		{0b101},
		{0b1111},
		{0},
		{1},
		{0x00, 0x00, 0xcb},
		{0x00, 0x75, 0x46},
		{0x06, 0x46, 0x61},
		{3},
		{2},
	}}
	rg := NewRangeGenerator(source)
	rejectionsBefore := Rejections()

	tests := []struct {
		min, max int64
		want     int64
	}{
		{0, 0b111, 0b101},
		{0, 0b111, 0b111},
		{500000, 500001, 500000},
		{500000, 500001, 500001},
		{0, 500000, 203},
		{0, 500000, 30022},
		{0, 500000, 411233},
		{0, 2, 2},
	}
	for _, tt := range tests {
		n, err := rg.Number(tt.min, tt.max)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n)
	}

	assert.Equal(t, []int{1, 1, 1, 1, 3, 3, 3, 1, 1}, source.requested)
	assert.Equal(t, rejectionsBefore+1, Rejections())
}

func TestNumberFullRange(t *testing.T) {
	source := &scripted{chunks: [][]byte{
		{0, 0, 0, 0, 0, 0, 0x23, 0x82},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}}
	rg := NewRangeGenerator(source)

	n, err := rg.Number(0, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(9090), n)

	// the top bit is masked away
	n, err = rg.Number(0, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), n)
	assert.Equal(t, []int{8, 8}, source.requested)
}

func TestNumberByteCount(t *testing.T) {
	source := &scripted{chunks: [][]byte{{0x01, 0x00}}}
	rg := NewRangeGenerator(source)

	n, err := rg.Number(0, 256)
	require.NoError(t, err)
	assert.Equal(t, int64(256), n)
	assert.Equal(t, []int{2}, source.requested)
}

func TestNumberWithoutEntropy(t *testing.T) {
	source := &scripted{}
	rg := NewRangeGenerator(source)

	n, err := rg.Number(123, 123)
	require.NoError(t, err)
	assert.Equal(t, int64(123), n)

	n, err = rg.Number(-5, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), n)

	_, err = rg.Number(1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = rg.Number(-1, math.MaxInt64)
	assert.ErrorIs(t, err, ErrGeneration)
	_, err = rg.Number(math.MinInt64, 0)
	assert.ErrorIs(t, err, ErrGeneration)

	assert.Empty(t, source.requested)
}

func TestNumberNegativeRange(t *testing.T) {
	rg := NewRangeGenerator(&scripted{chunks: [][]byte{{7}, {0}}})

	n, err := rg.Number(-10, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), n)

	n, err = rg.Number(-10, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), n)
}

func TestNumberSourceFailure(t *testing.T) {
	rg := NewRangeGenerator(&scripted{chunks: [][]byte{{1, 2}}})

	// short read
	_, err := rg.Number(0, 100)
	assert.ErrorIs(t, err, ErrGeneration)

	// source error
	_, err = rg.Number(0, 100)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, errExhausted)
}

func TestReadExactly(t *testing.T) {
	source := &scripted{chunks: [][]byte{[]byte("kkl;..++"), []byte("aa")}}

	data, err := ReadExactly(source, 0)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Empty(t, source.requested)

	_, err = ReadExactly(source, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	before := BytesRead()
	data, err = ReadExactly(source, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte("kkl;..++"), data)
	assert.Equal(t, before+8, BytesRead())

	_, err = ReadExactly(source, 6)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestPackBigEndian(t *testing.T) {
	n, err := packBigEndian([]byte{0x01, 0x02, 0x03})
	require.NoError(t, err)
	assert.Equal(t, uint64(0x010203), n)

	n, err = packBigEndian([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), n)

	_, err = packBigEndian(nil)
	assert.ErrorIs(t, err, ErrGeneration)
	_, err = packBigEndian(make([]byte, 9))
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestRangeGeneratorSupport(t *testing.T) {
	rg := NewRangeGenerator(&scripted{})
	assert.True(t, rg.IsSupported())

	var _ NumberGenerator = rg
}

func TestRangeGeneratorBytesCountedOnce(t *testing.T) {
	rg := NewRangeGenerator(&scripted{chunks: [][]byte{[]byte("abcd")}})

	before := BytesRead()
	data, err := ReadExactly(rg, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), data)
	assert.Equal(t, before+4, BytesRead())
}
