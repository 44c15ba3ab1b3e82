package random

import (
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/securerandom/generator"
)

var errExhausted = errors.New("script exhausted")

// scripted returns prepared byte chunks in order and records the requested counts.
type scripted struct {
	supported bool
	chunks    [][]byte
	requested []int
}

func (s *scripted) IsSupported() bool { return s.supported }

func (s *scripted) Bytes(count int) ([]byte, error) {
	s.requested = append(s.requested, count)
	if len(s.chunks) == 0 {
		return nil, errExhausted
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return chunk, nil
}

func createWithList(t *testing.T, chunks ...[]byte) (*SecureRandom, *scripted) {
	t.Helper()

	source := &scripted{supported: true, chunks: chunks}
	r, err := New(source)
	require.NoError(t, err)
	return r, source
}

func TestNewWrapsByteGenerators(t *testing.T) {
	r, _ := createWithList(t)
	assert.IsType(t, &generator.RangeGenerator{}, r.Generator())

	internal := generator.NewInternal()
	r, err := New(internal)
	require.NoError(t, err)
	assert.Same(t, internal, r.Generator())
}

func TestNewUnsupported(t *testing.T) {
	_, err := New(&scripted{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEvenDistribution(t *testing.T) {
	chunks := make([][]byte, 0, 20*32)
	for i := 0; i < 20*32; i++ {
		chunks = append(chunks, []byte{byte(i)})
	}
	r, _ := createWithList(t, chunks...)

	counts := make([]int, 18)
	for i := 0; i < 20*18; i++ {
		n, err := r.Integer(0, 17)
		require.NoError(t, err)
		counts[n]++
	}

	for value, count := range counts {
		assert.Equal(t, 20, count, "value %d", value)
	}
}

func TestBytes(t *testing.T) {
	r, source := createWithList(t, []byte{32}, []byte("kkl;..++"), []byte("aa"))

	b, err := r.Bytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{32}, b)

	b, err = r.Bytes(8)
	require.NoError(t, err)
	assert.Equal(t, []byte("kkl;..++"), b)

	b, err = r.Bytes(0)
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = r.Bytes(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// wrong length from the source
	_, err = r.Bytes(6)
	assert.ErrorIs(t, err, ErrGeneration)

	assert.Equal(t, []int{1, 8, 6}, source.requested)
}

func TestInteger(t *testing.T) {
	r, source := createWithList(t,
		[]byte{0b101},
		[]byte{0b1111},
		[]byte{0},
		[]byte{1},
		[]byte{0x00, 0x00, 0xcb},
		[]byte{0x00, 0x75, 0x46},
		[]byte{0x06, 0x46, 0x61},
		[]byte{3},
		[]byte{2},
	)

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
		{123, 123, 123},
	}
	for _, tt := range tests {
		n, err := r.Integer(tt.min, tt.max)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n)
	}
	assert.Equal(t, []int{1, 1, 1, 1, 3, 3, 3, 1, 1}, source.requested)

	_, err := r.Integer(-1, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = r.Integer(1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// source exhausted
	_, err = r.Integer(0, 10)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestRandom(t *testing.T) {
	r, source := createWithList(t,
		[]byte{0, 0, 0, 0, 0, 0, 0},
		[]byte{0, 0, 0, 0, 0, 0, 0x10},
		[]byte{0, 0, 0, 0, 0, 0x80, 0},
		[]byte{0, 0, 0, 0, 0, 0, 0xff},
		[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	)

	for _, want := range []float64{0, 0.5, 0.015625, 31.0 / 32} {
		f, err := r.Random()
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}

	f, err := r.Random()
	require.NoError(t, err)
	assert.Less(t, f, 1.0)
	assert.Equal(t, 1-math.Pow(2, -53), f)

	assert.Equal(t, []int{7, 7, 7, 7, 7}, source.requested)
}

func TestFloat(t *testing.T) {
	r, _ := createWithList(t,
		[]byte{0, 0, 0, 0, 0, 0, 0x23, 0x82},
		[]byte{0, 0, 0, 0, 0, 0, 0, 0},
		[]byte{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	)

	f, err := r.Float()
	require.NoError(t, err)
	assert.Equal(t, float64(9090)/float64(math.MaxInt64), f)

	f, err = r.Float()
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)

	f, err = r.Float()
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestString(t *testing.T) {
	r, source := createWithList(t, []byte{0}, []byte{3}, []byte{2}, []byte{3}, []byte{1})

	s, err := r.String("abcd", 5)
	require.NoError(t, err)
	assert.Equal(t, "adcdb", s)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, source.requested)

	s, err = r.String("a", 4)
	require.NoError(t, err)
	assert.Equal(t, "aaaa", s)

	s, err = r.String("", 0)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = r.String("123", 0)
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = r.String("abc", -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = r.String("", 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStringRunes(t *testing.T) {
	r, _ := createWithList(t, []byte{2}, []byte{0})

	s, err := r.String("äöü", 2)
	require.NoError(t, err)
	assert.Equal(t, "üä", s)
}

func TestUUID(t *testing.T) {
	zeros := make([]byte, 16)
	ones := make([]byte, 16)
	for i := range ones {
		ones[i] = 0xff
	}
	r, source := createWithList(t, zeros, ones)

	u, err := r.UUID()
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-4000-8000-000000000000", u)

	u, err = r.UUID()
	require.NoError(t, err)
	assert.Equal(t, "ffffffff-ffff-4fff-bfff-ffffffffffff", u)

	assert.Equal(t, []int{16, 16}, source.requested)
}

func TestUUIDFormat(t *testing.T) {
	r, err := New(generator.NewInternal())
	require.NoError(t, err)

	format := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	for i := 0; i < 50; i++ {
		u, err := r.UUID()
		require.NoError(t, err)
		assert.Regexp(t, format, u)
	}
}

func TestClose(t *testing.T) {
	dr := generator.NewDeviceReader(generator.DevURandom)
	if !dr.IsSupported() {
		t.Skip("/dev/urandom cannot be read")
	}

	r, err := New(dr)
	require.NoError(t, err)
	_, err = r.Bytes(4)
	require.NoError(t, err)
	assert.True(t, dr.IsOpen())

	require.NoError(t, r.Close())
	assert.False(t, dr.IsOpen())

	// nothing to close
	r, _ = createWithList(t)
	assert.NoError(t, r.Close())
}

func TestBytesReadCountedOnce(t *testing.T) {
	r, _ := createWithList(t,
		make([]byte, 10),
		make([]byte, 16),
		make([]byte, 7),
		[]byte{0x00, 0x00, 0xcb},
	)

	before := generator.BytesRead()
	_, err := r.Bytes(10)
	require.NoError(t, err)
	assert.Equal(t, before+10, generator.BytesRead())

	_, err = r.UUID()
	require.NoError(t, err)
	assert.Equal(t, before+26, generator.BytesRead())

	_, err = r.Random()
	require.NoError(t, err)
	assert.Equal(t, before+33, generator.BytesRead())

	_, err = r.Integer(0, 500000)
	require.NoError(t, err)
	assert.Equal(t, before+36, generator.BytesRead())

	// native number generators are counted the same way
	r, err = New(generator.NewInternal())
	require.NoError(t, err)
	before = generator.BytesRead()
	_, err = r.Bytes(10)
	require.NoError(t, err)
	assert.Equal(t, before+10, generator.BytesRead())
}
