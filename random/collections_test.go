package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray(t *testing.T) {
	r, source := createWithList(t, []byte{2}, []byte{1}, []byte{1}, []byte{2}, []byte{1}, []byte{1})
	m := map[string]string{"a": "0", "b": "1", "c": "2"}

	e, err := MapArray(r, m, 1)
	require.NoError(t, err)
	assert.Equal(t, Entries[string, string]{{Key: "c", Value: "2"}}, e)

	e, err = MapArray(r, m, 2)
	require.NoError(t, err)
	assert.Equal(t, Entries[string, string]{{Key: "b", Value: "1"}, {Key: "c", Value: "2"}}, e)

	items := []string{"a", "b", "c"}
	l, err := Array(r, items, 1)
	require.NoError(t, err)
	assert.Equal(t, Entries[int, string]{{Key: 2, Value: "c"}}, l)

	l, err = Array(r, items, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, l.Keys())
	assert.Equal(t, []string{"b", "c"}, l.Values())

	// input is left untouched
	assert.Equal(t, []string{"a", "b", "c"}, items)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1}, source.requested)
}

func TestArrayByteCount(t *testing.T) {
	r, source := createWithList(t, []byte{0x01, 0x00}, []byte{0x80}, []byte{0xff}, []byte{0x80})
	items := make([]int, 257)
	for i := range items {
		items[i] = i
	}

	e, err := Array(r, items, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{256, 129, 130}, e.Keys())
	assert.Equal(t, []int{256, 129, 130}, e.Values())
	assert.Equal(t, []int{2, 1, 1, 1}, source.requested)
}

func TestArrayLimits(t *testing.T) {
	r, source := createWithList(t)

	_, err := Array(r, []int{}, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Array(r, []int{1, 2, 3}, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = MapArray(r, map[int]int{1: 1}, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	e, err := Array(r, []int{1, 2, 3}, 0)
	require.NoError(t, err)
	assert.Empty(t, e)

	e, err = Array(r, []int{}, 0)
	require.NoError(t, err)
	assert.Empty(t, e)

	assert.Empty(t, source.requested)
}

func TestShuffle(t *testing.T) {
	r, source := createWithList(t, []byte{0}, []byte{1}, []byte{0}, []byte{1})

	m, err := ShuffleMap(r, map[string]string{"a": "0", "b": "1", "c": "2"})
	require.NoError(t, err)
	assert.Equal(t, Entries[string, string]{
		{Key: "a", Value: "0"},
		{Key: "c", Value: "2"},
		{Key: "b", Value: "1"},
	}, m)

	l, err := Shuffle(r, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, Entries[int, string]{
		{Key: 0, Value: "a"},
		{Key: 2, Value: "c"},
		{Key: 1, Value: "b"},
	}, l)
	assert.Equal(t, []int{1, 1, 1, 1}, source.requested)

	empty, err := Shuffle(r, []string{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestChoose(t *testing.T) {
	r, source := createWithList(t, []byte{1}, []byte{2})

	v, err := ChooseMap(r, map[string]string{"a": "0", "b": "1", "c": "2"})
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	s, err := Choose(r, []string{"x", "y", "z"})
	require.NoError(t, err)
	assert.Equal(t, "z", s)

	// a single element needs no entropy
	s, err = Choose(r, []string{"foo"})
	require.NoError(t, err)
	assert.Equal(t, "foo", s)
	assert.Equal(t, []int{1, 1}, source.requested)

	_, err = Choose(r, []string{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ChooseMap(r, map[string]int{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSequence(t *testing.T) {
	r, source := createWithList(t, []byte{2}, []byte{0})

	seq, err := Sequence(r, []int{1, 2, 3}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, seq)

	seq, err = Sequence(r, []int{7}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 7, 7, 7}, seq)

	seq, err = Sequence(r, []int{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{}, seq)

	seq, err = Sequence(r, []int{1, 2, 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{}, seq)

	_, err = Sequence(r, []int{}, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Sequence(r, []int{1}, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, []int{1, 1}, source.requested)
}
