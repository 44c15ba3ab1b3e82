package random

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Entry is a selected element together with its original key or index.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Entries is an ordered list of selected elements.
type Entries[K any, V any] []Entry[K, V]

// Keys returns the keys in selection order.
func (e Entries[K, V]) Keys() []K {
	keys := make([]K, len(e))
	for i, entry := range e {
		keys[i] = entry.Key
	}
	return keys
}

// Values returns the values in selection order.
func (e Entries[K, V]) Values() []V {
	values := make([]V, len(e))
	for i, entry := range e {
		values[i] = entry.Value
	}
	return values
}

// Array selects count distinct elements from items in random order. Each
// entry keeps the index the element had in items.
func Array[T any](r *SecureRandom, items []T, count int) (Entries[int, T], error) {
	keys := make([]int, len(items))
	for i := range keys {
		keys[i] = i
	}
	return pick(r, keys, func(i int) T { return items[i] }, count)
}

// MapArray selects count distinct entries from m in random order. Keys are
// sorted before sampling, so a given entropy stream always selects the same
// entries.
func MapArray[K constraints.Ordered, V any](r *SecureRandom, m map[K]V, count int) (Entries[K, V], error) {
	return pick(r, sortedKeys(m), func(k K) V { return m[k] }, count)
}

// Shuffle returns all elements of items in random order.
func Shuffle[T any](r *SecureRandom, items []T) (Entries[int, T], error) {
	return Array(r, items, len(items))
}

// ShuffleMap returns all entries of m in random order.
func ShuffleMap[K constraints.Ordered, V any](r *SecureRandom, m map[K]V) (Entries[K, V], error) {
	return MapArray(r, m, len(m))
}

// Choose returns one random element of items.
func Choose[T any](r *SecureRandom, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: cannot choose from an empty list", ErrInvalidArgument)
	}

	index, err := r.gen.Number(0, int64(len(items)-1))
	if err != nil {
		return zero, err
	}
	return items[index], nil
}

// ChooseMap returns one random value of m, selected by position among the
// sorted keys.
func ChooseMap[K constraints.Ordered, V any](r *SecureRandom, m map[K]V) (V, error) {
	var zero V
	if len(m) == 0 {
		return zero, fmt.Errorf("%w: cannot choose from an empty map", ErrInvalidArgument)
	}

	key, err := Choose(r, sortedKeys(m))
	if err != nil {
		return zero, err
	}
	return m[key], nil
}

// Sequence returns length elements chosen from choices, with replacement.
func Sequence[T any](r *SecureRandom, choices []T, length int) ([]T, error) {
	switch {
	case length < 0:
		return nil, fmt.Errorf("%w: invalid sequence length %d", ErrInvalidArgument, length)
	case length == 0:
		return []T{}, nil
	case len(choices) == 0:
		return nil, fmt.Errorf("%w: cannot generate sequence from empty value set", ErrInvalidArgument)
	}

	size := int64(len(choices))
	result := make([]T, length)
	for i := range result {
		index, err := r.gen.Number(0, size-1)
		if err != nil {
			return nil, err
		}
		result[i] = choices[index]
	}
	return result, nil
}

// pick runs a partial Fisher-Yates shuffle over keys. keys is modified.
func pick[K any, V any](r *SecureRandom, keys []K, value func(K) V, count int) (Entries[K, V], error) {
	size := len(keys)
	if count < 0 || count > size {
		return nil, fmt.Errorf("%w: invalid number of elements %d for %d items", ErrInvalidArgument, count, size)
	}

	result := make(Entries[K, V], 0, count)
	for i := 0; i < count; i++ {
		index, err := r.gen.Number(int64(i), int64(size-1))
		if err != nil {
			return nil, err
		}

		key := keys[index]
		result = append(result, Entry[K, V]{
			Key:   key,
			Value: value(key),
		})
		keys[index] = keys[i]
	}
	return result, nil
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
