package config

import "sync"

type safe struct{}

// Concurrent makes concurrency safe get methods available.
var Concurrent = &safe{}

// locked serializes calls to a cached getter, which refreshes its value in place.
func locked[T any](get func() T) func() T {
	var lock sync.Mutex
	return func() T {
		lock.Lock()
		defer lock.Unlock()
		return get()
	}
}

// GetAsString is the locked variant of GetAsString.
func (cs *safe) GetAsString(name string, fallback string) StringOption {
	return locked[string](GetAsString(name, fallback))
}

// GetAsStringArray is the locked variant of GetAsStringArray.
func (cs *safe) GetAsStringArray(name string, fallback []string) StringArrayOption {
	return locked[[]string](GetAsStringArray(name, fallback))
}

// GetAsInt is the locked variant of GetAsInt.
func (cs *safe) GetAsInt(name string, fallback int64) IntOption {
	return locked[int64](GetAsInt(name, fallback))
}
