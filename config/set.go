package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tevino/abool"
)

var (
	// ErrInvalidJSON is returned by LoadFile if it receives invalid json.
	ErrInvalidJSON = errors.New("json string invalid")

	validityFlag     = abool.NewBool(true)
	validityFlagLock sync.RWMutex
)

// getValidityFlag returns a flag that signifies if the configuration has been changed. This flag must not be changed, only read.
func getValidityFlag() *abool.AtomicBool {
	validityFlagLock.RLock()
	defer validityFlagLock.RUnlock()
	return validityFlag
}

// signalChanges marks the configs validtityFlag as dirty.
func signalChanges() {
	validityFlagLock.Lock()
	defer validityFlagLock.Unlock()

	validityFlag.SetTo(false)
	validityFlag = abool.NewBool(true)
}

// SetConfig replaces the (prioritized) user defined config. Options missing from newValues are reset.
func SetConfig(newValues map[string]interface{}) error {
	return replaceValues(newValues, func(option *Option, value *valueCache) {
		option.activeValue = value
	})
}

// SetDefaultConfig replaces the (fallback) default config. Options missing from newValues are reset.
func SetDefaultConfig(newValues map[string]interface{}) error {
	return replaceValues(newValues, func(option *Option, value *valueCache) {
		option.activeDefaultValue = value
	})
}

func replaceValues(newValues map[string]interface{}, apply func(*Option, *valueCache)) error {
	var firstErr error
	var errCnt int

	// RLock the options because we are not adding or removing
	// options from the registration but rather only update the
	// options value which is guarded by the option's lock itself
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	for key, option := range options {
		newValue, ok := newValues[key]

		option.Lock()
		apply(option, nil)
		if ok {
			valueCache, err := validateValue(option, newValue)
			if err == nil {
				apply(option, valueCache)
			} else {
				errCnt++
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		option.Unlock()
	}

	signalChanges()

	if firstErr != nil {
		if errCnt > 1 {
			return fmt.Errorf("encountered %d errors, first was: %w", errCnt, firstErr)
		}
		return firstErr
	}

	return nil
}

// SetConfigOption sets a single value in the (prioritized) user defined config. A nil value resets the option.
func SetConfigOption(key string, value interface{}) error {
	return setOptionValue(key, value, func(option *Option, value *valueCache) {
		option.activeValue = value
	})
}

// SetDefaultConfigOption sets a single value in the (fallback) default config. A nil value resets the option.
func SetDefaultConfigOption(key string, value interface{}) error {
	return setOptionValue(key, value, func(option *Option, value *valueCache) {
		option.activeDefaultValue = value
	})
}

func setOptionValue(key string, value interface{}, apply func(*Option, *valueCache)) (err error) {
	option, err := GetOption(key)
	if err != nil {
		return err
	}

	option.Lock()
	if value == nil {
		apply(option, nil)
	} else {
		var valueCache *valueCache
		valueCache, err = validateValue(option, value)
		if err == nil {
			apply(option, valueCache)
		}
	}
	option.Unlock()

	if err != nil {
		return err
	}

	// finalize change, activate triggers
	signalChanges()
	return nil
}
