package config

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

var (
	optionsLock sync.RWMutex
	options     = make(map[string]*Option)
)

// ForEachOption calls fn for each defined option. If fn returns
// and error the iteration is stopped and the error is returned.
// Note that ForEachOption does not guarantee a stable order of
// iteration between multiple calles. ForEachOption does NOT lock
// opt when calling fn.
func ForEachOption(fn func(opt *Option) error) error {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	for _, opt := range options {
		if err := fn(opt); err != nil {
			return err
		}
	}
	return nil
}

// ExportOptions exports the registered option keys, sorted.
func ExportOptions() []string {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetOption returns the option with name or an error
// if the option does not exist. The caller should lock
// the returned option itself for further processing.
func GetOption(name string) (*Option, error) {
	optionsLock.RLock()
	defer optionsLock.RUnlock()

	opt, ok := options[name]
	if !ok {
		return nil, ErrUnknownOption
	}
	return opt, nil
}

// Register registers a new configuration option.
func Register(option *Option) error {
	if option.Name == "" {
		return fmt.Errorf("failed to register option: please set option.Name")
	}
	if option.Key == "" {
		return fmt.Errorf("failed to register option: please set option.Key")
	}
	if option.Description == "" {
		return fmt.Errorf("failed to register option: please set option.Description")
	}
	if option.ExpertiseLevel == 0 {
		return fmt.Errorf("failed to register option: please set option.ExpertiseLevel")
	}
	if option.OptType == 0 {
		return fmt.Errorf("failed to register option: please set option.OptType")
	}

	if option.ValidationRegex != "" {
		var err error
		option.compiledRegex, err = regexp.Compile(option.ValidationRegex)
		if err != nil {
			return newInvalidOptionError("could not compile option.ValidationRegex", err)
		}
	}

	if option.DefaultValue != nil {
		if _, err := validateValue(option, option.DefaultValue); err != nil {
			return newInvalidOptionError(fmt.Sprintf("default value of %s (%s) is invalid", option.Key, getTypeName(option.OptType)), err)
		}
	}

	optionsLock.Lock()
	defer optionsLock.Unlock()
	options[option.Key] = option

	signalChanges()

	return nil
}
