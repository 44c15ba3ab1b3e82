package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOption is returned for keys that were never registered.
	ErrUnknownOption = errors.New("unknown option")
	// ErrUnsupportedType is returned for values no option type can hold.
	ErrUnsupportedType = errors.New("type not supported")
)

// InvalidOptionError is returned by Register for malformed options.
type InvalidOptionError struct {
	Msg string
	Err error
}

func newInvalidOptionError(msg string, err error) *InvalidOptionError {
	return &InvalidOptionError{Msg: msg, Err: err}
}

func (e *InvalidOptionError) Error() string {
	if e.Err == nil {
		return "config: invalid option: " + e.Msg
	}
	return fmt.Sprintf("config: invalid option: %s: %s", e.Msg, e.Err)
}

func (e *InvalidOptionError) Unwrap() error {
	return e.Err
}

// InvalidValueError is returned when a value does not fit its option.
type InvalidValueError struct {
	Option string
	Value  interface{}
	Msg    string
}

func newInvalidValueError(option string, value interface{}, msg string) *InvalidValueError {
	return &InvalidValueError{Option: option, Value: value, Msg: msg}
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("config: %s: value %+v rejected: %s", e.Option, e.Value, e.Msg)
}
