package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUninitialized is returned when a simulation is run before a scenario was loaded.
	ErrUninitialized = errors.New("simulation engine is not properly initialized")

	// ErrInvalidValue is returned when an explicit override carries an impossible value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMemberNotFound is carried by the warning emitted for a job change that names
	// nobody in the household. It is never returned as a failure.
	ErrMemberNotFound = errors.New("member not found in household")
)

// ConfigurationError reports a missing or non-convertible configuration field.
// Field is a dotted path such as "household.members[1].income".
type ConfigurationError struct {
	Field   string
	Value   any
	Missing bool
	Err     error
}

// MissingField builds the error for an absent required key.
func MissingField(field string) *ConfigurationError {
	return &ConfigurationError{Field: field, Missing: true}
}

// InvalidField builds the error for a value that cannot be used.
func InvalidField(field string, value any, err error) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Err: err}
}

func (e *ConfigurationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("missing required configuration field: '%s'", e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration value for '%s' (%v): %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid configuration value for '%s': %v", e.Field, e.Value)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is lets callers test any configuration failure with errors.Is(err, ErrConfiguration).
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
