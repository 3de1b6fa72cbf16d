package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/pkg/money"
)

// RawConfig is a parsed but untyped scenario document, as produced by the
// YAML or JSON decoders. The simulation engine performs its own coercion
// from it, so a value is checked the same way whichever collaborator
// produced the document.
type RawConfig map[string]any

// TimeFrequency is the period granularity named by a scenario. Only YEAR
// changes nothing; the others are accepted for forward compatibility and
// have no computational effect.
type TimeFrequency string

const (
	FrequencyYear  TimeFrequency = "YEAR"
	FrequencyMonth TimeFrequency = "MONTH"
	FrequencyDay   TimeFrequency = "DAY"
)

// ParseTimeFrequency accepts YEAR, MONTH or DAY in any letter case.
func ParseTimeFrequency(s string) (TimeFrequency, error) {
	switch f := TimeFrequency(strings.ToUpper(strings.TrimSpace(s))); f {
	case FrequencyYear, FrequencyMonth, FrequencyDay:
		return f, nil
	}
	return "", fmt.Errorf("invalid time_frequency %q: must be YEAR, MONTH, or DAY", s)
}

// AsMap returns v as a string-keyed map when it is one. YAML mappings with
// non-string keys are converted when every key is a string.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawConfig:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// RequireField returns m[key] or a missing-field error naming prefix.key.
func RequireField(m map[string]any, prefix, key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, MissingField(joinPath(prefix, key))
	}
	return v, nil
}

// RequireInt reads a required integer field.
func RequireInt(m map[string]any, prefix, key string) (int, error) {
	v, err := RequireField(m, prefix, key)
	if err != nil {
		return 0, err
	}
	i, err := money.IntFromAny(v)
	if err != nil {
		return 0, InvalidField(joinPath(prefix, key), v, err)
	}
	return i, nil
}

// RequireDecimal reads a required numeric field.
func RequireDecimal(m map[string]any, prefix, key string) (decimal.Decimal, error) {
	v, err := RequireField(m, prefix, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := money.FromAny(v)
	if err != nil {
		return decimal.Zero, InvalidField(joinPath(prefix, key), v, err)
	}
	return d, nil
}

// OptionalDecimal reads a numeric field, falling back to def when absent.
// A present but null value is an error, not a default.
func OptionalDecimal(m map[string]any, prefix, key string, def decimal.Decimal) (decimal.Decimal, error) {
	if _, ok := m[key]; !ok {
		return def, nil
	}
	return RequireDecimal(m, prefix, key)
}

// RequireString reads a required scalar field as text. Numbers and booleans
// are rendered as written; null and collections are rejected.
func RequireString(m map[string]any, prefix, key string) (string, error) {
	v, err := RequireField(m, prefix, key)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s), nil
	}
	return "", InvalidField(joinPath(prefix, key), v, errors.New("expected a string"))
}

// OptionalString reads a text field, falling back to def when absent.
func OptionalString(m map[string]any, prefix, key, def string) (string, error) {
	if _, ok := m[key]; !ok {
		return def, nil
	}
	return RequireString(m, prefix, key)
}

// RequireMap reads a required nested mapping.
func RequireMap(m map[string]any, prefix, key string) (map[string]any, error) {
	v, err := RequireField(m, prefix, key)
	if err != nil {
		return nil, err
	}
	sub, ok := AsMap(v)
	if !ok {
		return nil, InvalidField(joinPath(prefix, key), v, errors.New("expected a mapping"))
	}
	return sub, nil
}

// RequireList reads a required sequence.
func RequireList(m map[string]any, prefix, key string) ([]any, error) {
	v, err := RequireField(m, prefix, key)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, InvalidField(joinPath(prefix, key), v, errors.New("expected a list"))
	}
	return list, nil
}

// OptionalList reads a sequence that may be absent or null.
func OptionalList(m map[string]any, prefix, key string) ([]any, error) {
	if v, ok := m[key]; !ok || v == nil {
		return nil, nil
	}
	return RequireList(m, prefix, key)
}
