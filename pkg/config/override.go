package config

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// KeepSame is the configuration keyword for an unset [Override].
const KeepSame = "SAME"

// Override is an optional style value. The zero Override keeps the base
// value it is applied to.
type Override[T string | float64] struct {
	Value T
	Set   bool
}

// Use returns an override that replaces the base value with v.
func Use[T string | float64](v T) Override[T] {
	return Override[T]{Value: v, Set: true}
}

// Same returns an override that keeps the base value.
func Same[T string | float64]() Override[T] {
	return Override[T]{}
}

// Or returns the override value if set, else base.
func (o Override[T]) Or(base T) T {
	if o.Set {
		return o.Value
	}
	return base
}

// String returns KeepSame for an unset override.
func (o Override[T]) String() string {
	if !o.Set {
		return KeepSame
	}
	return fmt.Sprint(o.Value)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (o *Override[T]) UnmarshalTOML(v any) error {
	return o.assign(v)
}

// MarshalTOML implements toml.Marshaler.
func (o Override[T]) MarshalTOML() ([]byte, error) {
	if !o.Set {
		return []byte(strconv.Quote(KeepSame)), nil
	}
	switch v := any(o.Value).(type) {
	case string:
		return []byte(strconv.Quote(v)), nil
	case float64:
		return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
	}
	return nil, fmt.Errorf("unsupported override type %T", o.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Override[T]) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return o.assign(v)
}

// MarshalJSON implements json.Marshaler.
func (o Override[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return json.Marshal(KeepSame)
	}
	return json.Marshal(o.Value)
}

func (o *Override[T]) assign(v any) error {
	if s, ok := v.(string); ok && s == KeepSame {
		*o = Override[T]{}
		return nil
	}
	if v == nil {
		*o = Override[T]{}
		return nil
	}

	switch dst := any(&o.Value).(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("override: expected string, got %T", v)
		}
		*dst = s
	case *float64:
		switch n := v.(type) {
		case float64:
			*dst = n
		case int64:
			*dst = float64(n)
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return fmt.Errorf("override: %q is neither %s nor a number", n, KeepSame)
			}
			*dst = f
		default:
			return fmt.Errorf("override: expected number, got %T", v)
		}
	}
	o.Set = true
	return nil
}
