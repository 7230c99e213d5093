package config

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// Layout mode names.
const (
	LayoutDefault    = "DEFAULT"
	LayoutWeakTree   = "WEAKTREE"
	LayoutStrongTree = "STRONGTREE"
	LayoutWeakFlow   = "WEAKFLOW"
	LayoutStrongFlow = "STRONGFLOW"
)

// LayoutSpec is the raw layout_mode value: a bare string or a
// single-element array of strings.
type LayoutSpec struct {
	values []string
}

// Layout returns a spec naming a single layout mode.
func Layout(name string) LayoutSpec {
	if name == "" {
		return LayoutSpec{}
	}
	return LayoutSpec{values: []string{name}}
}

// Name returns the configured mode name, or "" when unset.
func (s LayoutSpec) Name() string {
	if len(s.values) == 0 {
		return ""
	}
	return s.values[0]
}

// Validate rejects sequences with more than one element.
func (s LayoutSpec) Validate() error {
	if len(s.values) > 1 {
		return errors.New(errors.ErrCodeInvalidLayout, "layout_mode must be a string or a single-element list, got %d elements", len(s.values))
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *LayoutSpec) UnmarshalTOML(v any) error {
	return s.assign(v)
}

// MarshalTOML implements toml.Marshaler.
func (s LayoutSpec) MarshalTOML() ([]byte, error) {
	return []byte(strconv.Quote(s.Name())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *LayoutSpec) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return s.assign(v)
}

// MarshalJSON implements json.Marshaler.
func (s LayoutSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name())
}

func (s *LayoutSpec) assign(v any) error {
	switch t := v.(type) {
	case nil:
		s.values = nil
	case string:
		*s = Layout(t)
	case []any:
		vals := make([]string, 0, len(t))
		for _, e := range t {
			str, ok := e.(string)
			if !ok {
				return fmt.Errorf("layout_mode: list elements must be strings, got %T", e)
			}
			vals = append(vals, str)
		}
		s.values = vals
	default:
		return fmt.Errorf("layout_mode: expected string or list, got %T", v)
	}
	return nil
}
