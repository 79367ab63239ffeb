// Package mix exposes the design-input document behind a typed, dotted-path
// store. The document is the single YAML file a design run receives; the
// pipelines read from the store and never hold the raw map.
package mix

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mfreitez/concremix/internal/matcalc"
)

// Store reads typed values at dotted key paths such as
// "fine_aggregate.physical_prop.relative_density_SSD".
type Store interface {
	Float(keyPath string) (float64, error)
	Int(keyPath string) (int, error)
	Str(keyPath string) (string, error)
	Bool(keyPath string) (bool, error)
	Strings(keyPath string) ([]string, error)
	Grading(keyPath string) (map[string]float64, error)
	Has(keyPath string) bool
}

// MapStore is a Store over a nested map, usually decoded from YAML.
type MapStore struct {
	data map[string]any
}

// NewMapStore wraps an already-built document.
func NewMapStore(data map[string]any) *MapStore {
	return &MapStore{data: data}
}

// Load decodes a YAML design-input document.
func Load(r io.Reader) (*MapStore, error) {
	var data map[string]any
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding design input: %w", err)
	}
	return NewMapStore(data), nil
}

// LoadFile decodes the YAML design-input file at path.
func LoadFile(path string) (*MapStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening design input: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (s *MapStore) lookup(keyPath string) (any, error) {
	keys := strings.Split(keyPath, ".")
	var node any = s.data
	for _, key := range keys {
		branch, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q: %w", keyPath, matcalc.ErrMissingRequiredField)
		}
		child, ok := branch[key]
		if !ok {
			return nil, fmt.Errorf("%q: %w", keyPath, matcalc.ErrMissingRequiredField)
		}
		node = child
	}
	if node == nil {
		return nil, fmt.Errorf("%q: %w", keyPath, matcalc.ErrMissingRequiredField)
	}
	return node, nil
}

// Has reports whether keyPath resolves to a non-nil value.
func (s *MapStore) Has(keyPath string) bool {
	_, err := s.lookup(keyPath)
	return err == nil
}

// Float returns the value at keyPath as a float64. Integers decode as such.
func (s *MapStore) Float(keyPath string) (float64, error) {
	v, err := s.lookup(keyPath)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%q holds %T, want a number", keyPath, v)
	}
}

// Int returns the value at keyPath as an int.
func (s *MapStore) Int(keyPath string) (int, error) {
	v, err := s.lookup(keyPath)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%q holds %T, want an integer", keyPath, v)
	}
}

// Str returns the value at keyPath as a string.
func (s *MapStore) Str(keyPath string) (string, error) {
	v, err := s.lookup(keyPath)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q holds %T, want a string", keyPath, v)
	}
	return str, nil
}

// Bool returns the value at keyPath as a bool. A missing path reads as
// false, so optional check-boxes need no presence test.
func (s *MapStore) Bool(keyPath string) (bool, error) {
	v, err := s.lookup(keyPath)
	if err != nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%q holds %T, want a bool", keyPath, v)
	}
	return b, nil
}

// Strings returns the value at keyPath as a slice of strings.
func (s *MapStore) Strings(keyPath string) ([]string, error) {
	v, err := s.lookup(keyPath)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%q holds %T, want a list", keyPath, v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%q holds a %T item, want strings", keyPath, item)
		}
		out = append(out, str)
	}
	return out, nil
}

// Grading returns the value at keyPath as sieve designation -> percent
// passing (or retained, per the document).
func (s *MapStore) Grading(keyPath string) (map[string]float64, error) {
	v, err := s.lookup(keyPath)
	if err != nil {
		return nil, err
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q holds %T, want a mapping", keyPath, v)
	}
	out := make(map[string]float64, len(raw))
	for sieve, pv := range raw {
		switch n := pv.(type) {
		case float64:
			out[sieve] = n
		case int:
			out[sieve] = float64(n)
		case nil:
			// An explicit null marks a sieve that was not measured.
		default:
			return nil, fmt.Errorf("%q sieve %q holds %T, want a number", keyPath, sieve, pv)
		}
	}
	return out, nil
}
