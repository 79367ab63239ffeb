// Package audit records every intermediate figure a proportioning run
// produces, addressed by dotted key paths over a shape declared up front,
// together with the calculation errors raised along the way.
package audit

import (
	"fmt"
	"log/slog"
	"strings"
)

// Shape builds the empty nested map a method publishes into. Every branch
// the method will touch must exist; leaves may be added under an existing
// branch as the run progresses.
type Shape func() map[string]any

// Trail is the audit store for one proportioning run.
type Trail struct {
	shape  Shape
	data   map[string]any
	errors map[string]string
	order  []string
	log    *slog.Logger
}

// NewTrail returns a trail initialized from shape. The logger is required;
// the trail never falls back to a global one.
func NewTrail(shape Shape, log *slog.Logger) *Trail {
	return &Trail{
		shape:  shape,
		data:   shape(),
		errors: make(map[string]string),
		log:    log,
	}
}

// Update stores value at a dotted key path such as
// "cementitious_material.cement.cement_content". Every intermediate segment
// must already exist as a branch; the leaf itself is created when absent.
func (t *Trail) Update(keyPath string, value any) error {
	keys := strings.Split(keyPath, ".")
	node := t.data
	for _, key := range keys[:len(keys)-1] {
		child, ok := node[key]
		if !ok {
			t.log.Error("invalid key path", "path", keyPath, "segment", key)
			return fmt.Errorf("invalid key path %q: missing segment %q", keyPath, key)
		}
		branch, ok := child.(map[string]any)
		if !ok {
			t.log.Error("invalid key path", "path", keyPath, "segment", key)
			return fmt.Errorf("invalid key path %q: segment %q is not a branch", keyPath, key)
		}
		node = branch
	}
	node[keys[len(keys)-1]] = value
	t.log.Debug("updated", "path", keyPath, "value", value)
	return nil
}

// Get returns the value stored at a dotted key path. Unlike Update, the full
// path including the leaf must exist.
func (t *Trail) Get(keyPath string) (any, error) {
	keys := strings.Split(keyPath, ".")
	var node any = t.data
	for _, key := range keys {
		branch, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid key path %q: segment %q is not a branch", keyPath, key)
		}
		child, ok := branch[key]
		if !ok {
			t.log.Error("invalid key path", "path", keyPath, "segment", key)
			return nil, fmt.Errorf("invalid key path %q: missing segment %q", keyPath, key)
		}
		node = child
	}
	return node, nil
}

// Float returns the value at keyPath as a float64.
func (t *Trail) Float(keyPath string) (float64, error) {
	v, err := t.Get(keyPath)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value at %q is %T, not a number", keyPath, v)
	}
}

// Data exposes the underlying map for serialization.
func (t *Trail) Data() map[string]any {
	return t.data
}

// AddError registers a calculation error for a section. Sections are stored
// uppercased and only the first error per section is kept, so a stage that
// fails repeatedly reports once.
func (t *Trail) AddError(section, message string) {
	key := strings.ToUpper(section)
	if _, ok := t.errors[key]; ok {
		return
	}
	t.errors[key] = message
	t.order = append(t.order, key)
	t.log.Info("calculation error", "section", key, "message", message)
}

// ClearErrors drops the error registered for a section, or every error when
// section is empty.
func (t *Trail) ClearErrors(section string) {
	if section == "" {
		t.errors = make(map[string]string)
		t.order = nil
		return
	}
	key := strings.ToUpper(section)
	if _, ok := t.errors[key]; !ok {
		return
	}
	delete(t.errors, key)
	for i, s := range t.order {
		if s == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Errors returns a copy of the registered errors keyed by section.
func (t *Trail) Errors() map[string]string {
	out := make(map[string]string, len(t.errors))
	for k, v := range t.errors {
		out[k] = v
	}
	return out
}

// ErrorSections returns the failed sections in registration order.
func (t *Trail) ErrorSections() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// HasErrors reports whether any calculation error was registered.
func (t *Trail) HasErrors() bool {
	return len(t.errors) > 0
}

// Reset restores the declared shape and clears the error registry.
func (t *Trail) Reset() {
	t.data = t.shape()
	t.errors = make(map[string]string)
	t.order = nil
	t.log.Info("audit trail restored")
}
