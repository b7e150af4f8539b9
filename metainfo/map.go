package metainfo

import (
	stdErrors "errors"
	"sort"

	"github.com/cosunae/serialbox2/domain/errors"
)

// ErrNoKey is wrapped by At when the key is absent.
var ErrNoKey = stdErrors.New("no such key")

// Map is the meta-information map.
type Map struct {
	values map[string]Value
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]Value)}
}

// Insert adds key with value. It returns false, leaving the map untouched,
// when the key already exists.
func (m *Map) Insert(key string, value any) (bool, error) {
	v, err := NewValue(value)
	if err != nil {
		return false, &errors.MetaInfoError{Key: key, Err: err}
	}
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, exists := m.values[key]; exists {
		return false, nil
	}
	m.values[key] = v
	return true, nil
}

// HasKey reports whether key is present.
func (m *Map) HasKey(key string) bool {
	_, ok := m.values[key]
	return ok
}

// At returns the value stored under key.
func (m *Map) At(key string) (Value, error) {
	v, ok := m.values[key]
	if !ok {
		return Value{}, &errors.MetaInfoError{Key: key, Err: ErrNoKey}
	}
	return v, nil
}

// Erase removes key and reports whether it was present.
func (m *Map) Erase(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	return true
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.values = make(map[string]Value)
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.values) }

// Empty reports whether the map has no entries.
func (m *Map) Empty() bool { return len(m.values) == 0 }

// Keys returns the keys in sorted order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both maps hold the same keys with equal values.
// A nil map equals an empty one.
func (m *Map) Equal(o *Map) bool {
	if m == nil || o == nil {
		return (m == nil || m.Empty()) && (o == nil || o.Empty())
	}
	if m.Len() != o.Len() {
		return false
	}
	for k, v := range m.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
