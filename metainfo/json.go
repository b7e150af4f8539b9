package metainfo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/cosunae/serialbox2/domain/errors"
)

type node struct {
	TypeID *TypeID         `json:"type_id"`
	Value  json.RawMessage `json:"value"`
}

// MarshalJSON encodes the map as {"key": {"type_id": N, "value": v}}.
// An empty map encodes as null.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m.Empty() {
		return []byte("null"), nil
	}

	out := make(map[string]node, len(m.values))
	for k, v := range m.values {
		raw, err := encodeValue(v)
		if err != nil {
			return nil, &errors.MetaInfoError{Key: k, Err: err}
		}
		typ := v.typ
		out[k] = node{TypeID: &typ, Value: raw}
	}
	return json.Marshal(out)
}

// UnmarshalJSON inserts every entry of data. null clears the map.
// Keys already present keep their value.
func (m *Map) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		m.Clear()
		return nil
	}

	var nodes map[string]node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return &errors.MetaInfoError{Err: fmt.Errorf("JSON node ill-formed: %w", err)}
	}

	for k, n := range nodes {
		if n.TypeID == nil {
			return &errors.MetaInfoError{Key: k, Err: fmt.Errorf("JSON node ill-formed: no node 'type_id'")}
		}
		if n.Value == nil {
			return &errors.MetaInfoError{Key: k, Err: fmt.Errorf("JSON node ill-formed: no node 'value'")}
		}
		v, err := decodeValue(*n.TypeID, n.Value)
		if err != nil {
			return &errors.MetaInfoError{Key: k, Err: err}
		}
		if _, err := m.Insert(k, v); err != nil {
			return err
		}
	}
	return nil
}

// String renders the values only, as indented JSON. An empty map renders as null.
func (m *Map) String() string {
	if m.Empty() {
		return "MetaInfoMap = null"
	}
	values := make(map[string]json.RawMessage, len(m.values))
	for k, v := range m.values {
		raw, err := encodeValue(v)
		if err != nil {
			raw = json.RawMessage(strconv.Quote(fmt.Sprint(v.v)))
		}
		values[k] = raw
	}
	dump, _ := json.MarshalIndent(values, "", "    ")
	return "MetaInfoMap = " + string(dump)
}

func encodeValue(v Value) (json.RawMessage, error) {
	switch x := v.v.(type) {
	case float32:
		return encodeFloat(float64(x), 32)
	case float64:
		return encodeFloat(x, 64)
	default:
		return json.Marshal(x)
	}
}

// encodeFloat always writes a fraction or exponent so the number decodes as a float again.
func encodeFloat(f float64, bits int) (json.RawMessage, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%v cannot be represented in JSON", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !bytes.ContainsAny([]byte(s), ".eE") {
		s += ".0"
	}
	return json.RawMessage(s), nil
}

func isFloatLiteral(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return false
	}
	return bytes.ContainsAny(raw, ".eE")
}

// isNull reports a JSON null literal; json.Unmarshal leaves scalars untouched on null.
func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeValue(typ TypeID, raw json.RawMessage) (any, error) {
	var err error
	null := isNull(raw)
	switch typ {
	case Boolean:
		var b bool
		if !null {
			if err = json.Unmarshal(raw, &b); err == nil {
				return b, nil
			}
		}
		return nil, fmt.Errorf("not recognized as boolean: %s", raw)
	case Int32:
		var i int32
		if !null && !isFloatLiteral(raw) {
			if err = json.Unmarshal(raw, &i); err == nil {
				return i, nil
			}
		}
		return nil, fmt.Errorf("not recognized as integer: %s", raw)
	case Int64:
		var i int64
		if !null && !isFloatLiteral(raw) {
			if err = json.Unmarshal(raw, &i); err == nil {
				return i, nil
			}
		}
		return nil, fmt.Errorf("not recognized as integer: %s", raw)
	case Float32:
		var f float32
		if isFloatLiteral(raw) {
			if err = json.Unmarshal(raw, &f); err == nil {
				return f, nil
			}
		}
		return nil, fmt.Errorf("not recognized as floating point number: %s", raw)
	case Float64:
		var f float64
		if isFloatLiteral(raw) {
			if err = json.Unmarshal(raw, &f); err == nil {
				return f, nil
			}
		}
		return nil, fmt.Errorf("not recognized as floating point number: %s", raw)
	case String:
		var s string
		if !null {
			if err = json.Unmarshal(raw, &s); err == nil {
				return s, nil
			}
		}
		return nil, fmt.Errorf("not recognized as string: %s", raw)
	default:
		return nil, fmt.Errorf("invalid type_id %d", int(typ))
	}
}
