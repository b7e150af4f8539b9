package metainfo

import (
	"fmt"
	"math"
)

// TypeID identifies the type of a stored value. The numbering matches the
// type_id field of the JSON representation.
type TypeID int

const (
	Invalid TypeID = iota
	Boolean
	Int32
	Int64
	Float32
	Float64
	String
)

func (t TypeID) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "invalid"
	}
}

// Value is one typed entry of a Map.
type Value struct {
	typ TypeID
	v   any
}

// NewValue wraps a Go value. int and int64 become Int64, int32 stays Int32.
func NewValue(v any) (Value, error) {
	switch x := v.(type) {
	case bool:
		return Value{Boolean, x}, nil
	case int32:
		return Value{Int32, x}, nil
	case int:
		return Value{Int64, int64(x)}, nil
	case int64:
		return Value{Int64, x}, nil
	case float32:
		return Value{Float32, x}, nil
	case float64:
		return Value{Float64, x}, nil
	case string:
		return Value{String, x}, nil
	case Value:
		if x.typ == Invalid {
			return Value{}, fmt.Errorf("invalid value")
		}
		return x, nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", v)
	}
}

// Type returns the type of the value.
func (v Value) Type() TypeID { return v.typ }

// Interface returns the stored Go value.
func (v Value) Interface() any { return v.v }

func (v Value) mismatch(want TypeID) error {
	return fmt.Errorf("value is %s, not %s", v.typ, want)
}

// AsBool returns the value if it is a Boolean.
func (v Value) AsBool() (bool, error) {
	if b, ok := v.v.(bool); ok {
		return b, nil
	}
	return false, v.mismatch(Boolean)
}

// AsInt32 returns the value if it is an Int32.
func (v Value) AsInt32() (int32, error) {
	if i, ok := v.v.(int32); ok {
		return i, nil
	}
	return 0, v.mismatch(Int32)
}

// AsInt64 returns the value if it is an Int32 or an Int64.
func (v Value) AsInt64() (int64, error) {
	switch i := v.v.(type) {
	case int64:
		return i, nil
	case int32:
		return int64(i), nil
	}
	return 0, v.mismatch(Int64)
}

// AsFloat32 returns the value if it is a Float32.
func (v Value) AsFloat32() (float32, error) {
	if f, ok := v.v.(float32); ok {
		return f, nil
	}
	return 0, v.mismatch(Float32)
}

// AsFloat64 returns the value if it is a Float32 or a Float64.
func (v Value) AsFloat64() (float64, error) {
	switch f := v.v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	}
	return 0, v.mismatch(Float64)
}

// AsString returns the value if it is a String.
func (v Value) AsString() (string, error) {
	if s, ok := v.v.(string); ok {
		return s, nil
	}
	return "", v.mismatch(String)
}

// Equal reports whether both values have the same type and the same content.
// NaN equals NaN so that decoded maps compare equal to their source.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch a := v.v.(type) {
	case float32:
		b := o.v.(float32)
		return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
	case float64:
		b := o.v.(float64)
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	default:
		return v.v == o.v
	}
}
