package baasbox

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Kind is the JSON kind of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a decoded JSON value of any kind. Payload shapes differ per
// endpoint, so responses are handed back generically and callers either walk
// them with Get/Index or Decode them into their own types.
//
// Numbers are kept as json.Number so large ids survive the round trip.
type Value struct {
	v interface{}
}

// NewValue wraps an already decoded JSON value (map[string]interface{},
// []interface{}, string, bool, json.Number, float64, nil).
func NewValue(v interface{}) Value {
	return Value{v: v}
}

// ParseValue decodes raw JSON into a Value.
func ParseValue(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Value{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return Value{}, fmt.Errorf("failed to decode JSON value: %w", err)
	}
	return Value{v: v}, nil
}

// Kind returns the JSON kind of the value.
func (v Value) Kind() Kind {
	switch v.v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, float64, float32, int, int64:
		return KindNumber
	case string:
		return KindString
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	default:
		return KindNull
	}
}

// IsNull reports whether the value is JSON null (or absent).
func (v Value) IsNull() bool {
	return v.v == nil
}

// Interface returns the underlying decoded value.
func (v Value) Interface() interface{} {
	return v.v
}

// Get returns the member key of an object, or a null Value.
func (v Value) Get(key string) Value {
	m, ok := v.v.(map[string]interface{})
	if !ok {
		return Value{}
	}
	return Value{v: m[key]}
}

// Index returns element i of an array, or a null Value.
func (v Value) Index(i int) Value {
	s, ok := v.v.([]interface{})
	if !ok || i < 0 || i >= len(s) {
		return Value{}
	}
	return Value{v: s[i]}
}

// Len returns the number of elements of an array or members of an object.
func (v Value) Len() int {
	switch t := v.v.(type) {
	case []interface{}:
		return len(t)
	case map[string]interface{}:
		return len(t)
	}
	return 0
}

// Map returns the members of an object, or nil.
func (v Value) Map() map[string]interface{} {
	m, _ := v.v.(map[string]interface{})
	return m
}

// Slice returns the elements of an array, or nil.
func (v Value) Slice() []interface{} {
	s, _ := v.v.([]interface{})
	return s
}

// AsString returns the value if it is a JSON string.
func (v Value) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

// AsBool returns the value if it is a JSON bool.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

// AsInt64 returns the value if it is a JSON number representable as int64.
func (v Value) AsInt64() (int64, bool) {
	switch n := v.v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		return int64(n), float64(int64(n)) == n
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// AsFloat64 returns the value if it is a JSON number.
func (v Value) AsFloat64() (float64, bool) {
	switch n := v.v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// String renders the value as compact JSON.
func (v Value) String() string {
	b, err := json.Marshal(v.v)
	if err != nil {
		return fmt.Sprintf("%v", v.v)
	}
	return string(b)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Decode copies the value into out, which must be a pointer. Struct fields are
// matched by their json tag.
func (v Value) Decode(out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(v.v); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}
