package provider

import (
	"encoding/json"
	"strconv"

	"github.com/bytedance/sonic"
)

// Kind tags the variant held by a Value.
type Kind uint8

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

// Value is an untrusted upstream JSON value. Every accessor is total: asking
// for the wrong variant returns the zero value and ok=false instead of failing.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	lit  string // number literal as sent upstream, when decoded from JSON
	arr  []Value
	obj  map[string]Value
}

// Null is the absent value.
var Null = Value{}

// decoder keeps numbers as json.Number so large ids survive intact.
var decoder = sonic.Config{UseNumber: true}.Froze()

// Parse decodes an upstream body into a Value.
func Parse(data []byte) (Value, error) {
	var raw interface{}
	if err := decoder.Unmarshal(data, &raw); err != nil {
		return Null, err
	}
	return FromAny(raw), nil
}

// FromAny converts a decoded JSON tree (maps, slices, scalars) into a Value.
// Unknown Go types become Null.
func FromAny(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case bool:
		return BoolValue(t)
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return StringValue(t.String())
		}
		return Value{kind: KindNumber, n: f, lit: t.String()}
	case string:
		return StringValue(t)
	case []interface{}:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return Value{kind: KindArray, arr: items}
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = FromAny(item)
		}
		return Value{kind: KindObject, obj: fields}
	default:
		return Null
	}
}

func BoolValue(b bool) Value      { return Value{kind: KindBool, b: b} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }
func StringValue(s string) Value  { return Value{kind: KindString, s: s} }

func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

func ObjectValue(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, obj: fields}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Get returns the field under key, or Null when v is not an object or the
// key is missing.
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Null
	}
	return v.obj[key]
}

// Has reports whether v is an object carrying key (even if its value is null).
func (v Value) Has(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj[key]
	return ok
}

// Array returns the elements of an array value, nil otherwise.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

func (v Value) Num() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Text coerces a string or number scalar to its textual form. Provider ids
// arrive as either.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindNumber:
		if i, ok := v.exactInt(); ok {
			return strconv.FormatInt(i, 10), true
		}
		return strconv.FormatFloat(v.n, 'f', -1, 64), true
	default:
		return "", false
	}
}

// exactInt returns the integer a number literal spells, without a float
// round trip.
func (v Value) exactInt() (int64, bool) {
	if v.kind != KindNumber || v.lit == "" {
		return 0, false
	}
	i, err := strconv.ParseInt(v.lit, 10, 64)
	return i, err == nil
}

// Truthy mirrors loose upstream semantics: null, false, 0, "" and empty
// collections are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString, KindArray, KindObject:
		return v.Len() > 0
	default:
		return false
	}
}

// Any converts v back into plain Go values.
func (v Value) Any() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.lit != "" {
			return json.Number(v.lit)
		}
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Any()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.Any()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON lets opaque payloads pass straight through to responses.
func (v Value) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(v.Any())
}
