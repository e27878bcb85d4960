package provider

import (
	"math"
	"strconv"
	"strings"
)

// Unknown is the placeholder name used when an entity has no usable shape.
const Unknown = "Desconhecido"

// Shape tells Extract what the caller expects the payload to hold.
type Shape uint8

const (
	// ShapeCollection is used by list endpoints; unrecognized payloads yield
	// an empty collection.
	ShapeCollection Shape = iota
	// ShapeRecord is used by single-entity endpoints; an object without a
	// records key is treated as the record itself.
	ShapeRecord
)

// collectionKeys are tried in order when a payload wraps its records.
var collectionKeys = []string{"matches", "data"}

// Extract locates the records inside an upstream payload.
//
// Objects are searched for a "matches" then "data" array. Arrays are used as
// they are. Anything else yields an empty slice. The result is never nil.
func Extract(raw Value, shape Shape) []Value {
	switch raw.Kind() {
	case KindObject:
		for _, key := range collectionKeys {
			if items := raw.Get(key); items.Kind() == KindArray {
				return nonNil(items.Array())
			}
		}
		if shape == ShapeRecord {
			return []Value{raw}
		}
		return []Value{}
	case KindArray:
		return nonNil(raw.Array())
	default:
		return []Value{}
	}
}

func nonNil(items []Value) []Value {
	if items == nil {
		return []Value{}
	}
	return items
}

// Entity is a named upstream reference (player, tournament, news source).
type Entity struct {
	Name *string `json:"name"`
	ID   *string `json:"id"`
}

// EntityOf reads an entity that providers send either as {name, id} or as a
// bare string. Other shapes get the Unknown name and no id.
func EntityOf(v Value) Entity {
	switch v.Kind() {
	case KindObject:
		return Entity{Name: OptString(v, "name"), ID: OptText(v, "id")}
	case KindString:
		s, _ := v.Str()
		return Entity{Name: &s}
	default:
		name := Unknown
		return Entity{Name: &name}
	}
}

// FirstPresent returns the first non-null field among keys.
func FirstPresent(v Value, keys ...string) Value {
	for _, key := range keys {
		if field := v.Get(key); !field.IsNull() {
			return field
		}
	}
	return Null
}

// OptString returns the first string field among keys.
func OptString(v Value, keys ...string) *string {
	for _, key := range keys {
		if s, ok := v.Get(key).Str(); ok {
			return &s
		}
	}
	return nil
}

// OptText returns the first string or number field among keys, as text.
func OptText(v Value, keys ...string) *string {
	for _, key := range keys {
		if s, ok := v.Get(key).Text(); ok {
			return &s
		}
	}
	return nil
}

// OptInt returns the first field among keys that is an integral number or a
// numeric string.
func OptInt(v Value, keys ...string) *int {
	for _, key := range keys {
		if n, ok := intOf(v.Get(key)); ok {
			i := int(n)
			return &i
		}
	}
	return nil
}

// OptInt64 is OptInt for wide values such as epoch timestamps.
func OptInt64(v Value, keys ...string) *int64 {
	for _, key := range keys {
		if n, ok := intOf(v.Get(key)); ok {
			return &n
		}
	}
	return nil
}

func intOf(v Value) (int64, bool) {
	switch v.Kind() {
	case KindNumber:
		if i, ok := v.exactInt(); ok {
			return i, true
		}
		n, _ := v.Num()
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case KindString:
		s, _ := v.Str()
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// OptObject returns the first object field among keys as plain Go values.
func OptObject(v Value, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if field := v.Get(key); field.Kind() == KindObject {
			out, _ := field.Any().(map[string]interface{})
			return out
		}
	}
	return nil
}
