package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
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
		return "unknown"
	}
}

// Member is a single key/value pair of an object. Objects keep their
// members in insertion order; the order survives JSON round trips.
type Member struct {
	Key   string
	Value Value
}

// Value is the structured wire representation for arguments and results
// crossing the browser boundary: null, bool, number, string, array or
// ordered object.
//
// The zero Value is null.
type Value struct {
	arr  []Value
	obj  []Member
	str  string
	num  float64
	b    bool
	kind Kind
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an array value holding the given items.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Object returns an object value holding the given members in order.
func Object(members ...Member) Value { return Value{kind: KindObject, obj: members} }

// Kind returns the variant stored in v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload. It is false unless Kind is KindBool.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the numeric payload. It is zero unless Kind is KindNumber.
func (v Value) AsNumber() float64 { return v.num }

// AsString returns the string payload. It is empty unless Kind is KindString.
func (v Value) AsString() string { return v.str }

// Items returns the array payload. It is nil unless Kind is KindArray.
func (v Value) Items() []Value { return v.arr }

// Members returns the object payload. It is nil unless Kind is KindObject.
func (v Value) Members() []Member { return v.obj }

// Get returns the member value for key and whether it exists.
// It is a linear scan; objects crossing the boundary are small.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether two values are structurally equal. Object member
// order is significant, matching the JSON text form.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num || (math.IsNaN(v.num) && math.IsNaN(other.num))
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for i := range v.obj {
			if v.obj[i].Key != other.obj[i].Key || !v.obj[i].Value.Equal(other.obj[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value as compact JSON text. Used for logging and
// debugging; the boundary form is produced by MarshalJSON.
func (v Value) String() string {
	var b strings.Builder
	v.writeJSON(&b)
	return b.String()
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
