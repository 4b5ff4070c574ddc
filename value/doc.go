// Package value implements the structured value union crossing the
// browser boundary, plus the codec projecting Go values onto it.
//
// A Value is one of: null, bool, number, string, array, or an ordered
// string-keyed object. Arguments arrive from the browser as JSON text and
// are parsed with Parse; handler results are projected with Encode and
// serialized back with MarshalJSON. Object member order is preserved in
// both directions.
//
// Round-trip law: for any representable Go value t,
//
//	var got T
//	v, _ := value.Encode(t)
//	_ = value.DecodeInto(v, &got) // got == t
package value
