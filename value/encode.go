package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zouxu09/wef/errors"
)

// Encode projects a Go value onto the structured value union.
//
// Supported inputs: nil, Value, bool, all integer and float kinds, string,
// slices and arrays, map[string]T, structs (honoring `json` field tags),
// pointers and interfaces, and any type implementing json.Marshaler.
// Unsupported kinds (chan, func, complex) are a contract violation at the
// call site and yield an error rather than a partial value.
func Encode(v any) (Value, error) {
	if v == nil {
		return Null(), nil
	}
	return encodeReflect(reflect.ValueOf(v), nil)
}

func encodeReflect(rv reflect.Value, path []string) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	if rv.Type() == valueType {
		return rv.Interface().(Value), nil
	}

	if m, ok := marshaler(rv); ok {
		data, err := m.MarshalJSON()
		if err != nil {
			return Value{}, errors.New(errors.PhaseEncode, errors.KindInvalidJSON).
				Path(path...).
				GoType(rv.Type().String()).
				Detail("MarshalJSON failed").
				Cause(err).
				Build()
		}
		return Parse(data)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return encodeReflect(rv.Elem(), path)
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := encodeReflect(rv.Index(i), append(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return Array(items...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, errors.Unsupported(errors.PhaseEncode,
				fmt.Sprintf("map key type %s (only string keys)", rv.Type().Key()))
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		// Map iteration order is random; sort for a deterministic wire form.
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			item, err := encodeReflect(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())), append(path, k))
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: k, Value: item})
		}
		return Object(members...), nil
	case reflect.Struct:
		return encodeStruct(rv, path)
	default:
		return Value{}, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("kind %s cannot cross the boundary", rv.Kind()).
			Build()
	}
}

func encodeStruct(rv reflect.Value, path []string) (Value, error) {
	rt := rv.Type()
	members := make([]Member, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := fieldName(field)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		item, err := encodeReflect(fv, append(path, name))
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: name, Value: item})
	}
	return Object(members...), nil
}

// fieldName resolves the wire name for a struct field from its `json` tag.
func fieldName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = field.Name
	if tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			name = parts[0]
		}
		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				omitEmpty = true
			}
		}
	}
	return name, omitEmpty, false
}

var (
	valueType     = reflect.TypeOf(Value{})
	marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

func marshaler(rv reflect.Value) (json.Marshaler, bool) {
	if rv.Type().Implements(marshalerType) {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, false
		}
		return rv.Interface().(json.Marshaler), true
	}
	if rv.CanAddr() && rv.Addr().Type().Implements(marshalerType) {
		return rv.Addr().Interface().(json.Marshaler), true
	}
	return nil, false
}
