package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/zouxu09/wef/errors"
)

// DecodeInto decodes a structured value into target, which must be a
// non-nil pointer. Numeric targets reject fractional or out-of-range
// numbers; object members with no matching field are ignored, the way
// encoding/json does it.
func DecodeInto(v Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.NilPointer(errors.PhaseDecode, nil, fmt.Sprintf("%T", target))
	}
	return decodeReflect(v, rv.Elem(), nil)
}

func decodeReflect(v Value, rv reflect.Value, path []string) error {
	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	if u, ok := unmarshaler(rv); ok {
		data, _ := v.MarshalJSON()
		if err := u.UnmarshalJSON(data); err != nil {
			return errors.New(errors.PhaseDecode, errors.KindInvalidJSON).
				Path(path...).
				GoType(rv.Type().String()).
				Detail("UnmarshalJSON failed").
				Cause(err).
				Build()
		}
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		if v.Kind() != KindBool {
			return mismatch(rv, v, path)
		}
		rv.SetBool(v.AsBool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := integral(v, rv, path)
		if err != nil {
			return err
		}
		if rv.OverflowInt(int64(n)) {
			return errors.Overflow(errors.PhaseDecode, path, rv.Type().String(), n)
		}
		rv.SetInt(int64(n))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := integral(v, rv, path)
		if err != nil {
			return err
		}
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return errors.Overflow(errors.PhaseDecode, path, rv.Type().String(), n)
		}
		rv.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		if v.Kind() != KindNumber {
			return mismatch(rv, v, path)
		}
		rv.SetFloat(v.AsNumber())
		return nil
	case reflect.String:
		if v.Kind() != KindString {
			return mismatch(rv, v, path)
		}
		rv.SetString(v.AsString())
		return nil
	case reflect.Pointer:
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeReflect(v, rv.Elem(), path)
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return errors.Unsupported(errors.PhaseDecode,
				fmt.Sprintf("non-empty interface %s", rv.Type()))
		}
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		rv.Set(reflect.ValueOf(generic(v)))
		return nil
	case reflect.Slice:
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		if v.Kind() != KindArray {
			return mismatch(rv, v, path)
		}
		items := v.Items()
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeReflect(item, out.Index(i), append(path, fmt.Sprintf("[%d]", i))); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if v.Kind() != KindArray {
			return mismatch(rv, v, path)
		}
		items := v.Items()
		if len(items) != rv.Len() {
			return errors.OutOfBounds(errors.PhaseDecode, path, len(items), rv.Len())
		}
		for i, item := range items {
			if err := decodeReflect(item, rv.Index(i), append(path, fmt.Sprintf("[%d]", i))); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		if v.Kind() != KindObject {
			return mismatch(rv, v, path)
		}
		if rv.Type().Key().Kind() != reflect.String {
			return errors.Unsupported(errors.PhaseDecode,
				fmt.Sprintf("map key type %s (only string keys)", rv.Type().Key()))
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(v.Members()))
		for _, m := range v.Members() {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := decodeReflect(m.Value, elem, append(path, m.Key)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(m.Key).Convert(rv.Type().Key()), elem)
		}
		rv.Set(out)
		return nil
	case reflect.Struct:
		if v.Kind() != KindObject {
			return mismatch(rv, v, path)
		}
		return decodeStruct(v, rv, path)
	default:
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("kind %s cannot cross the boundary", rv.Kind()).
			Build()
	}
}

func decodeStruct(v Value, rv reflect.Value, path []string) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, skip := fieldName(field)
		if skip {
			continue
		}
		member, ok := v.Get(name)
		if !ok {
			continue
		}
		if err := decodeReflect(member, rv.Field(i), append(path, name)); err != nil {
			return err
		}
	}
	return nil
}

// integral validates that v is a whole number suitable for an integer target.
func integral(v Value, rv reflect.Value, path []string) (float64, error) {
	if v.Kind() != KindNumber {
		return 0, mismatch(rv, v, path)
	}
	n := v.AsNumber()
	if n != math.Trunc(n) {
		return 0, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			GoType(rv.Type().String()).
			ValueKind(KindNumber.String()).
			Detail("number %v is not an integer", n).
			Build()
	}
	return n, nil
}

func mismatch(rv reflect.Value, v Value, path []string) error {
	return errors.TypeMismatch(errors.PhaseDecode, path, rv.Type().String(), v.Kind().String())
}

// generic converts a value into the natural dynamic Go representation,
// as encoding/json does for interface{} targets. Object order is lost
// here; callers that need order decode into Value instead.
func generic(v Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.AsBool()
	case KindNumber:
		return v.AsNumber()
	case KindString:
		return v.AsString()
	case KindArray:
		out := make([]any, len(v.Items()))
		for i, item := range v.Items() {
			out[i] = generic(item)
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Members()))
		for _, m := range v.Members() {
			out[m.Key] = generic(m.Value)
		}
		return out
	}
	return nil
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

func unmarshaler(rv reflect.Value) (json.Unmarshaler, bool) {
	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		// Value has its own decode path via valueType above.
		return rv.Addr().Interface().(json.Unmarshaler), true
	}
	return nil, false
}
