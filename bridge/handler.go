package bridge

import (
	"encoding/json"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/zouxu09/wef"
	"github.com/zouxu09/wef/value"
)

// handler is the uniform type-erased invocation interface shared by all
// registered functions. The registry validates arity before calling, so
// call may assume len(args) == numArguments().
type handler interface {
	numArguments() int
	call(spawner wef.Spawner, frame wef.Frame, args []value.Value, cb *wef.QueryCallback)
}

// resultShape classifies what a handler function returns.
type resultShape int

const (
	resultNone resultShape = iota
	resultValue
	resultError
	resultValueError
)

var (
	frameType       = reflect.TypeOf((*wef.Frame)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
	jsonMarshaler   = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	jsonUnmarshaler = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
)

// funcAdapter is the reflection-resolved shape of a registered Go
// function: its decode plan for arguments and its result projection.
type funcAdapter struct {
	fn       reflect.Value
	params   []reflect.Type
	shape    resultShape
	hasFrame bool
}

// newFuncAdapter inspects fn and builds its adapter. A function that does
// not fit the bridged calling convention is a construction-time contract
// violation and panics.
func newFuncAdapter(name string, fn any) funcAdapter {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		panic(fmt.Sprintf("bridge: handler for %q must be a function, got %T", name, fn))
	}
	rt := rv.Type()
	if rt.IsVariadic() {
		panic(fmt.Sprintf("bridge: handler for %q must not be variadic", name))
	}

	a := funcAdapter{fn: rv}

	start := 0
	if rt.NumIn() > 0 && rt.In(0) == frameType {
		a.hasFrame = true
		start = 1
	}
	for i := start; i < rt.NumIn(); i++ {
		pt := rt.In(i)
		if err := checkBoundaryType(pt, nil); err != nil {
			panic(fmt.Sprintf("bridge: handler for %q: parameter %d: %v", name, i-start, err))
		}
		a.params = append(a.params, pt)
	}

	switch rt.NumOut() {
	case 0:
		a.shape = resultNone
	case 1:
		if rt.Out(0) == errorType {
			a.shape = resultError
		} else {
			if err := checkBoundaryType(rt.Out(0), nil); err != nil {
				panic(fmt.Sprintf("bridge: handler for %q: result: %v", name, err))
			}
			a.shape = resultValue
		}
	case 2:
		if rt.Out(1) != errorType {
			panic(fmt.Sprintf("bridge: handler for %q: second result must be error, got %s", name, rt.Out(1)))
		}
		if err := checkBoundaryType(rt.Out(0), nil); err != nil {
			panic(fmt.Sprintf("bridge: handler for %q: result: %v", name, err))
		}
		a.shape = resultValueError
	default:
		panic(fmt.Sprintf("bridge: handler for %q returns %d values, at most (T, error)", name, rt.NumOut()))
	}

	return a
}

func (a *funcAdapter) numArguments() int { return len(a.params) }

// invoke decodes args, runs the function, and projects its result into
// the normalized outcome. A handler panic is caught and becomes a
// KindOther failure so the completion still happens exactly once.
func (a *funcAdapter) invoke(frame wef.Frame, args []value.Value) (result value.Value, callErr *CallError) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("handler panic", zap.Any("panic", r))
			result, callErr = value.Value{}, Other(fmt.Sprintf("handler panic: %v", r))
		}
	}()

	in := make([]reflect.Value, 0, len(a.params)+1)
	if a.hasFrame {
		if frame == nil {
			in = append(in, reflect.Zero(frameType))
		} else {
			in = append(in, reflect.ValueOf(frame))
		}
	}
	for i, pt := range a.params {
		target := reflect.New(pt)
		if err := value.DecodeInto(args[i], target.Interface()); err != nil {
			return value.Value{}, InvalidArgument(fmt.Sprintf("arg%d", i), err)
		}
		in = append(in, target.Elem())
	}

	out := a.fn.Call(in)

	switch a.shape {
	case resultNone:
		return value.Null(), nil
	case resultError:
		if !out[0].IsNil() {
			return value.Value{}, Other(out[0].Interface().(error).Error())
		}
		return value.Null(), nil
	case resultValueError:
		if !out[1].IsNil() {
			return value.Value{}, Other(out[1].Interface().(error).Error())
		}
		fallthrough
	default:
		v, err := value.Encode(out[0].Interface())
		if err != nil {
			// checkBoundaryType admits the result type at registration,
			// so this is unreachable for well-formed handlers.
			return value.Value{}, Other(err.Error())
		}
		return v, nil
	}
}

// outcome adapts invoke's typed pair to the completion signature, keeping
// a nil *CallError from becoming a non-nil error interface.
func (a *funcAdapter) outcome(frame wef.Frame, args []value.Value) (value.Value, error) {
	v, callErr := a.invoke(frame, args)
	if callErr != nil {
		return value.Value{}, callErr
	}
	return v, nil
}

// syncHandler completes the callback inline on the dispatch goroutine.
type syncHandler struct {
	funcAdapter
}

func (h *syncHandler) call(_ wef.Spawner, frame wef.Frame, args []value.Value, cb *wef.QueryCallback) {
	cb.Result(h.outcome(frame, args))
}

// asyncHandler hands the whole unit of work to the spawner and returns
// immediately; the callback completes on whatever goroutine the spawner
// runs the task on.
type asyncHandler struct {
	funcAdapter
}

func (h *asyncHandler) call(spawner wef.Spawner, frame wef.Frame, args []value.Value, cb *wef.QueryCallback) {
	if spawner == nil {
		panic("BUG: spawner is nil")
	}
	spawner(func() {
		cb.Result(h.outcome(frame, args))
	})
}

// checkBoundaryType verifies at registration time that a parameter or
// result type can cross the boundary, so encoding cannot fail at call
// time. seen guards against recursive type definitions.
func checkBoundaryType(t reflect.Type, seen []reflect.Type) error {
	for _, s := range seen {
		if s == t {
			return nil
		}
	}

	if t == reflect.TypeOf(value.Value{}) {
		return nil
	}
	if t.Implements(jsonMarshaler) || reflect.PointerTo(t).Implements(jsonMarshaler) ||
		t.Implements(jsonUnmarshaler) || reflect.PointerTo(t).Implements(jsonUnmarshaler) {
		return nil
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return checkBoundaryType(t.Elem(), append(seen, t))
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("map key type %s cannot cross the boundary (only string keys)", t.Key())
		}
		return checkBoundaryType(t.Elem(), append(seen, t))
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return fmt.Errorf("non-empty interface %s cannot cross the boundary", t)
		}
		return nil
	case reflect.Struct:
		seen = append(seen, t)
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Tag.Get("json") == "-" {
				continue
			}
			if err := checkBoundaryType(field.Type, seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("type %s cannot cross the boundary", t)
	}
}
