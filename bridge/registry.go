package bridge

import (
	"sort"

	"go.uber.org/zap"

	"github.com/zouxu09/wef"
	"github.com/zouxu09/wef/value"
)

// Registry is a name-keyed collection of functions callable from embedded
// web content. Build one with NewBuilder; once built it is immutable and
// safe for concurrent dispatch from any number of engine goroutines.
//
// A nil *Registry is valid and behaves as an empty registry.
type Registry struct {
	functions map[string]handler
	spawner   wef.Spawner
}

// Call dispatches an inbound browser call to the registered handler and
// completes cb exactly once.
//
// An unregistered name or an argument count different from the handler's
// declared arity completes cb with a failure before the handler is
// invoked. Synchronous handlers complete cb before Call returns;
// asynchronous handlers complete it later from the registry's spawner.
func (r *Registry) Call(frame wef.Frame, name string, args []value.Value, cb *wef.QueryCallback) {
	var h handler
	if r != nil {
		h = r.functions[name]
	}
	if h == nil {
		Logger().Debug("function not found", zap.String("name", name))
		cb.Result(value.Value{}, NotFound(name))
		return
	}

	if len(args) != h.numArguments() {
		Logger().Debug("arity mismatch",
			zap.String("name", name),
			zap.Int("expected", h.numArguments()),
			zap.Int("actual", len(args)))
		cb.Result(value.Value{}, InvalidNumberOfArguments(h.numArguments(), len(args)))
		return
	}

	h.call(r.spawner, frame, args, cb)
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumArguments returns the declared arity of a registered function.
func (r *Registry) NumArguments(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	h, ok := r.functions[name]
	if !ok {
		return 0, false
	}
	return h.numArguments(), true
}
