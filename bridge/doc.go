// Package bridge implements the native function registry callable from
// embedded web content.
//
// Functions are ordinary Go funcs registered by name. At registration a
// reflection adapter fixes each function's arity and decode plan; at
// dispatch the registry validates the argument count, decodes arguments
// through the value codec, invokes the function and completes the call's
// one-shot QueryCallback with the projected result. Completion happens
// exactly once, whether the function returns a value, returns an error,
// or panics.
//
//	registry := bridge.NewBuilder().
//	    Register("add", func(a, b float64) float64 { return a + b }).
//	    Register("greet", func(name string) (string, error) {
//	        if name == "" {
//	            return "", errors.New("empty name")
//	        }
//	        return "Hello, " + name, nil
//	    }).
//	    Build()
//
// A function can observe its originating frame by declaring a leading
// wef.Frame parameter; it does not count toward the arity seen by the
// browser side.
//
// # Asynchronous functions
//
// WithSpawner converts the builder into one accepting RegisterAsync.
// Async dispatch hands the entire call to the spawner and returns
// immediately, so slow handlers never occupy a dispatch goroutine:
//
//	registry := bridge.NewBuilder().
//	    WithSpawner(func(task func()) { go task() }).
//	    RegisterAsync("sleep", func(millis int) string {
//	        time.Sleep(time.Duration(millis) * time.Millisecond)
//	        return "done"
//	    }).
//	    Build()
//
// Dispatching an async function through a registry without a spawner is a
// wiring defect and panics; it cannot happen through the builders above.
//
// # Errors
//
// Failed calls surface a CallError whose display text crosses the
// boundary verbatim: unknown name, arity mismatch, argument decode
// failure, or the handler's own error text. Web content observes only
// that text, as the rejection reason of the stub's promise.
package bridge
