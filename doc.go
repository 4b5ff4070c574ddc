// Package wef embeds a browser engine in a Go host application and
// bridges function calls between embedded web content and native Go code.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wef/             Root package with the boundary types: Frame, QueryCallback, Spawner
//	├── bridge/      Function registry, sync/async dispatch, call error taxonomy
//	├── value/       Structured value union and codec for boundary serialization
//	├── browser/     Browser builder, settings and the engine backend contract
//	├── errors/      Structured error types for debugging
//	├── testbed/     In-process fake engine used by end-to-end tests
//	└── cmd/wef-tool/  CLI for fetching CEF binary distributions
//
// # Quick Start
//
// Register native functions and hand the registry to a browser:
//
//	registry := bridge.NewBuilder().
//	    Register("add", func(a, b float64) float64 { return a + b }).
//	    Build()
//
//	b, err := browser.NewBuilder().
//	    URL("https://example.com").
//	    FuncRegistry(registry).
//	    Build(engine)
//
// Web content calls the registered functions through the injected bridge:
//
//	jsBridge.add(1, 2); // resolves to 3
//
// # Asynchronous Functions
//
// Handlers that must not block the dispatch goroutine are registered
// through an async builder carrying a Spawner, the host-supplied execution
// capability:
//
//	registry := bridge.NewBuilder().
//	    WithSpawner(func(task func()) { go task() }).
//	    RegisterAsync("fetch", fetchHandler).
//	    Build()
//
// Each inbound call carries a one-shot QueryCallback. The bridge completes
// it exactly once with either a serialized result or an error string,
// regardless of handler success, failure or panic.
//
// # Thread Safety
//
// A built registry is immutable and safe for concurrent dispatch. The
// QueryCallback is the only shared mutable state per call; it is consumed
// by its first terminal operation and panics on reuse.
package wef
