// Package browser hosts an embedded browser on top of a pluggable engine
// backend and wires it to the function bridge.
//
// The package does not talk to a real browser engine itself. Engine is the
// contract a backend must satisfy; Browser implements the engine-facing
// Client interface, parsing inbound query envelopes and dispatching them
// through a bridge.Registry, and forwards page events to the application's
// BrowserHandler.
//
// # Creating a browser
//
//	registry := bridge.NewBuilder().
//		Register("add", func(a, b int) int { return a + b }).
//		Build()
//
//	b, err := browser.NewBuilder().
//		URL("https://example.com").
//		Size(800, 600).
//		FuncRegistry(registry).
//		Build(engine)
//
// Page scripts then call window.jsBridge.add(2, 3) and receive a promise
// resolving to 5.
package browser
