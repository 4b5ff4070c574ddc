package bridge

import (
	"github.com/zouxu09/wef"
)

// Builder registers synchronous functions. Building is single-goroutine;
// the resulting Registry is immutable.
//
// Registering a second function under an existing name deterministically
// replaces the first: the last registration wins.
type Builder struct {
	functions map[string]handler
}

// NewBuilder creates an empty registry builder.
func NewBuilder() *Builder {
	return &Builder{functions: make(map[string]handler)}
}

// Register adds a synchronous function under the given name. fn is any
// non-variadic Go function whose parameters and results can cross the
// boundary, optionally taking a leading wef.Frame and optionally returning
// (T), (error) or (T, error). The handler runs inline on the dispatch
// goroutine, so it must not block.
//
// An empty name or an fn outside the calling convention panics: both are
// wiring defects, not runtime conditions.
func (b *Builder) Register(name string, fn any) *Builder {
	b.functions[name] = newSyncHandler(name, fn)
	return b
}

// WithSpawner attaches the host's execution capability for deferred work
// and returns a builder that accepts asynchronous registrations.
func (b *Builder) WithSpawner(spawner wef.Spawner) *AsyncBuilder {
	if spawner == nil {
		panic("bridge: spawner must not be nil")
	}
	return &AsyncBuilder{functions: b.functions, spawner: spawner}
}

// Build returns the immutable registry.
func (b *Builder) Build() *Registry {
	return &Registry{functions: b.functions}
}

// AsyncBuilder registers synchronous and asynchronous functions. Created
// by Builder.WithSpawner.
type AsyncBuilder struct {
	functions map[string]handler
	spawner   wef.Spawner
}

// Register adds a synchronous function. See Builder.Register.
func (b *AsyncBuilder) Register(name string, fn any) *AsyncBuilder {
	b.functions[name] = newSyncHandler(name, fn)
	return b
}

// RegisterAsync adds an asynchronous function with the same calling
// convention as Register. At dispatch time the whole call (argument
// decoding, the function body and the completion) runs as one task on
// the spawner, so the dispatch goroutine never blocks on it.
func (b *AsyncBuilder) RegisterAsync(name string, fn any) *AsyncBuilder {
	if name == "" {
		panic("bridge: function name must not be empty")
	}
	b.functions[name] = &asyncHandler{newFuncAdapter(name, fn)}
	return b
}

// Build returns the immutable registry carrying the spawner.
func (b *AsyncBuilder) Build() *Registry {
	return &Registry{functions: b.functions, spawner: b.spawner}
}

func newSyncHandler(name string, fn any) *syncHandler {
	if name == "" {
		panic("bridge: function name must not be empty")
	}
	return &syncHandler{newFuncAdapter(name, fn)}
}
