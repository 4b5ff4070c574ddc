package wef

import (
	"sync/atomic"

	"github.com/zouxu09/wef/value"
)

// QueryCallback is the one-shot completion handle for a pending browser
// call. The engine backend creates one per inbound query around its native
// completion resource; the bridge consumes it with exactly one terminal
// operation. After the terminal operation the native resource is released.
//
// A second terminal operation is a wiring defect and panics.
type QueryCallback struct {
	state *callbackState
}

type callbackState struct {
	success   func(response []byte)
	failure   func(message string)
	release   func()
	completed atomic.Bool
}

// NewQueryCallback wraps the engine's native completion resource.
// success receives the serialized result as JSON text, failure receives a
// human-readable error string, release frees the native resource. Any of
// the three may be nil.
func NewQueryCallback(success func(response []byte), failure func(message string), release func()) *QueryCallback {
	return &QueryCallback{state: &callbackState{
		success: success,
		failure: failure,
		release: release,
	}}
}

// Result consumes the callback with the normalized outcome of a call:
// a structured value on success, or the error to surface to the calling
// content. Exactly one of the two signals crosses the boundary.
func (c *QueryCallback) Result(v value.Value, err error) {
	if err != nil {
		c.fail(err.Error())
		return
	}
	c.succeed(v)
}

// Discard consumes the callback without signaling the caller, releasing
// the native resource. Used when an inbound query cannot be dispatched at
// all (unparsable envelope).
func (c *QueryCallback) Discard() {
	c.consume()
	if c.state.release != nil {
		c.state.release()
	}
}

func (c *QueryCallback) succeed(v value.Value) {
	c.consume()
	if c.state.success != nil {
		data, _ := v.MarshalJSON()
		c.state.success(data)
	}
	if c.state.release != nil {
		c.state.release()
	}
}

func (c *QueryCallback) fail(message string) {
	c.consume()
	if c.state.failure != nil {
		c.state.failure(message)
	}
	if c.state.release != nil {
		c.state.release()
	}
}

func (c *QueryCallback) consume() {
	if c.state.completed.Swap(true) {
		panic("wef: query callback completed twice")
	}
}
