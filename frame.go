package wef

// Frame identifies the browser frame a call originated from. The engine
// backend owns the underlying frame object; handlers only observe it.
//
// A registered function can receive the originating frame by declaring a
// leading Frame parameter; that parameter does not count toward the
// function's arity.
type Frame interface {
	// IsValid reports whether the object is still attached to a live frame.
	IsValid() bool

	// IsMain reports whether this is the top-level frame.
	IsMain() bool

	// Name returns the assigned frame name (for example the iframe "name"
	// attribute), or "" for the main frame.
	Name() string

	// Identifier returns the globally unique frame identifier, or "" if
	// the underlying frame does not exist yet.
	Identifier() string

	// URL returns the URL currently loaded in the frame.
	URL() string
}
