package browser

import (
	"github.com/zouxu09/wef"
)

// Engine is a browser engine backend. The real engine (a CEF binding) is
// an external collaborator; this package defines only the contract it
// must satisfy. The testbed package provides an in-process fake.
type Engine interface {
	// CreateBrowser creates a browser and begins loading opts.URL.
	// The engine delivers events and inbound queries through client for
	// the lifetime of the returned handle.
	CreateBrowser(opts Options, client Client) (Handle, error)
}

// Options carries everything an engine backend needs to create a browser.
type Options struct {
	Settings Settings

	// URL initially loaded.
	URL string

	// InjectJavaScript runs in every document before its own scripts;
	// it carries the function bridge runtime and stubs.
	InjectJavaScript string

	Width             int
	Height            int
	FrameRate         int
	DeviceScaleFactor float64
}

// Handle is a live browser owned by the engine.
type Handle interface {
	// LoadURL navigates the main frame.
	LoadURL(url string)

	// Resize changes the render target size.
	Resize(width, height int)

	// Close destroys the browser. No events are delivered after Close
	// returns.
	Close() error
}

// Client receives engine events for one browser. The Browser type
// implements it, routing queries into the function registry and
// forwarding the rest to the application's BrowserHandler.
type Client interface {
	// OnQuery delivers one inbound call from web content: the
	// originating frame, the raw query text, and the call's one-shot
	// completion handle.
	OnQuery(frame wef.Frame, request []byte, cb *wef.QueryCallback)

	OnTitleChanged(title string)
	OnAddressChanged(frame wef.Frame, url string)
	OnConsoleMessage(message, source string, line int)
	OnLoadingStateChanged(isLoading, canGoBack, canGoForward bool)
}
