package browser

import (
	"github.com/zouxu09/wef"
)

// BrowserHandler receives browser events relevant to embedding hosts.
// Embed NoopHandler to implement only the events you care about.
type BrowserHandler interface {
	// OnTitleChanged is called when the page title changes.
	OnTitleChanged(title string)

	// OnAddressChanged is called when a frame's URL changes.
	OnAddressChanged(frame wef.Frame, url string)

	// OnConsoleMessage is called for messages logged by page scripts.
	OnConsoleMessage(message, source string, line int)

	// OnLoadingStateChanged is called when the loading state changes.
	OnLoadingStateChanged(isLoading, canGoBack, canGoForward bool)
}

// NoopHandler implements BrowserHandler with empty methods.
type NoopHandler struct{}

func (NoopHandler) OnTitleChanged(string)                  {}
func (NoopHandler) OnAddressChanged(wef.Frame, string)     {}
func (NoopHandler) OnConsoleMessage(string, string, int)   {}
func (NoopHandler) OnLoadingStateChanged(bool, bool, bool) {}

var _ BrowserHandler = NoopHandler{}
