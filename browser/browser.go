package browser

import (
	"go.uber.org/zap"

	"github.com/zouxu09/wef"
	"github.com/zouxu09/wef/bridge"
	"github.com/zouxu09/wef/errors"
	"github.com/zouxu09/wef/value"
)

// Browser is an embedded browser wired to a function registry. It
// implements Client, routing inbound queries into the registry and
// forwarding events to the application handler.
type Browser struct {
	handle   Handle
	handler  BrowserHandler
	registry *bridge.Registry
}

// Builder configures and creates a Browser.
type Builder struct {
	settings          Settings
	url               string
	handler           BrowserHandler
	registry          *bridge.Registry
	width             int
	height            int
	frameRate         int
	deviceScaleFactor float64
}

// NewBuilder creates a builder with the engine defaults: a 100x100
// render target at scale 1.0, 60 frames per second, loading about:blank.
func NewBuilder() *Builder {
	return &Builder{
		url:               "about:blank",
		handler:           NoopHandler{},
		width:             100,
		height:            100,
		frameRate:         60,
		deviceScaleFactor: 1.0,
	}
}

// URL sets the URL to load.
func (b *Builder) URL(url string) *Builder {
	b.url = url
	return b
}

// Size sets the size of the render target.
func (b *Builder) Size(width, height int) *Builder {
	b.width = width
	b.height = height
	return b
}

// FrameRate sets the paint frame rate.
func (b *Builder) FrameRate(rate int) *Builder {
	b.frameRate = rate
	return b
}

// DeviceScaleFactor sets the device scale factor.
func (b *Builder) DeviceScaleFactor(factor float64) *Builder {
	b.deviceScaleFactor = factor
	return b
}

// Settings sets the browser process settings.
func (b *Builder) Settings(s Settings) *Builder {
	b.settings = s
	return b
}

// Handler sets the event handler.
func (b *Builder) Handler(h BrowserHandler) *Builder {
	if h == nil {
		h = NoopHandler{}
	}
	b.handler = h
	return b
}

// FuncRegistry sets the function registry whose functions the loaded
// content can call. A nil registry injects only the bridge runtime.
func (b *Builder) FuncRegistry(r *bridge.Registry) *Builder {
	b.registry = r
	return b
}

// Build creates the browser on the given engine backend.
func (b *Builder) Build(engine Engine) (*Browser, error) {
	if engine == nil {
		return nil, errors.InvalidInput(errors.PhaseBrowser, "engine must not be nil")
	}

	browser := &Browser{
		handler:  b.handler,
		registry: b.registry,
	}

	handle, err := engine.CreateBrowser(Options{
		Settings:          b.settings,
		URL:               b.url,
		InjectJavaScript:  b.registry.JavaScript(),
		Width:             b.width,
		Height:            b.height,
		FrameRate:         b.frameRate,
		DeviceScaleFactor: b.deviceScaleFactor,
	}, browser)
	if err != nil {
		return nil, errors.New(errors.PhaseBrowser, errors.KindInvalidInput).
			Detail("create browser").
			Cause(err).
			Build()
	}

	browser.handle = handle
	Logger().Debug("browser created", zap.String("url", b.url))
	return browser, nil
}

// LoadURL navigates the main frame.
func (b *Browser) LoadURL(url string) {
	b.handle.LoadURL(url)
}

// Resize changes the render target size.
func (b *Browser) Resize(width, height int) {
	b.handle.Resize(width, height)
}

// Close destroys the browser.
func (b *Browser) Close() error {
	return b.handle.Close()
}

// OnQuery parses the inbound query envelope and dispatches it through
// the function registry. An envelope that is not
// {"method": string, "args": [...]} cannot be answered; its completion
// handle is discarded and the query dropped.
func (b *Browser) OnQuery(frame wef.Frame, request []byte, cb *wef.QueryCallback) {
	method, args, err := parseQuery(request)
	if err != nil {
		Logger().Debug("dropping unparsable query", zap.Error(err))
		cb.Discard()
		return
	}
	b.registry.Call(frame, method, args, cb)
}

func (b *Browser) OnTitleChanged(title string) {
	b.handler.OnTitleChanged(title)
}

func (b *Browser) OnAddressChanged(frame wef.Frame, url string) {
	b.handler.OnAddressChanged(frame, url)
}

func (b *Browser) OnConsoleMessage(message, source string, line int) {
	b.handler.OnConsoleMessage(message, source, line)
}

func (b *Browser) OnLoadingStateChanged(isLoading, canGoBack, canGoForward bool) {
	b.handler.OnLoadingStateChanged(isLoading, canGoBack, canGoForward)
}

var _ Client = (*Browser)(nil)

// parseQuery decodes the wire envelope {"method": string, "args": [...]}.
func parseQuery(request []byte) (string, []value.Value, error) {
	v, err := value.Parse(request)
	if err != nil {
		return "", nil, err
	}
	if v.Kind() != value.KindObject {
		return "", nil, errors.InvalidInput(errors.PhaseQuery, "query envelope is not an object")
	}

	methodValue, ok := v.Get("method")
	if !ok || methodValue.Kind() != value.KindString || methodValue.AsString() == "" {
		return "", nil, errors.InvalidInput(errors.PhaseQuery, "query envelope has no method name")
	}

	argsValue, ok := v.Get("args")
	if !ok {
		return "", nil, errors.InvalidInput(errors.PhaseQuery, "query envelope has no args array")
	}
	if argsValue.Kind() != value.KindArray {
		return "", nil, errors.InvalidInput(errors.PhaseQuery, "query envelope args is not an array")
	}

	return methodValue.AsString(), argsValue.Items(), nil
}
