// Package testbed provides an in-process fake browser engine for testing
// the function bridge end to end without a native engine build.
//
// The fake engine implements browser.Engine. Tests create a browser on it
// the same way production code does, then drive inbound queries with
// BrowserHandle.Query or BrowserHandle.Call and inspect the captured
// Completion. A manual Spawner makes asynchronous dispatch deterministic.
package testbed

import (
	"fmt"
	"strings"

	"github.com/zouxu09/wef"
	"github.com/zouxu09/wef/browser"
	"github.com/zouxu09/wef/errors"
	"github.com/zouxu09/wef/value"
)

// Engine is an in-process browser.Engine. It creates BrowserHandles that
// record their options and let tests inject queries and events.
type Engine struct {
	browsers []*BrowserHandle
}

// NewEngine creates an empty fake engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CreateBrowser implements browser.Engine.
func (e *Engine) CreateBrowser(opts browser.Options, client browser.Client) (browser.Handle, error) {
	if client == nil {
		return nil, errors.InvalidInput(errors.PhaseBrowser, "client must not be nil")
	}
	h := &BrowserHandle{
		opts:       opts,
		client:     client,
		currentURL: opts.URL,
	}
	e.browsers = append(e.browsers, h)
	return h, nil
}

// Browser returns the most recently created browser handle.
func (e *Engine) Browser() *BrowserHandle {
	if len(e.browsers) == 0 {
		return nil
	}
	return e.browsers[len(e.browsers)-1]
}

// BrowserHandle is a fake live browser. It implements browser.Handle and
// doubles as the test's way into the engine side of the contract.
type BrowserHandle struct {
	opts       browser.Options
	client     browser.Client
	currentURL string
	width      int
	height     int
	closed     bool
}

// LoadURL implements browser.Handle.
func (h *BrowserHandle) LoadURL(url string) { h.currentURL = url }

// Resize implements browser.Handle.
func (h *BrowserHandle) Resize(width, height int) {
	h.width = width
	h.height = height
}

// Close implements browser.Handle.
func (h *BrowserHandle) Close() error {
	h.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (h *BrowserHandle) Closed() bool { return h.closed }

// CurrentURL returns the last URL loaded into the main frame.
func (h *BrowserHandle) CurrentURL() string { return h.currentURL }

// InjectedScript returns the script the engine was asked to run in every
// document.
func (h *BrowserHandle) InjectedScript() string {
	return h.opts.InjectJavaScript
}

// Options returns the creation options the engine received.
func (h *BrowserHandle) Options() browser.Options { return h.opts }

// Query delivers a raw query envelope from the main frame and returns the
// captured completion.
func (h *BrowserHandle) Query(request string) *Completion {
	return h.QueryFrom(MainFrame(h.currentURL), request)
}

// QueryFrom delivers a raw query envelope from the given frame.
func (h *BrowserHandle) QueryFrom(frame wef.Frame, request string) *Completion {
	c := &Completion{}
	h.client.OnQuery(frame, []byte(request), c.callback())
	return c
}

// Call builds the {"method": ..., "args": [...]} envelope the injected
// stubs produce and delivers it from the main frame. Arguments are
// encoded through the structured value codec; an unencodable argument
// panics, since a real page could never send one.
func (h *BrowserHandle) Call(method string, args ...any) *Completion {
	items := make([]value.Value, len(args))
	for i, arg := range args {
		v, err := value.Encode(arg)
		if err != nil {
			panic(fmt.Sprintf("testbed: cannot encode argument %d: %v", i, err))
		}
		items[i] = v
	}
	envelope := value.Object(
		value.Member{Key: "method", Value: value.String(method)},
		value.Member{Key: "args", Value: value.Array(items...)},
	)
	return h.Query(envelope.String())
}

// EmitTitleChanged delivers a title change event.
func (h *BrowserHandle) EmitTitleChanged(title string) {
	h.client.OnTitleChanged(title)
}

// EmitAddressChanged delivers an address change event from the main frame.
func (h *BrowserHandle) EmitAddressChanged(url string) {
	h.currentURL = url
	h.client.OnAddressChanged(MainFrame(url), url)
}

// EmitConsoleMessage delivers a console message event.
func (h *BrowserHandle) EmitConsoleMessage(message, source string, line int) {
	h.client.OnConsoleMessage(message, source, line)
}

// EmitLoadingStateChanged delivers a loading state event.
func (h *BrowserHandle) EmitLoadingStateChanged(isLoading, canGoBack, canGoForward bool) {
	h.client.OnLoadingStateChanged(isLoading, canGoBack, canGoForward)
}

// Completion records how one query was completed. At most one of the
// success and failure signals fires; Released reports that the native
// resource stand-in was freed.
type Completion struct {
	response  string
	failure   string
	succeeded bool
	failed    bool
	released  int
}

func (c *Completion) callback() *wef.QueryCallback {
	return wef.NewQueryCallback(
		func(response []byte) {
			c.succeeded = true
			c.response = string(response)
		},
		func(message string) {
			c.failed = true
			c.failure = message
		},
		func() { c.released++ },
	)
}

// Done reports whether any terminal signal has fired or the callback was
// discarded.
func (c *Completion) Done() bool { return c.released > 0 }

// Response returns the serialized success result, if the query succeeded.
func (c *Completion) Response() (string, bool) { return c.response, c.succeeded }

// Failure returns the error message, if the query failed.
func (c *Completion) Failure() (string, bool) { return c.failure, c.failed }

// Released returns how many times the native resource stand-in was freed.
// Anything other than 1 after completion is a defect.
func (c *Completion) Released() int { return c.released }

// Dropped reports that the query was discarded without any signal.
func (c *Completion) Dropped() bool { return c.released > 0 && !c.succeeded && !c.failed }

// Spawner queues asynchronous tasks for explicit execution, making async
// dispatch deterministic in tests.
type Spawner struct {
	tasks []func()
}

// Spawn queues a task. Pass method value Spawner.Spawn as the registry's
// wef.Spawner.
func (s *Spawner) Spawn(task func()) {
	s.tasks = append(s.tasks, task)
}

// Pending returns the number of queued tasks.
func (s *Spawner) Pending() int { return len(s.tasks) }

// RunAll runs queued tasks in order until the queue is empty, including
// tasks queued while running.
func (s *Spawner) RunAll() {
	for len(s.tasks) > 0 {
		task := s.tasks[0]
		s.tasks = s.tasks[1:]
		task()
	}
}

// Frame is a fake wef.Frame.
type Frame struct {
	Main      bool
	FrameName string
	ID        string
	FrameURL  string
}

// MainFrame returns the main frame of a document at the given URL.
func MainFrame(url string) Frame {
	return Frame{Main: true, ID: "main", FrameURL: url}
}

func (f Frame) IsValid() bool { return true }

func (f Frame) IsMain() bool { return f.Main }

func (f Frame) Name() string { return f.FrameName }

func (f Frame) Identifier() string {
	if f.ID != "" {
		return f.ID
	}
	return strings.TrimSpace(f.FrameName)
}

func (f Frame) URL() string { return f.FrameURL }

var (
	_ browser.Engine = (*Engine)(nil)
	_ browser.Handle = (*BrowserHandle)(nil)
	_ wef.Frame      = Frame{}
)
