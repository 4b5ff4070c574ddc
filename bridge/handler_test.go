package bridge

import (
	"errors"
	"strings"
	"testing"

	"github.com/zouxu09/wef"
	"github.com/zouxu09/wef/value"
)

func TestResultShapes(t *testing.T) {
	registry := NewBuilder().
		Register("nothing", func() {}).
		Register("bare", func() string { return "ok" }).
		Register("errNil", func() error { return nil }).
		Register("errSet", func() error { return errors.New("fixture failure message") }).
		Register("pair", func() (int, error) { return 7, nil }).
		Register("pairErr", func() (int, error) { return 0, errors.New("fixture failure message") }).
		Build()

	tests := []struct {
		name        string
		wantSuccess string
		wantFailure string
	}{
		{"nothing", "null", ""},
		{"bare", `"ok"`, ""},
		{"errNil", "null", ""},
		{"errSet", "", "fixture failure message"},
		{"pair", "7", ""},
		{"pairErr", "", "fixture failure message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, rec := captureCallback()
			registry.Call(nil, tt.name, nil, cb)

			if !rec.completed() {
				t.Fatal("call did not complete")
			}
			if tt.wantFailure != "" {
				if rec.failure != tt.wantFailure {
					t.Errorf("failure = %q, want %q", rec.failure, tt.wantFailure)
				}
			} else if rec.response != tt.wantSuccess {
				t.Errorf("response = %q, want %q", rec.response, tt.wantSuccess)
			}
		})
	}
}

func TestFrameParameter(t *testing.T) {
	var gotName string
	registry := NewBuilder().
		Register("who", func(f wef.Frame, suffix string) string {
			gotName = f.Name()
			return f.Name() + suffix
		}).
		Build()

	frame := &testFrame{name: "sidebar"}
	cb, rec := captureCallback()
	registry.Call(frame, "who", []value.Value{value.String("!")}, cb)

	if gotName != "sidebar" {
		t.Errorf("frame name = %q", gotName)
	}
	if rec.response != `"sidebar!"` {
		t.Errorf("response = %q", rec.response)
	}
}

func TestFrameParameter_NilFrame(t *testing.T) {
	registry := NewBuilder().
		Register("check", func(f wef.Frame) bool { return f == nil }).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "check", nil, cb)

	if rec.response != "true" {
		t.Errorf("response = %q, want true", rec.response)
	}
}

func TestInvalidArgument(t *testing.T) {
	registry := NewBuilder().
		Register("typed", func(a string, b int) {}).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "typed", []value.Value{value.String("ok"), value.String("not a number")}, cb)

	if rec.failures != 1 {
		t.Fatalf("failures = %d, want 1", rec.failures)
	}
	if !strings.HasPrefix(rec.failure, "Invalid argument arg1: ") {
		t.Errorf("failure = %q, want Invalid argument arg1 prefix", rec.failure)
	}
}

func TestHandlerPanicCompletesOnce(t *testing.T) {
	registry := NewBuilder().
		Register("explode", func() { panic("kaboom") }).
		Build()

	cb, rec := captureCallback()
	registry.Call(nil, "explode", nil, cb)

	if rec.failures != 1 || rec.successes != 0 {
		t.Fatalf("failures = %d successes = %d, want exactly one failure", rec.failures, rec.successes)
	}
	if !strings.Contains(rec.failure, "handler panic") || !strings.Contains(rec.failure, "kaboom") {
		t.Errorf("failure = %q", rec.failure)
	}
	if rec.released != 1 {
		t.Errorf("released = %d, want 1", rec.released)
	}
}

func TestStructArguments(t *testing.T) {
	type point struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	registry := NewBuilder().
		Register("norm2", func(p point) float64 { return p.X*p.X + p.Y*p.Y }).
		Build()

	arg := value.Object(
		value.Member{Key: "x", Value: value.Number(3)},
		value.Member{Key: "y", Value: value.Number(4)},
	)
	cb, rec := captureCallback()
	registry.Call(nil, "norm2", []value.Value{arg}, cb)

	if rec.response != "25" {
		t.Errorf("response = %q, want 25", rec.response)
	}
}

func TestRegistrationContractViolations(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{"not a function", 42},
		{"variadic", func(xs ...int) {}},
		{"three results", func() (int, int, error) { return 0, 0, nil }},
		{"second result not error", func() (int, int) { return 0, 0 }},
		{"channel parameter", func(ch chan int) {}},
		{"func result", func() func() { return nil }},
		{"non-string map key", func(m map[int]string) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("registration should panic")
				}
			}()
			NewBuilder().Register("bad", tt.fn)
		})
	}
}

func TestRecursiveTypesAccepted(t *testing.T) {
	type node struct {
		Label    string  `json:"label"`
		Children []*node `json:"children"`
	}
	// Recursive type definitions must not hang registration.
	registry := NewBuilder().
		Register("depth", func(n node) int { return len(n.Children) }).
		Build()

	arg := value.Object(
		value.Member{Key: "label", Value: value.String("root")},
		value.Member{Key: "children", Value: value.Array(
			value.Object(value.Member{Key: "label", Value: value.String("leaf")}),
		)},
	)
	cb, rec := captureCallback()
	registry.Call(nil, "depth", []value.Value{arg}, cb)

	if rec.response != "1" {
		t.Errorf("response = %q, want 1", rec.response)
	}
}
