package bridge

import (
	"strings"
	"testing"
)

func TestJavaScript_BaseRuntime(t *testing.T) {
	script := NewBuilder().Build().JavaScript()
	for _, marker := range []string{"window.jsBridge", "__internal", "cefQuery"} {
		if !strings.Contains(script, marker) {
			t.Errorf("script missing %q", marker)
		}
	}
}

func TestJavaScript_Stubs(t *testing.T) {
	script := NewBuilder().
		Register("add", func(a, b float64) float64 { return a + b }).
		Register("ping", func() {}).
		Build().
		JavaScript()

	if !strings.Contains(script, `window.jsBridge["add"] = function(arg0,arg1)`) {
		t.Errorf("missing add stub:\n%s", script)
	}
	if !strings.Contains(script, `window.jsBridge.__internal.call("add", [arg0,arg1])`) {
		t.Errorf("add stub does not forward args:\n%s", script)
	}
	if !strings.Contains(script, `window.jsBridge["ping"] = function()`) {
		t.Errorf("missing ping stub:\n%s", script)
	}
}

func TestJavaScript_Deterministic(t *testing.T) {
	build := func() string {
		return NewBuilder().
			Register("b", func() {}).
			Register("a", func() {}).
			Register("c", func() {}).
			Build().
			JavaScript()
	}
	first := build()
	for i := 0; i < 5; i++ {
		if build() != first {
			t.Fatal("script generation is not deterministic")
		}
	}
	// Sorted stub order.
	if strings.Index(first, `["a"]`) > strings.Index(first, `["b"]`) {
		t.Error("stubs not in sorted order")
	}
}

func TestJavaScript_NilRegistry(t *testing.T) {
	var registry *Registry
	script := registry.JavaScript()
	if !strings.Contains(script, "window.jsBridge") {
		t.Error("nil registry should still emit the base runtime")
	}
	if strings.Contains(script, "function(arg0") {
		t.Error("nil registry should have no stubs")
	}
}
