package bridge

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed inject.js
var injectJS string

// JavaScript returns the script injected into every document: the bridge
// runtime plus one generated stub per registered function. Stubs are
// emitted in sorted name order so the script is deterministic.
//
// Each stub forwards its positional arguments to the query mechanism and
// returns a promise:
//
//	window.jsBridge["add"] = function(arg0,arg1) {
//	    return window.jsBridge.__internal.call("add", [arg0,arg1]);
//	};
func (r *Registry) JavaScript() string {
	var b strings.Builder
	b.WriteString(injectJS)

	for _, name := range r.Names() {
		numArgs, _ := r.NumArguments(name)
		args := make([]string, numArgs)
		for i := range args {
			args[i] = fmt.Sprintf("arg%d", i)
		}
		argList := strings.Join(args, ",")
		fmt.Fprintf(&b, "window.jsBridge[%q] = function(%s) {\n", name, argList)
		fmt.Fprintf(&b, "    return window.jsBridge.__internal.call(%q, [%s]);\n", name, argList)
		b.WriteString("};\n")
	}

	return b.String()
}
