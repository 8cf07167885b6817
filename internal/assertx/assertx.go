// Package assertx holds debug-only invariant checks, compiled in only under
// the whir_debug build tag. Release builds never pay for them, matching
// spec.md §7: "Debug-only invariants ... are not relied upon in release."
package assertx

// Enabled reports whether debug invariants are compiled in. It is overridden
// by the whir_debug build tag (see assertx_debug.go).
var Enabled = false

// Check calls cond and panics with msg if it reports a violated invariant.
// Outside of whir_debug builds this is a no-op and cond is never evaluated.
func Check(cond func() bool, msg string) {
	if !Enabled {
		return
	}
	if !cond() {
		panic("whir: debug invariant violated: " + msg)
	}
}
