// Package monitoring carries the shared diagnostic logger. Library
// packages report through it so batch tools can redirect or mute their
// output without threading a logger through every call.
package monitoring

import "log"

// Logf emits one diagnostic line, log.Printf by default. The unwrap
// library reports run summaries through it; replace it with SetLogger
// to route those into a tool's own output or to silence them in tests.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger swaps the diagnostic sink. A nil f installs a no-op sink,
// muting library diagnostics entirely.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
