// Package monitoring holds the diagnostic loggers and progress reporting
// shared by the scanner pipeline and the CLI.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf and
// may be replaced with SetLogger, e.g. to route through zap or to mute
// output in tests.
var Logf func(format string, v ...interface{}) = log.Printf

// Warnf reports conditions that do not stop a run, such as a missing
// projection sidecar. It defaults to Logf with a "warning:" prefix.
var Warnf func(format string, v ...interface{}) = func(format string, v ...interface{}) {
	Logf("warning: "+format, v...)
}

// Debugf is muted unless a verbose logger is installed.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
