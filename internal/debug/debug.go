package debug

import (
	"fmt"
	"log"
	"time"
)

// Trace prints a trace line when tracing is enabled. Matching runs stay
// silent by default; the engine's Debug option turns these on.
func Trace(enabled bool, format string, args ...interface{}) {
	if enabled {
		log.Printf("[%s] %s", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
	}
}

// Timing logs an operation's duration when tracing is enabled. Use as
// defer Timing(enabled, "build index")().
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}
	start := time.Now()
	Trace(enabled, "starting: %s", operation)
	return func() {
		Trace(enabled, "completed: %s (took %v)", operation, time.Since(start))
	}
}
