package observability

import (
	"fmt"
	"runtime/debug"
)

// RecoverPanic recovers from a panic in the surrounding function and logs
// it at Error level with the panic value and a full stack trace. Call it
// in a defer:
//
//	defer observability.RecoverPanic(logger, "health server")
//
// After logging, the panic is not re-raised. The goroutine keeps running,
// so only use this where a crashed goroutine is worse than a degraded one.
func RecoverPanic(logger *Logger, context string) {
	if r := recover(); r != nil {
		logger.WithField("panic", r).
			WithField("stack", string(debug.Stack())).
			WithField("context", context).
			Error("PANIC recovered")
	}
}

// MustRecover converts a recovered panic value into an error. It takes the
// result of recover() directly so callers can assign the error in a defer:
//
//	defer func() {
//		err = observability.MustRecover(recover())
//	}()
//
// Returns nil when no panic occurred.
func MustRecover(r interface{}) error {
	if r != nil {
		return fmt.Errorf("panic: %v", r)
	}
	return nil
}
