// Package goroutine provides helpers for launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/reque-io/reque/internal/shared/logger"
)

// SafeGo runs fn on a new goroutine and recovers any panic, logging it with
// a stack trace instead of crashing the process. Used for best-effort work
// such as notification delivery.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
