package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
)

// PanicError is returned by a step that panicked. The frame loop stops on
// it like on any other step error.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("step panic: %v", e.Value) }

// guard turns a panic inside step into a logged *PanicError.
func guard(log *slog.Logger, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			pe := &PanicError{Value: v, Stack: debug.Stack()}
			log.Error("step panic", "panic", v)
			for _, line := range strings.Split(string(pe.Stack), "\n") {
				if line != "" {
					log.Debug("stack", "line", strings.TrimSpace(line))
				}
			}
			err = pe
		}()
		return step()
	}
}
