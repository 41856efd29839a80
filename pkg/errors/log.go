package errors

import (
	"fmt"
	"os"
)

// Handler receives engine errors that are recovered locally rather than
// returned to a caller, such as a content materialization failure during
// a layout pass.
type Handler interface {
	HandleError(err *Error)
}

// LogHandler is a Handler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables the error kind in the output.
	Verbose bool
}

// HandleError logs an Error to stderr.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[pageview error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[pageview error] %s: %v\n", err.Op, err.Err)
	}
}
