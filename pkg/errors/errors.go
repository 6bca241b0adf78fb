// Package errors provides structured error handling for clockface.
package errors

import (
	"fmt"
	"time"
)

import stderrors "errors"

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates invalid settings or a malformed configuration file.
	KindConfig
	// KindInit indicates an initialization error (fonts, renderers).
	KindInit
	// KindRender indicates a rendering error.
	KindRender
	// KindSkin indicates a skin lookup or skin definition problem.
	KindSkin
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindSkin:
		return "skin"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ClockError represents a structured error raised by a clockface package.
type ClockError struct {
	// Op is the operation that failed (e.g., "face.NewAnalog").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// New returns a ClockError for op wrapping err.
func New(op string, kind ErrorKind, err error) *ClockError {
	return &ClockError{Op: op, Kind: kind, Err: err}
}

// Errorf returns a ClockError whose underlying error is built from format.
func Errorf(op string, kind ErrorKind, format string, args ...any) *ClockError {
	return &ClockError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first ClockError in err's chain,
// or KindUnknown when there is none.
func KindOf(err error) ErrorKind {
	var ce *ClockError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "clock.Ticker.notify").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by clockface packages.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
