package slip

import (
	"errors"
	"fmt"
)

// ErrCanceled is the terminal outcome of a job that observed the
// cancellation token. It is not a failure: the caller reports it with its
// own exit status.
var ErrCanceled = errors.New("print job canceled")

// Kind classifies where in the pipeline an error originated.
type Kind int

const (
	KindConfig Kind = iota + 1 // bad or missing printer configuration
	KindSource                 // upstream raster stream failure
	KindSink                   // destination write failure
	KindInput                  // malformed page data
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSource:
		return "source"
	case KindSink:
		return "sink"
	case KindInput:
		return "input"
	}
	return "unknown"
}

// Error carries the failure class alongside the failed operation so the
// top level can report distinct outcomes without string matching.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func failf(kind Kind, op string, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, v...)}
}
