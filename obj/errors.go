package obj

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"
)

// Failure conditions. Operations return them wrapped in an *OpError, so
// callers test with errors.Is.
var (
	ErrOutOfMemory    = errors.New("out of memory")
	ErrNotSupported   = errors.New("capability not supported for this type")
	ErrNotConvertible = errors.New("cannot be converted")
	ErrOutOfRange     = errors.New("index out of range")
	ErrMalformedPath  = errors.New("path badly formatted")
	ErrNotFound       = errors.New("not found")
	ErrWrongReceiver  = errors.New("wrong receiver type")
	ErrNilObject      = errors.New("nil object")
	ErrReleased       = errors.New("use of released object")
	ErrShared         = errors.New("object has more than one owner")
	ErrConstruct      = errors.New("construction failed")
)

// OpError records a failed operation and the object it was invoked on.
type OpError struct {
	Op      string // operation name, e.g. "GetIndex"
	Subject string // display name of the receiver, "NULL" for nil
	Err     error
}

func (e *OpError) Error() string {
	return "obj: " + e.Op + "(" + e.Subject + "): " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ---------------------------------------------------------------------------
// Error sinks
// ---------------------------------------------------------------------------

// ErrorSink is the observable channel failures are reported to. It is kept
// apart from ordinary output such as Print.
type ErrorSink interface {
	Report(err error)
}

// ErrorSinkFunc adapts a function to ErrorSink.
type ErrorSinkFunc func(err error)

// Report calls f(err).
func (f ErrorSinkFunc) Report(err error) {
	f(err)
}

// LogSink reports errors through a commonlog logger at error level.
type LogSink struct {
	Log commonlog.Logger
}

// Report logs err.
func (s LogSink) Report(err error) {
	var opErr *OpError
	if errors.As(err, &opErr) {
		s.Log.Error(err.Error(), "op", opErr.Op, "subject", opErr.Subject)
		return
	}
	s.Log.Error(err.Error())
}

// Recorder keeps every reported error and optionally forwards it.
type Recorder struct {
	Errors []error
	Next   ErrorSink
}

// Report records err.
func (r *Recorder) Report(err error) {
	r.Errors = append(r.Errors, err)
	if r.Next != nil {
		r.Next.Report(err)
	}
}

// Last returns the most recent error, or nil.
func (r *Recorder) Last() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[len(r.Errors)-1]
}

// Reset forgets recorded errors.
func (r *Recorder) Reset() {
	r.Errors = nil
}

var logger = commonlog.GetLogger("substrate")

// fallbackSink receives failures that have no runtime to report to, such
// as operations invoked on a nil object.
var fallbackSink ErrorSink = LogSink{Log: logger}

// report wraps err for op on o and sends it to o's runtime sink.
func report(o *Object, op string, err error) error {
	if o != nil && o.rt != nil {
		return o.rt.report(subjectName(o), op, err)
	}
	e := &OpError{Op: op, Subject: subjectName(o), Err: err}
	fallbackSink.Report(e)
	return e
}

// report wraps err for op on subject and sends it to the runtime sink.
func (rt *Runtime) report(subject, op string, err error) error {
	e := &OpError{Op: op, Subject: subject, Err: err}
	rt.sink.Report(e)
	return e
}

// reportf is report with a formatted detail wrapped around a sentinel.
func reportf(o *Object, op string, sentinel error, format string, args ...any) error {
	return report(o, op, fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...))
}

func subjectName(o *Object) string {
	if o == nil {
		return "NULL"
	}
	return o.name
}
