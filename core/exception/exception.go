package exception

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
)

var (
	debug            atomic.Bool
	StackTraceHeight int = 20
)

const (
	exceptionStacktraceHeight int = 3 // skip `Err...`, `New` and `withStackTrace` functions
)

// EnableStackTraces toggles stack trace capture for exceptions created afterwards.
func EnableStackTraces(enabled bool) {
	debug.Store(enabled)
}

type Exception struct {
	message       string
	details       []string
	wrappedErrors []error
	stackTrace    string
}

// New creates a New exception with the given message.
func New(message string, errs ...error) Exception {
	e := Exception{message: message}
	for _, err := range errs {
		e = e.Wrap(err)
	}
	return e.withStackTrace()
}

func (e Exception) Is(err error) bool {
	if ex, ok := err.(Exception); !ok || err == nil {
		return false
	} else if e.message == ex.message {
		return true
	}
	return false
}

func (e Exception) Unwrap() []error {
	return e.wrappedErrors
}

// Cause returns the first wrapped error, which is the next link of the
// failure chain.
func (e Exception) Cause() error {
	if len(e.wrappedErrors) == 0 {
		return nil
	}
	return e.wrappedErrors[0]
}

// Message returns the exception's own text with its details, excluding
// wrapped errors.
func (e Exception) Message() string {
	if len(e.details) > 0 {
		return fmt.Sprintf("%s (%s)", e.message, strings.Join(e.details, ", "))
	}
	return e.message
}

func (e Exception) fullMessage() string {
	msg := e.Message()

	if len(e.wrappedErrors) > 0 {
		errs := make([]string, 0, len(e.wrappedErrors))
		for _, err := range e.wrappedErrors {
			if ex, ok := err.(Exception); ok {
				errs = append(errs, ex.fullMessage())
			} else {
				errs = append(errs, err.Error())
			}
		}
		msg = fmt.Sprintf("%s [%s]", msg, strings.Join(errs, " | "))
	}

	return msg
}

func (e Exception) withStackTrace() Exception {
	if debug.Load() && e.stackTrace == "" {
		var b strings.Builder
		for i := exceptionStacktraceHeight; i < exceptionStacktraceHeight+StackTraceHeight; i++ {
			pc, file, line, ok := runtime.Caller(i)
			if !ok {
				break
			}
			fmt.Fprintf(&b, "%s:%d\n", file, line)
			if f := runtime.FuncForPC(pc); f != nil {
				fmt.Fprintf(&b, "\t%s\n", f.Name())
			}
		}
		e.stackTrace = b.String()
	}
	return e
}

// StackTrace returns the captured stack trace, empty unless stack traces
// were enabled when the exception was created.
func (e Exception) StackTrace() string {
	return e.stackTrace
}

func (e Exception) Error() string {
	msg := e.fullMessage()

	if e.stackTrace != "" {
		msg = fmt.Sprintf("%s\n%s", msg, e.stackTrace)
	}

	return msg
}

func (e Exception) WithDetail(detail string) Exception {
	e.details = append(e.details[:len(e.details):len(e.details)], detail)
	return e
}

func (e Exception) WithDetailf(detail string, args ...any) Exception {
	return e.WithDetail(fmt.Sprintf(detail, args...))
}

// Wrap wraps the given error with the exception.
//
// If the given error is nil, the exception is returned as is.
//
// If the given error is being wrapped by the same exception type, the given error is returned with any additional context this exception has.
//
// If the exception already has wrapped errors, the given error is appended to the list.
//
// If the error to be wrapped has a stack trace, is it copied to the returned exception unless a stacktrace already exists.
func (e Exception) Wrap(err error) Exception {
	if err == nil {
		return e
	} else if ex, ok := err.(Exception); !ok {
		// if the error is not an exception, just add it to this one as a wrapped exception
	} else if e.Is(ex) {
		// if the wrapped error is the same type as this one, merge them
		ex.details = append(ex.details[:len(ex.details):len(ex.details)], e.details...)
		ex.wrappedErrors = append(ex.wrappedErrors[:len(ex.wrappedErrors):len(ex.wrappedErrors)], e.wrappedErrors...)
		return ex
	} else if ex.stackTrace != "" && e.stackTrace == "" {
		// if the wrapped error has a stack trace and this one does not, copy it
		e.stackTrace = ex.stackTrace
	}

	e.wrappedErrors = append(e.wrappedErrors[:len(e.wrappedErrors):len(e.wrappedErrors)], err)
	return e
}

func ErrNilKind(err ...error) Exception {
	return New("expected failure kind cannot be nil", err...)
}

func ErrNotFailureKind(err ...error) Exception {
	return New("expected failure kind does not implement error", err...)
}

func ErrMismatch(err ...error) Exception {
	return New("unexpected failure kind", err...)
}

func ErrNoFailure(err ...error) Exception {
	return New("expected failure was not raised", err...)
}

func ErrEmptyAggregate(err ...error) Exception {
	return New("aggregate failure needs at least one inner failure", err...)
}

func ErrPanic(err ...error) Exception {
	return New("test body panicked", err...)
}

func ErrTaskPanic(err ...error) Exception {
	return New("task panicked", err...)
}

func ErrDuplicateTest(err ...error) Exception {
	return New("test already has an expected failure registered", err...)
}

func ErrUnknownTest(err ...error) Exception {
	return New("no expected failure registered for test", err...)
}

func ErrInvalidConfig(err ...error) Exception {
	return New("invalid config", err...)
}

func ErrInvalidLogLevel(err ...error) Exception {
	return New("invalid log level supplied", err...)
}
