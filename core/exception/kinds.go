package exception

import "fmt"

// AssertionFailure marks errors produced by assertion primitives. They are
// never treated as an expected failure.
type AssertionFailure interface {
	error
	AssertionFailure()
}

// Diagnostic is implemented by failures that carry extra diagnostic text
// worth appending to their message when a failure chain is rendered.
type Diagnostic interface {
	Diagnostic() string
}

// ArgumentError is implemented by every argument validation failure.
type ArgumentError interface {
	error
	Param() string
}

type Assertion struct {
	message string
}

// Assertf creates an assertion failure.
func Assertf(format string, args ...any) *Assertion {
	return &Assertion{message: fmt.Sprintf(format, args...)}
}

func (a *Assertion) AssertionFailure() {}

func (a *Assertion) Error() string {
	return "assertion failed: " + a.message
}

func (a *Assertion) Message() string {
	return a.Error()
}

// NotFound reports a missing resource. Log holds the diagnostic output
// gathered while resolving it, if any.
type NotFound struct {
	Resource string
	Log      string
	Err      error
}

func (n *NotFound) Error() string {
	if n.Err != nil {
		return fmt.Sprintf("resource %q not found: %v", n.Resource, n.Err)
	}
	return fmt.Sprintf("resource %q not found", n.Resource)
}

func (n *NotFound) Message() string {
	return fmt.Sprintf("resource %q not found", n.Resource)
}

func (n *NotFound) Diagnostic() string {
	return n.Log
}

func (n *NotFound) Unwrap() error {
	return n.Err
}

type ArgumentNull struct {
	Name string
}

func (a *ArgumentNull) Error() string {
	return fmt.Sprintf("value cannot be nil (parameter %q)", a.Name)
}

func (a *ArgumentNull) Param() string {
	return a.Name
}

type ArgumentOutOfRange struct {
	Name  string
	Value any
}

func (a *ArgumentOutOfRange) Error() string {
	if a.Value == nil {
		return fmt.Sprintf("value is out of range (parameter %q)", a.Name)
	}
	return fmt.Sprintf("value %v is out of range (parameter %q)", a.Value, a.Name)
}

func (a *ArgumentOutOfRange) Param() string {
	return a.Name
}
