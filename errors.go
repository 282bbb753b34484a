package expectfail

import (
	"Inskape/expectfail/core/exception"
	"fmt"
	"reflect"
)

// MismatchError reports that the test body failed with something other than
// the expected failure. It unwraps to the captured failure.
type MismatchError struct {
	Test     TestContext
	Actual   reflect.Type
	Expected reflect.Type
	Chain    string

	captured error
}

func (m *MismatchError) Error() string {
	return fmt.Sprintf("Test method %s.%s failed with %s, but %s was expected. Failure message: %s",
		m.Test.QualifiedClassName,
		m.Test.TestName,
		TypeName(m.Actual),
		TypeName(m.Expected),
		m.Chain,
	)
}

func (m *MismatchError) Unwrap() error {
	return m.captured
}

func (m *MismatchError) Is(target error) bool {
	return exception.ErrMismatch().Is(target)
}

// NoFailureError reports that the test body completed without failing.
type NoFailureError struct {
	Test     TestContext
	Expected reflect.Type

	message string
}

func (n *NoFailureError) Error() string {
	return n.message
}

func (n *NoFailureError) Is(target error) bool {
	return exception.ErrNoFailure().Is(target)
}
