// Package expectfail verifies that a test body failed with an expected
// failure kind. In exact mode a failure wrapped by a task runtime in an
// *exception.Aggregate still matches when one of its inner failures has the
// expected kind.
package expectfail

import (
	"Inskape/expectfail/core/exception"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// TestContext identifies the test case being verified.
type TestContext struct {
	QualifiedClassName string
	TestName           string
}

// Spec describes the failure a test case is expected to produce. It is
// immutable once built.
type Spec struct {
	kind             reflect.Type
	allowDerived     bool
	noFailureMessage string
}

type Option func(*Spec)

// AllowDerived accepts any failure whose type is assignable to the expected
// kind instead of requiring the exact type.
func AllowDerived() Option {
	return func(s *Spec) {
		s.allowDerived = true
	}
}

// WithNoFailureMessage sets the message reported when the test body does not
// fail at all.
func WithNoFailureMessage(msg string) Option {
	return func(s *Spec) {
		s.noFailureMessage = msg
	}
}

// New creates a Spec expecting failures of the given kind.
func New(kind reflect.Type, opts ...Option) (Spec, error) {
	if kind == nil {
		return Spec{}, exception.ErrNilKind()
	}
	if !kind.Implements(errorType) {
		return Spec{}, exception.ErrNotFailureKind().WithDetail(TypeName(kind))
	}

	s := Spec{kind: kind}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

// MustNew is like New but panics on configuration errors.
func MustNew(kind reflect.Type, opts ...Option) Spec {
	s, err := New(kind, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Of creates a Spec expecting failures with the dynamic type of sample.
func Of(sample error, opts ...Option) (Spec, error) {
	if sample == nil {
		return Spec{}, exception.ErrNilKind()
	}
	return New(reflect.TypeOf(sample), opts...)
}

// For creates a Spec expecting failures of type E.
func For[E error](opts ...Option) Spec {
	return MustNew(reflect.TypeFor[E](), opts...)
}

// Kind returns the expected failure type.
func (s Spec) Kind() reflect.Type {
	return s.kind
}

// AllowsDerived reports whether assignable types match as well as the exact one.
func (s Spec) AllowsDerived() bool {
	return s.allowDerived
}

// NoFailureMessage returns the message reported for tc when the test body
// does not fail.
func (s Spec) NoFailureMessage(tc TestContext) string {
	if s.noFailureMessage != "" {
		return s.noFailureMessage
	}
	return tc.QualifiedClassName + " - " + tc.TestName + ", " + TypeName(s.kind) + ", expected failure was not raised"
}

func (s Spec) String() string {
	if s.kind == nil {
		return "<invalid>"
	}
	if s.allowDerived {
		return TypeName(s.kind) + " (or derived)"
	}
	return TypeName(s.kind)
}
