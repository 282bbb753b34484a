package harness

import (
	"Inskape/expectfail"
	"Inskape/expectfail/core/atomic"
	"Inskape/expectfail/core/exception"
	"testing"
)

// Registry associates test names with the failure each test expects.
type Registry struct {
	specs    atomic.Map[string, expectfail.Spec]
	verifier *expectfail.Verifier
}

// NewRegistry creates a Registry verifying with v, or with the default
// verifier when v is nil.
func NewRegistry(v *expectfail.Verifier) *Registry {
	return &Registry{verifier: v}
}

// Register records spec for the test called name. Each test can be
// registered once.
func (r *Registry) Register(name string, spec expectfail.Spec) error {
	if spec.Kind() == nil {
		return exception.ErrNilKind().WithDetail(name)
	}
	if !r.specs.StoreNew(name, spec) {
		return exception.ErrDuplicateTest().WithDetail(name)
	}
	return nil
}

func (r *Registry) Lookup(name string) (expectfail.Spec, bool) {
	return r.specs.Load(name)
}

// Names returns the registered test names in lexical order.
func (r *Registry) Names() []string {
	return r.specs.Keys(func(a, b string) bool { return a < b })
}

// Run runs body under the spec registered for t.Name().
func (r *Registry) Run(t testing.TB, body func() error) {
	t.Helper()
	tc := contextAt(t, 2)

	spec, ok := r.Lookup(t.Name())
	if !ok {
		t.Fatal(exception.ErrUnknownTest().WithDetail(t.Name()))
		return
	}

	verify := expectfail.Verify
	if r.verifier != nil {
		verify = r.verifier.Verify
	}
	run(t, tc, verify, spec, body)
}
