package exception

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Aggregate is one or more independent failures collected into a single
// error, typically by a task that ran concurrent work. The inner failures
// keep the order in which they were supplied.
type Aggregate struct {
	errs []error
}

// NewAggregate combines errs into an Aggregate. Nil errors are dropped and
// the rest keep their order. When several errors remain, multierr groups
// among them are flattened in place into their members. A single remaining
// error is kept as is, even when it holds several errors itself, so
// aggregates may nest. Other multi-errors (errors.Join, *Aggregate) are
// never flattened.
func NewAggregate(errs ...error) (*Aggregate, error) {
	combined := multierr.Combine(errs...)
	if combined == nil {
		return nil, ErrEmptyAggregate()
	}

	var nonNil int
	for _, err := range errs {
		if err != nil {
			nonNil++
		}
	}
	if nonNil == 1 {
		return &Aggregate{errs: []error{combined}}, nil
	}
	return &Aggregate{errs: multierr.Errors(combined)}, nil
}

// Errors returns a copy of the inner failures.
func (a *Aggregate) Errors() []error {
	if a == nil {
		return nil
	}
	out := make([]error, len(a.errs))
	copy(out, a.errs)
	return out
}

// Len returns the number of inner failures.
func (a *Aggregate) Len() int {
	if a == nil {
		return 0
	}
	return len(a.errs)
}

func (a *Aggregate) Unwrap() []error {
	return a.Errors()
}

// Cause returns the first inner failure.
func (a *Aggregate) Cause() error {
	if a == nil || len(a.errs) == 0 {
		return nil
	}
	return a.errs[0]
}

func (a *Aggregate) Message() string {
	return fmt.Sprintf("one or more errors occurred (%d)", a.Len())
}

func (a *Aggregate) Error() string {
	msgs := make([]string, 0, a.Len())
	for _, err := range a.Errors() {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s [%s]", a.Message(), strings.Join(msgs, " | "))
}
