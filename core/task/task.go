// Package task runs functions asynchronously the way a task runtime does:
// waiting on a failed task reports its failure wrapped in an
// *exception.Aggregate, awaiting it reports the failure itself.
package task

import (
	"Inskape/expectfail/core/atomic"
	"Inskape/expectfail/core/exception"
	"Inskape/expectfail/internal/encode"
	"Inskape/expectfail/internal/global"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer(global.Scope("core:task"))
	meter  = otel.Meter(global.Scope("core:task"))
)

var (
	startedCounter metric.Int64Counter
	faultedCounter metric.Int64Counter
)

func init() {
	var err error
	startedCounter, err = meter.Int64Counter("task.started", metric.WithDescription("The number of tasks started"), metric.WithUnit("call"))
	if err != nil {
		panic(err)
	}
	faultedCounter, err = meter.Int64Counter("task.faulted", metric.WithDescription("The number of tasks that returned an error or panicked"), metric.WithUnit("call"))
	if err != nil {
		panic(err)
	}
}

type Func[T any] func(ctx context.Context) (T, error)

type Task[T any] struct {
	id     uuid.UUID
	done   chan struct{}
	result atomic.Value[T]
	err    atomic.Value[error]
}

// Run starts fn on its own goroutine. A panic in fn faults the task.
// The task is not cancelled when ctx is done; fn must observe ctx itself.
func Run[T any](ctx context.Context, fn Func[T]) *Task[T] {
	t := &Task[T]{id: uuid.New(), done: make(chan struct{})}
	go func() {
		defer close(t.done)
		res, err := call(ctx, t.id, fn)
		if err != nil {
			t.err.Store(err)
			return
		}
		t.result.Store(res)
	}()
	return t
}

func (t *Task[T]) ID() uuid.UUID {
	return t.id
}

// Done is closed once the task has completed.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task completes. A failure is returned as an
// *exception.Aggregate holding the task's error.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	if err := t.err.Load(); err != nil {
		var zero T
		agg, aggErr := exception.NewAggregate(err)
		if aggErr != nil {
			return zero, aggErr
		}
		return zero, agg
	}
	return t.result.Load(), nil
}

// Await blocks until the task completes and returns its error unwrapped.
func (t *Task[T]) Await() (T, error) {
	<-t.done
	if err := t.err.Load(); err != nil {
		var zero T
		return zero, err
	}
	return t.result.Load(), nil
}

// WhenAll runs fns concurrently and waits for all of them. The failures are
// returned as one *exception.Aggregate ordered like fns, or nil when every
// function succeeded.
func WhenAll(ctx context.Context, fns ...func(ctx context.Context) error) error {
	errs := iter.Map(fns, func(fn *func(ctx context.Context) error) error {
		_, err := call[struct{}](ctx, uuid.New(), func(ctx context.Context) (struct{}, error) {
			return struct{}{}, (*fn)(ctx)
		})
		return err
	})

	agg, err := exception.NewAggregate(errs...)
	if err != nil {
		return nil
	}
	return agg
}

// Delay waits for d or until ctx is done.
func Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func call[T any](ctx context.Context, id uuid.UUID, fn Func[T]) (res T, err error) {
	ctx, span := tracer.Start(ctx, "Task", trace.WithAttributes(attribute.String("task.id", encode.ID(id))))
	defer span.End()

	startedCounter.Add(ctx, 1)

	if recovered := panics.Try(func() { res, err = fn(ctx) }); recovered != nil {
		var zero T
		res, err = zero, panicError(recovered)
	}

	if err != nil {
		faultedCounter.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "task faulted")
	}
	return res, err
}

// panicError turns a recovered panic into the task's failure. Error values
// are the failure themselves.
func panicError(recovered *panics.Recovered) error {
	if err, ok := recovered.Value.(error); ok {
		return err
	}
	return exception.ErrTaskPanic().WithDetail(fmt.Sprint(recovered.Value))
}
