package task_test

import (
	"Inskape/expectfail/core/exception"
	"Inskape/expectfail/core/task"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunResult(t *testing.T) {
	tk := task.Run(context.TODO(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NotEqual(t, uuid.Nil, tk.ID())

	v, err := tk.Wait()
	require.NoError(t, err)
	require.Equal(t, 42, v)

	select {
	case <-tk.Done():
	default:
		t.Fatal("Done should be closed after Wait")
	}
}

func TestWaitWrapsFailure(t *testing.T) {
	cause := &exception.ArgumentNull{Name: "items"}
	tk := task.Run(context.TODO(), func(ctx context.Context) (bool, error) {
		return false, cause
	})

	_, err := tk.Wait()
	var agg *exception.Aggregate
	require.ErrorAs(t, err, &agg)
	require.Equal(t, 1, agg.Len())
	require.Same(t, cause, agg.Cause())
}

func TestAwaitSurfacesFailure(t *testing.T) {
	cause := &exception.ArgumentNull{Name: "items"}
	tk := task.Run(context.TODO(), func(ctx context.Context) (bool, error) {
		return true, cause
	})

	v, err := tk.Await()
	require.False(t, v)
	require.Same(t, cause, err)
}

func TestPanicFaultsTask(t *testing.T) {
	tk := task.Run(context.TODO(), func(ctx context.Context) (int, error) {
		panic("worker exploded")
	})

	_, err := tk.Await()
	require.ErrorIs(t, err, exception.ErrTaskPanic())
	require.Contains(t, err.Error(), "worker exploded")
}

func TestPanicWithErrorValue(t *testing.T) {
	cause := &exception.ArgumentOutOfRange{Name: "index", Value: 7}
	tk := task.Run(context.TODO(), func(ctx context.Context) (int, error) {
		panic(cause)
	})

	_, err := tk.Wait()
	var agg *exception.Aggregate
	require.ErrorAs(t, err, &agg)
	require.Same(t, cause, agg.Cause())
}

func TestWhenAll(t *testing.T) {
	first := &exception.ArgumentNull{Name: "a"}
	third := &exception.ArgumentOutOfRange{Name: "c"}

	err := task.WhenAll(context.TODO(),
		func(ctx context.Context) error {
			time.Sleep(20 * time.Millisecond)
			return first
		},
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return third },
	)

	var agg *exception.Aggregate
	require.ErrorAs(t, err, &agg)
	if diff := cmp.Diff([]error{first, third}, agg.Errors()); diff != "" {
		t.Fatalf("aggregate order mismatch (-want +got):\n%s", diff)
	}
}

func TestWhenAllSucceeds(t *testing.T) {
	err := task.WhenAll(context.TODO(),
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return nil },
	)
	require.NoError(t, err)
	require.NoError(t, task.WhenAll(context.TODO()))
}

func TestDelay(t *testing.T) {
	require.NoError(t, task.Delay(context.TODO(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := task.Delay(ctx, time.Hour)
	require.True(t, errors.Is(err, context.Canceled))
}
