package harness_test

import (
	"Inskape/expectfail"
	"Inskape/expectfail/core/exception"
	"Inskape/expectfail/harness"
	"Inskape/expectfail/internal/fixture"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	r := harness.NewRegistry(nil)

	require.NoError(t, r.Register("TestA", expectfail.For[*exception.ArgumentNull]()))
	require.ErrorIs(t, r.Register("TestA", expectfail.For[*exception.ArgumentNull]()), exception.ErrDuplicateTest())
	require.ErrorIs(t, r.Register("TestB", expectfail.Spec{}), exception.ErrNilKind())
	require.NoError(t, r.Register("TestC", expectfail.For[exception.ArgumentError](expectfail.AllowDerived())))

	require.Equal(t, []string{"TestA", "TestC"}, r.Names())

	spec, ok := r.Lookup("TestC")
	require.True(t, ok)
	require.True(t, spec.AllowsDerived())

	_, ok = r.Lookup("TestB")
	require.False(t, ok)
}

func TestRegistryRun(t *testing.T) {
	r := harness.NewRegistry(expectfail.NewVerifier())
	require.NoError(t, r.Register("TestRegistryRun/direct", expectfail.For[*exception.ArgumentNull]()))
	require.NoError(t, r.Register("TestRegistryRun/async", expectfail.For[*exception.ArgumentNull]()))

	c := &fixture.Collector{}
	t.Run("direct", func(t *testing.T) {
		r.Run(t, func() error {
			_, err := c.Accept(nil)
			return err
		})
	})
	t.Run("async", func(t *testing.T) {
		r.Run(t, func() error {
			_, err := c.AcceptAsync(context.TODO(), nil).Wait()
			return err
		})
	})
}

func TestRegistryRunUnknownTest(t *testing.T) {
	r := harness.NewRegistry(nil)
	rec := &recorder{TB: t}

	called := false
	r.Run(rec, func() error {
		called = true
		return nil
	})

	require.False(t, called)
	require.Len(t, rec.fatals, 1)
	require.Contains(t, rec.fatals[0], "no expected failure registered for test (TestRegistryRunUnknownTest)")
}
