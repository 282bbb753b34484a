package expectfail_test

import (
	"Inskape/expectfail"
	"Inskape/expectfail/core/exception"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNewRejectsNilKind(t *testing.T) {
	if _, err := expectfail.New(nil); !errors.Is(err, exception.ErrNilKind()) {
		t.Fatalf("err = %v, want %v", err, exception.ErrNilKind())
	}
	if _, err := expectfail.Of(nil); !errors.Is(err, exception.ErrNilKind()) {
		t.Fatalf("err = %v, want %v", err, exception.ErrNilKind())
	}
}

func TestNewRejectsNonFailureKind(t *testing.T) {
	_, err := expectfail.New(reflect.TypeFor[string]())
	if !errors.Is(err, exception.ErrNotFailureKind()) {
		t.Fatalf("err = %v, want %v", err, exception.ErrNotFailureKind())
	}
	if !strings.Contains(err.Error(), "string") {
		t.Fatalf("error should name the rejected kind, got %q", err)
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, exception.ErrNotFailureKind()) {
			t.Fatalf("recovered %v, want %v", r, exception.ErrNotFailureKind())
		}
	}()
	expectfail.MustNew(reflect.TypeFor[int]())
}

func TestSpecDefaults(t *testing.T) {
	spec := expectfail.For[*exception.ArgumentNull]()
	if spec.Kind() != reflect.TypeFor[*exception.ArgumentNull]() {
		t.Fatalf("Kind() = %v", spec.Kind())
	}
	if spec.AllowsDerived() {
		t.Fatal("derived matching should be off by default")
	}
	if got, want := spec.String(), "*Inskape/expectfail/core/exception.ArgumentNull"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestOfUsesDynamicType(t *testing.T) {
	spec, err := expectfail.Of(&exception.ArgumentOutOfRange{}, expectfail.AllowDerived())
	if err != nil {
		t.Fatal(err)
	}
	if spec.Kind() != reflect.TypeFor[*exception.ArgumentOutOfRange]() || !spec.AllowsDerived() {
		t.Fatalf("spec = %v", spec)
	}
}

func TestNoFailureMessage(t *testing.T) {
	tc := expectfail.TestContext{QualifiedClassName: "Inskape/expectfail_test", TestName: "TestNoFailure"}

	generated := expectfail.For[*exception.ArgumentNull]().NoFailureMessage(tc)
	for _, part := range []string{tc.QualifiedClassName, tc.TestName, "*Inskape/expectfail/core/exception.ArgumentNull"} {
		if !strings.Contains(generated, part) {
			t.Errorf("message %q does not contain %q", generated, part)
		}
	}

	custom := expectfail.For[*exception.ArgumentNull](expectfail.WithNoFailureMessage("collector accepted nil")).NoFailureMessage(tc)
	if custom != "collector accepted nil" {
		t.Fatalf("custom message = %q", custom)
	}
}
