// Package harness connects expected failure verification to the testing
// package.
package harness

import (
	"Inskape/expectfail"
	"Inskape/expectfail/core/exception"
	"context"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/sourcegraph/conc/panics"
)

const unknownClass = "unknown"

// Context identifies the calling test: the package path of the calling
// function and the name of t.
func Context(t testing.TB) expectfail.TestContext {
	return contextAt(t, 2)
}

// Expect runs body and fails t unless it fails the way spec describes.
func Expect(t testing.TB, spec expectfail.Spec, body func() error) {
	t.Helper()
	run(t, contextAt(t, 2), expectfail.Verify, spec, body)
}

// ExpectKind is Expect for a failure of type E.
func ExpectKind[E error](t testing.TB, body func() error, opts ...expectfail.Option) {
	t.Helper()
	run(t, contextAt(t, 2), expectfail.Verify, expectfail.For[E](opts...), body)
}

type verifyFunc func(ctx context.Context, spec expectfail.Spec, tc expectfail.TestContext, captured error) error

func run(t testing.TB, tc expectfail.TestContext, verify verifyFunc, spec expectfail.Spec, body func() error) {
	t.Helper()
	if err := verify(t.Context(), spec, tc, Capture(body)); err != nil {
		t.Fatal(err)
	}
}

// Capture runs body and returns the error it returned or panicked with.
// Panics with other values become exception.ErrPanic.
func Capture(body func() error) (err error) {
	recovered := panics.Try(func() { err = body() })
	if recovered == nil {
		return err
	}
	if perr, ok := recovered.Value.(error); ok {
		return perr
	}
	return exception.ErrPanic().WithDetail(fmt.Sprint(recovered.Value))
}

func contextAt(t testing.TB, skip int) expectfail.TestContext {
	tc := expectfail.TestContext{QualifiedClassName: unknownClass, TestName: t.Name()}
	if pc, _, _, ok := runtime.Caller(skip); ok {
		if f := runtime.FuncForPC(pc); f != nil {
			tc.QualifiedClassName = packagePath(f.Name())
		}
	}
	return tc
}

// funcMarkers start the function part of a qualified function name.
var funcMarkers = []string{".Test", ".Benchmark", ".Fuzz", ".Example", ".(", ".func"}

// packagePath strips the function part from a qualified function name such
// as "example.com/pkg_test.TestX.func1". The last path element may contain
// dots, as in "gopkg.in/yaml.v3_test.TestX".
func packagePath(funcName string) string {
	if bracket := strings.IndexByte(funcName, '['); bracket >= 0 {
		funcName = funcName[:bracket]
	}
	slash := strings.LastIndex(funcName, "/")
	last := funcName[slash+1:]

	cut := -1
	for _, marker := range funcMarkers {
		if i := strings.Index(last, marker); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		cut = strings.LastIndex(last, ".")
	}
	if cut < 0 {
		return funcName
	}
	return funcName[:slash+1+cut]
}
