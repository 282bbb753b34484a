package expectfail

import (
	"Inskape/expectfail/core/exception"
	"Inskape/expectfail/internal/global"
	"errors"
	"reflect"
	"strings"
)

const chainSeparator = " ---> "

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// TypeName returns the fully qualified name of t, e.g. "*io/fs.PathError".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		return "*" + TypeName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// RenderChain renders err and its causes as
// "{type}: {message} ---> {type}: {message}...".
func RenderChain(err error) string {
	return renderChain(err, global.DefaultMaxChainDepth)
}

func renderChain(err error, maxDepth int) string {
	var b strings.Builder
	for depth := 0; err != nil && depth < maxDepth; depth++ {
		if depth > 0 {
			b.WriteString(chainSeparator)
		}
		b.WriteString(TypeName(reflect.TypeOf(err)))
		b.WriteString(": ")

		// methods of a typed nil may dereference their receiver
		if isNil(err) {
			b.WriteString("<nil>")
			break
		}

		next := cause(err)
		b.WriteString(lineBreaks.Replace(ownMessage(err, next)))

		err = next
	}
	return b.String()
}

func isNil(err error) bool {
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func cause(err error) error {
	if c, ok := err.(interface{ Cause() error }); ok {
		return c.Cause()
	}
	return errors.Unwrap(err)
}

func ownMessage(err, next error) string {
	var msg string
	if m, ok := err.(interface{ Message() string }); ok {
		msg = m.Message()
	} else {
		msg = err.Error()
		if next != nil {
			msg = strings.TrimSuffix(msg, ": "+next.Error())
		}
	}

	if d, ok := err.(exception.Diagnostic); ok {
		msg += d.Diagnostic()
	}
	return msg
}
