// Package word describes operators ("words") that can be applied by the
// compiler. A word is an opaque Go func; only its signature matters at
// compile time.
package word

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
)

var (
	ErrNilOperator    = errors.New("operator is nil")
	ErrNotFunc        = errors.New("operator is not a func")
	ErrVariadic       = errors.New("variadic operators are not supported")
	ErrTooManyResults = errors.New("operator returns more than one value")
	ErrInvalidName    = errors.New("invalid operator name")
)

// Word is a validated operator together with its declared signature.
type Word struct {
	// Name labels the operator in diagnostics. It is always a valid HCL
	// identifier so that rendered programs can be parsed back.
	Name string

	Fn  reflect.Value
	In  []reflect.Type
	Out reflect.Type // nil for an effectful operator
}

// New validates fn and derives the word's name from its symbol.
func New(fn any) (*Word, error) {
	return Named("", fn)
}

// Named validates fn and labels it with name. An empty name is derived from
// the func's symbol.
func Named(name string, fn any) (*Word, error) {
	if fn == nil {
		return nil, ErrNilOperator
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: got %s", ErrNotFunc, t)
	}
	if v.IsNil() {
		return nil, fmt.Errorf("%w: nil %s", ErrNilOperator, t)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: %s", ErrVariadic, t)
	}
	if t.NumOut() > 1 {
		return nil, fmt.Errorf("%w: %s has %d results", ErrTooManyResults, t, t.NumOut())
	}

	if name == "" {
		name = symbolName(v)
	} else if !hclsyntax.ValidIdentifier(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	in := make([]reflect.Type, t.NumIn())
	for i := range in {
		in[i] = t.In(i)
	}
	var out reflect.Type
	if t.NumOut() == 1 {
		out = t.Out(0)
	}

	return &Word{Name: name, Fn: v, In: in, Out: out}, nil
}

// Arity returns the number of operands the word consumes.
func (w *Word) Arity() int { return len(w.In) }

// Producing reports whether the word pushes a result.
func (w *Word) Producing() bool { return w.Out != nil }

// String renders the word with its signature, e.g. "add(int, int) int".
func (w *Word) String() string {
	params := make([]string, len(w.In))
	for i, t := range w.In {
		params[i] = t.String()
	}
	s := w.Name + "(" + strings.Join(params, ", ") + ")"
	if w.Out != nil {
		s += " " + w.Out.String()
	}
	return s
}

// symbolName turns a runtime symbol such as "example.com/pkg.TestX.func1"
// into an identifier such as "TestX_func1".
func symbolName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "word"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.TrimLeft(name, "_")
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "word_" + name
	}
	return name
}
