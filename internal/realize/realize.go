// Package realize turns an ir.Lambda into a callable Go func.
//
// Every node is compiled once into a closure over a per-call frame. The
// closures are then wrapped with reflect.MakeFunc so the result has exactly
// the requested func type. All static type checks happen here, before the
// func is handed out; only unboxing out of an interface can still fail when
// the func is invoked.
package realize

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/specialistvlad/neforth/internal/ir"
)

var (
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrMalformed         = errors.New("malformed program")
)

// Closure realizes programs by closure compilation.
type Closure struct{}

// New returns a closure realizer.
func New() *Closure {
	return &Closure{}
}

// frame is the state of one invocation.
type frame struct {
	params []reflect.Value
	locals []reflect.Value
}

type (
	evalFn func(*frame) reflect.Value
	execFn func(*frame)
)

// Realize compiles l into a func of type sig.
func (r *Closure) Realize(l *ir.Lambda, sig reflect.Type) (reflect.Value, error) {
	if l == nil || l.Body == nil {
		return reflect.Value{}, fmt.Errorf("%w: lambda has no body", ErrMalformed)
	}
	if err := checkSignature(l, sig); err != nil {
		return reflect.Value{}, err
	}

	b := newBuilder(l)
	body, err := b.block(l.Body)
	if err != nil {
		return reflect.Value{}, err
	}

	localTypes := make([]reflect.Type, len(l.Body.Locals))
	for i, loc := range l.Body.Locals {
		localTypes[i] = loc.T
	}

	fn := reflect.MakeFunc(sig, func(args []reflect.Value) []reflect.Value {
		fr := &frame{params: args, locals: make([]reflect.Value, len(localTypes))}
		for i, t := range localTypes {
			fr.locals[i] = reflect.New(t).Elem()
		}
		body(fr)
		return nil
	})
	return fn, nil
}

// checkSignature verifies that sig takes exactly the lambda's parameters, in
// order, and returns nothing.
func checkSignature(l *ir.Lambda, sig reflect.Type) error {
	if sig == nil || sig.Kind() != reflect.Func {
		return fmt.Errorf("%w: %v is not a func type", ErrSignatureMismatch, sig)
	}
	if sig.IsVariadic() {
		return fmt.Errorf("%w: %s is variadic", ErrSignatureMismatch, sig)
	}
	if sig.NumIn() != len(l.Params) {
		return fmt.Errorf("%w: %s takes %d parameters, program has %d inputs", ErrSignatureMismatch, sig, sig.NumIn(), len(l.Params))
	}
	for i, p := range l.Params {
		if sig.In(i) != p.T {
			return fmt.Errorf("%w: parameter %d of %s is %s, input %s is %s", ErrSignatureMismatch, i, sig, sig.In(i), p.Name, p.T)
		}
	}
	if sig.NumOut() != 0 {
		return fmt.Errorf("%w: %s returns %d values, program returns none", ErrSignatureMismatch, sig, sig.NumOut())
	}
	return nil
}
