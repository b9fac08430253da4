package compiler

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/neforth/internal/ir"
)

// Lit pushes a constant of static type T.
func Lit[T any](c *Compiler, v T) error {
	return c.PushLiteral(v, reflect.TypeFor[T]())
}

// PushLiteral pushes value as a constant of static type t. A nil t means the
// value's dynamic type. A nil value is the zero value of a nillable t.
func (c *Compiler) PushLiteral(value any, t reflect.Type) error {
	if c.finished {
		return ErrFinished
	}

	k, err := newConst(value, t)
	if err != nil {
		return err
	}
	c.outputs.push(k)
	c.logger.Debug("Literal pushed.", "type", k.Type().String(), "value", value, "depth", c.outputs.len())
	return nil
}

func newConst(value any, t reflect.Type) (*ir.Const, error) {
	if t == nil {
		if value == nil {
			return nil, fmt.Errorf("%w: untyped nil", ErrLiteralType)
		}
		t = reflect.TypeOf(value)
	}

	v := reflect.New(t).Elem()
	if value == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return &ir.Const{Value: v}, nil
		default:
			return nil, fmt.Errorf("%w: nil is not a %s", ErrLiteralType, t)
		}
	}

	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(t) {
		return nil, fmt.Errorf("%w: %s is not assignable to %s", ErrLiteralType, rv.Type(), t)
	}
	v.Set(rv)
	return &ir.Const{Value: v}, nil
}
