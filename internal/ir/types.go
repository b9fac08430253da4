package ir

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch reports an operand that cannot be bound to the type it is
// required to have.
var ErrTypeMismatch = errors.New("type mismatch")

// IsValueType reports whether values of t are copied on assignment rather
// than shared through a reference. Pointers, interfaces, maps, slices,
// channels and funcs are reference types; everything else, strings
// included, is a value type.
func IsValueType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}

// NeedsConversion reports whether binding a value of type from to a slot of
// type to requires an explicit Convert node. Two distinct reference types are
// bound as they are and assumed assignable.
func NeedsConversion(from, to reflect.Type) bool {
	if from == to {
		return false
	}
	return IsValueType(from) || IsValueType(to)
}

// CanConvert reports whether a Convert from one type to another can be
// realized. Unboxing out of an interface is always accepted here because its
// success depends on the dynamic value.
func CanConvert(from, to reflect.Type) bool {
	if from.Kind() == reflect.Interface {
		return true
	}
	return Convertible(from, to)
}

// Convertible is reflect's ConvertibleTo without the integer to string
// conversion, which yields the rune with that code point rather than the
// number.
func Convertible(from, to reflect.Type) bool {
	if to.Kind() == reflect.String && isInteger(from.Kind()) {
		return false
	}
	return from.ConvertibleTo(to)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// CheckBind verifies that src can be passed where a value of type to is
// expected. It is the check a realizer performs on every operand.
func CheckBind(src Expr, to reflect.Type) error {
	from := src.Type()
	if from == nil {
		return fmt.Errorf("%w: expression yields no value but %s is required", ErrTypeMismatch, to)
	}
	if c, ok := src.(*Convert); ok {
		if inner := c.X.Type(); inner == nil || !CanConvert(inner, c.To) {
			return fmt.Errorf("%w: cannot convert %s to %s", ErrTypeMismatch, typeString(inner), c.To)
		}
	}
	if !from.AssignableTo(to) {
		return fmt.Errorf("%w: %s is not assignable to %s", ErrTypeMismatch, from, to)
	}
	return nil
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "nothing"
	}
	return t.String()
}
