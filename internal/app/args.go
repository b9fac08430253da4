package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/neforth/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var ErrArgs = errors.New("invalid program arguments")

// decodeArgs evaluates src as an HCL tuple expression and decodes one element
// per parameter of sig. An empty src is an empty tuple.
func decodeArgs(ctx context.Context, src string, sig reflect.Type) ([]reflect.Value, error) {
	logger := ctxlog.FromContext(ctx)

	if strings.TrimSpace(src) == "" {
		src = "[]"
	}
	expr, diags := hclsyntax.ParseExpression([]byte(src), "args", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrArgs, diags.Error())
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrArgs, diags.Error())
	}

	ty := val.Type()
	if val.IsNull() || !val.IsWhollyKnown() || !(ty.IsTupleType() || ty.IsListType()) {
		return nil, fmt.Errorf("%w: expected a list like [1, 2], got %s", ErrArgs, ty.FriendlyName())
	}
	if n := val.LengthInt(); n != sig.NumIn() {
		return nil, fmt.Errorf("%w: program takes %d inputs, got %d", ErrArgs, sig.NumIn(), n)
	}

	want := make([]cty.Type, sig.NumIn())
	for i := range want {
		want[i] = impliedType(sig.In(i))
	}
	converted, err := convert.Convert(val, cty.Tuple(want))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgs, err)
	}

	out := make([]reflect.Value, sig.NumIn())
	for i, elem := range converted.AsValueSlice() {
		v, err := fromCty(elem, sig.In(i))
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %w", ErrArgs, i, err)
		}
		out[i] = v
	}
	logger.Debug("Program arguments decoded.", "count", len(out))
	return out, nil
}

// impliedType maps a Go parameter type to the cty type its argument is
// converted to. Interfaces accept any value.
func impliedType(t reflect.Type) cty.Type {
	if t.Kind() == reflect.Interface {
		return cty.DynamicPseudoType
	}
	ty, err := gocty.ImpliedType(reflect.Zero(t).Interface())
	if err != nil {
		return cty.DynamicPseudoType
	}
	return ty
}

func fromCty(v cty.Value, t reflect.Type) (reflect.Value, error) {
	ptr := reflect.New(t)
	if t.Kind() != reflect.Interface {
		if err := gocty.FromCtyValue(v, ptr.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}

	native, err := ctyToNative(v)
	if err != nil {
		return reflect.Value{}, err
	}
	if native == nil {
		return ptr.Elem(), nil
	}
	nv := reflect.ValueOf(native)
	if !nv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%s does not implement %s", nv.Type(), t)
	}
	ptr.Elem().Set(nv)
	return ptr.Elem(), nil
}

// ctyToNative converts a cty.Value to its most natural Go counterpart for an
// interface-typed input. Numbers become float64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			item, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			item, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = item
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
