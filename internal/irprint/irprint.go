// Package irprint renders assembled programs for diagnostics.
//
// Programs are printed as HCL so that each line is a parseable expression:
//
//	params = [i0]
//	locals = [o0]
//	o0     = add(i0, 3)
//	print(convert(o0, "interface {}"))
package irprint

import (
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/neforth/internal/ir"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Sprint renders l as a string.
func Sprint(l *ir.Lambda) string {
	return string(render(l).Bytes())
}

// Fprint writes the rendering of l to w.
func Fprint(w io.Writer, l *ir.Lambda) error {
	_, err := render(l).WriteTo(w)
	return err
}

func render(l *ir.Lambda) *hclwrite.File {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	params := make([]hclwrite.Tokens, len(l.Params))
	for i, p := range l.Params {
		params[i] = hclwrite.TokensForIdentifier(p.Name)
	}
	body.SetAttributeRaw("params", hclwrite.TokensForTuple(params))

	if l.Body == nil {
		return f
	}

	locals := make([]hclwrite.Tokens, len(l.Body.Locals))
	for i, loc := range l.Body.Locals {
		locals[i] = hclwrite.TokensForIdentifier(loc.Name)
	}
	body.SetAttributeRaw("locals", hclwrite.TokensForTuple(locals))

	for _, op := range l.Body.Ops {
		if a, ok := op.(*ir.Assign); ok {
			body.SetAttributeRaw(a.Dst.Name, Tokens(a.Src))
			continue
		}
		line := Tokens(op)
		line = append(line, &hclwrite.Token{Type: hclsyntax.TokenNewline, Bytes: []byte("\n")})
		body.AppendUnstructuredTokens(line)
	}
	return f
}

// Tokens renders a single expression.
func Tokens(e ir.Expr) hclwrite.Tokens {
	switch e := e.(type) {
	case *ir.Const:
		return constTokens(e.Value)
	case *ir.Param:
		return hclwrite.TokensForIdentifier(e.Name)
	case *ir.Local:
		return hclwrite.TokensForIdentifier(e.Name)
	case *ir.Convert:
		return hclwrite.TokensForFunctionCall("convert", Tokens(e.X), hclwrite.TokensForValue(cty.StringVal(e.To.String())))
	case *ir.Invoke:
		args := make([]hclwrite.Tokens, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Tokens(arg)
		}
		return hclwrite.TokensForFunctionCall(e.Name, args...)
	case *ir.Assign:
		// Only reachable when an assignment is nested; top-level ones are
		// rendered as attributes.
		return hclwrite.TokensForFunctionCall("assign", hclwrite.TokensForIdentifier(e.Dst.Name), Tokens(e.Src))
	default:
		return hclwrite.TokensForValue(cty.StringVal(fmt.Sprintf("%T", e)))
	}
}

// constTokens renders v as an HCL literal when cty can represent it and as a
// quoted Go rendering otherwise.
func constTokens(v reflect.Value) hclwrite.Tokens {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		return hclwrite.TokensForValue(cty.NullVal(cty.DynamicPseudoType))
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if v.IsNil() {
			return hclwrite.TokensForValue(cty.NullVal(cty.DynamicPseudoType))
		}
	}

	native := v.Interface()
	if v.CanFloat() && (math.IsNaN(v.Float()) || math.IsInf(v.Float(), 0)) {
		return hclwrite.TokensForValue(cty.StringVal(fmt.Sprintf("%v", native)))
	}
	if cv, ok := toCty(native); ok {
		return hclwrite.TokensForValue(cv)
	}
	return hclwrite.TokensForValue(cty.StringVal(fmt.Sprintf("%v", native)))
}

// toCty converts native to a cty value. cty numbers cannot hold NaN or
// infinities, and gocty panics on them, including inside collections.
func toCty(native any) (cv cty.Value, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			cv, ok = cty.NilVal, false
		}
	}()

	ty, err := gocty.ImpliedType(native)
	if err != nil {
		return cty.NilVal, false
	}
	cv, err = gocty.ToCtyValue(native, ty)
	if err != nil {
		return cty.NilVal, false
	}
	return cv, true
}
