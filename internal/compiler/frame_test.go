package compiler

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/neforth/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	intType   = reflect.TypeFor[int]()
	int32Type = reflect.TypeFor[int32]()
	int64Type = reflect.TypeFor[int64]()
	anyType   = reflect.TypeFor[any]()
)

// constOf is a test helper that builds a constant of v's dynamic type.
func constOf(t *testing.T, v any) *ir.Const {
	t.Helper()
	k, err := newConst(v, nil)
	require.NoError(t, err)
	return k
}

func paramNames(params []*ir.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func TestResolveFrame_TakesMostRecentFirst(t *testing.T) {
	var outputs operandStack
	var inputs inputList
	a, b, c := constOf(t, 1), constOf(t, 2), constOf(t, 3)
	outputs.push(a)
	outputs.push(b)
	outputs.push(c)

	frame := resolveFrame(&outputs, &inputs, []reflect.Type{intType, intType})

	require.Len(t, frame, 2)
	assert.Same(t, c, frame[0], "last pushed value should be bound first")
	assert.Same(t, b, frame[1])
	assert.Equal(t, []ir.Expr{a}, outputs.topFirst(), "unconsumed value should stay on the stack")
	assert.Empty(t, inputs.params)
}

func TestResolveFrame_SynthesizesShortfall(t *testing.T) {
	var outputs operandStack
	var inputs inputList
	k := constOf(t, 7)
	outputs.push(k)

	frame := resolveFrame(&outputs, &inputs, []reflect.Type{intType, int64Type, anyType})

	require.Len(t, frame, 3)
	assert.Same(t, k, frame[0])
	require.IsType(t, &ir.Param{}, frame[1])
	require.IsType(t, &ir.Param{}, frame[2])
	assert.Equal(t, int64Type, frame[1].Type())
	assert.Equal(t, anyType, frame[2].Type())
	assert.Empty(t, cmp.Diff([]string{"i0", "i1"}, paramNames(inputs.params)))
	assert.Equal(t, 0, outputs.len())
}

func TestResolveFrame_InputsKeepDemandOrder(t *testing.T) {
	var outputs operandStack
	var inputs inputList

	first := resolveFrame(&outputs, &inputs, []reflect.Type{intType})
	second := resolveFrame(&outputs, &inputs, []reflect.Type{int32Type, int64Type})

	assert.Same(t, inputs.params[0], first[0])
	assert.Same(t, inputs.params[1], second[0])
	assert.Same(t, inputs.params[2], second[1])
	assert.Empty(t, cmp.Diff([]string{"i0", "i1", "i2"}, paramNames(inputs.params)))
	assert.Equal(t, []reflect.Type{intType, int32Type, int64Type}, (&ir.Lambda{Params: inputs.params}).ParamTypes())
}

func TestResolveFrame_Coercion(t *testing.T) {
	type node struct{ next *node }

	testCases := []struct {
		name        string
		operand     any
		operandType reflect.Type
		required    reflect.Type
		expectConv  bool
	}{
		{name: "same value type", operand: 1, operandType: intType, required: intType, expectConv: false},
		{name: "narrowing value types", operand: int64(1), operandType: int64Type, required: int32Type, expectConv: true},
		{name: "boxing into interface", operand: 1, operandType: intType, required: anyType, expectConv: true},
		{name: "unboxing from interface", operand: 1, operandType: anyType, required: intType, expectConv: true},
		{name: "reference into interface", operand: &node{}, operandType: reflect.TypeFor[*node](), required: anyType, expectConv: false},
		{name: "same reference type", operand: []int{1}, operandType: reflect.TypeFor[[]int](), required: reflect.TypeFor[[]int](), expectConv: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var outputs operandStack
			var inputs inputList
			k, err := newConst(tc.operand, tc.operandType)
			require.NoError(t, err)
			outputs.push(k)

			frame := resolveFrame(&outputs, &inputs, []reflect.Type{tc.required})

			require.Len(t, frame, 1)
			if !tc.expectConv {
				assert.Same(t, k, frame[0])
				return
			}
			conv, ok := frame[0].(*ir.Convert)
			require.True(t, ok, "expected a conversion, got %T", frame[0])
			assert.Same(t, k, conv.X)
			assert.Equal(t, tc.required, conv.Type())
		})
	}
}

func TestResolveFrame_EmptyRequest(t *testing.T) {
	var outputs operandStack
	var inputs inputList
	outputs.push(constOf(t, 1))

	frame := resolveFrame(&outputs, &inputs, nil)

	assert.Empty(t, frame)
	assert.Equal(t, 1, outputs.len())
	assert.Empty(t, inputs.params)
}
