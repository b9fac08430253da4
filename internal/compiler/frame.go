package compiler

import (
	"reflect"

	"github.com/specialistvlad/neforth/internal/ir"
)

// resolveFrame binds one operand per required type, in order. Operands are
// taken from the top of outputs while it has any; the shortfall is filled
// with new inputs. A consumed value whose type differs from the required one
// is wrapped in a conversion when either side is a value type.
//
// Operands are not checked for compatibility here. An operand that cannot be
// converted or assigned is reported when the program is realized.
func resolveFrame(outputs *operandStack, inputs *inputList, types []reflect.Type) []ir.Expr {
	frame := make([]ir.Expr, len(types))
	for i, t := range types {
		arg, ok := outputs.pop()
		if !ok {
			frame[i] = inputs.declare(t)
			continue
		}
		if ir.NeedsConversion(arg.Type(), t) {
			arg = &ir.Convert{X: arg, To: t}
		}
		frame[i] = arg
	}
	return frame
}
