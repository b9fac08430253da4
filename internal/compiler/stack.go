package compiler

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/neforth/internal/ir"
)

// operandStack holds produced values that no operator has consumed yet. The
// top of the stack is the end of the slice.
type operandStack struct {
	items []ir.Expr
}

func (s *operandStack) push(e ir.Expr) {
	s.items = append(s.items, e)
}

func (s *operandStack) pop() (ir.Expr, bool) {
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	e := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return e, true
}

func (s *operandStack) len() int { return len(s.items) }

// topFirst returns the pending values, most recently produced first.
func (s *operandStack) topFirst() []ir.Expr {
	out := make([]ir.Expr, len(s.items))
	for i, e := range s.items {
		out[len(s.items)-1-i] = e
	}
	return out
}

func (s *operandStack) clone() operandStack {
	return operandStack{items: append([]ir.Expr(nil), s.items...)}
}

// inputList holds the free inputs synthesized so far, in demand order.
type inputList struct {
	params []*ir.Param
}

// declare appends a new input named after its position.
func (l *inputList) declare(t reflect.Type) *ir.Param {
	p := &ir.Param{Name: fmt.Sprintf("i%d", len(l.params)), T: t}
	l.params = append(l.params, p)
	return p
}
