package compiler

import (
	"fmt"

	"github.com/specialistvlad/neforth/internal/ir"
	"github.com/specialistvlad/neforth/internal/word"
)

// Apply applies the operator fn. Its parameters are bound from the operand
// stack, most recent value first, and from new inputs once the stack is
// empty. A func with one result pushes that result; a func without results
// is applied for its side effect only.
func (c *Compiler) Apply(fn any) error {
	w, err := word.New(fn)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return c.ApplyWord(w)
}

// ApplyWord is Apply for an already validated word.
func (c *Compiler) ApplyWord(w *word.Word) error {
	if c.finished {
		return ErrFinished
	}
	if w == nil {
		return fmt.Errorf("apply: %w", word.ErrNilOperator)
	}

	var saved operandStack
	declared := len(c.inputs.params)
	if c.eagerTypes {
		saved = c.outputs.clone()
	}

	args := resolveFrame(&c.outputs, &c.inputs, w.In)

	if c.eagerTypes {
		for i, arg := range args {
			if err := ir.CheckBind(arg, w.In[i]); err != nil {
				c.outputs = saved
				c.inputs.params = c.inputs.params[:declared]
				return fmt.Errorf("apply %s: operand %d: %w", w.Name, i, err)
			}
		}
	}

	c.logger.Debug("Operand frame resolved.",
		"word", w.Name,
		"arity", w.Arity(),
		"new_inputs", len(c.inputs.params)-declared,
		"depth", c.outputs.len(),
	)

	call := &ir.Invoke{Name: w.Name, Fn: &ir.Const{Value: w.Fn}, Args: args}
	if !w.Producing() {
		c.ops = append(c.ops, call)
		c.logger.Debug("Effectful word applied.", "word", w.String())
		return nil
	}

	tmp := &ir.Local{Name: fmt.Sprintf("o%d", len(c.locals)), T: w.Out}
	c.ops = append(c.ops, &ir.Assign{Dst: tmp, Src: call})
	c.locals = append(c.locals, tmp)
	c.outputs.push(tmp)
	c.logger.Debug("Producing word applied.", "word", w.String(), "result", tmp.Name)
	return nil
}
