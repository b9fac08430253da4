package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/specialistvlad/neforth/internal/irprint"
)

// Finish realizes the program and stores it in target, which must point to a
// func variable whose signature matches the synthesized inputs:
//
//	var run func(int, int)
//	err := c.Finish(&run)
//
// The compiled func returns nothing. Values left on the operand stack are
// discarded. After a successful Finish the compiler cannot be used again.
func (c *Compiler) Finish(target any) error {
	if c.finished {
		return ErrFinished
	}

	ptr := reflect.ValueOf(target)
	if target == nil || ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Func {
		return fmt.Errorf("%w: got %T", ErrInvalidTarget, target)
	}

	fn, err := c.FinishType(ptr.Elem().Type())
	if err != nil {
		return err
	}
	ptr.Elem().Set(fn)
	return nil
}

// FinishType realizes the program as a func of type sig.
func (c *Compiler) FinishType(sig reflect.Type) (reflect.Value, error) {
	if c.finished {
		return reflect.Value{}, ErrFinished
	}

	l := c.Assemble()
	if n := c.outputs.len(); n > 0 {
		c.logger.Warn("Unconsumed stack values are not returned by the compiled program.", "count", n)
	}
	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("Program assembled.",
			"inputs", len(l.Params),
			"locals", len(l.Body.Locals),
			"ops", len(l.Body.Ops),
			"program", irprint.Sprint(l),
		)
	}

	fn, err := c.realizer.Realize(l, sig)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("finish: %w", err)
	}
	c.finished = true
	return fn, nil
}

// Compose realizes the program as a func of type F.
func Compose[F any](c *Compiler) (F, error) {
	var fn F
	if err := c.Finish(&fn); err != nil {
		return fn, err
	}
	return fn, nil
}
