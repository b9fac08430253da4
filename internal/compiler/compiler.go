// Package compiler turns a sequence of literal pushes and operator
// applications into one callable Go func.
//
// Values flow between operators through an implicit operand stack. When an
// operator needs more operands than the stack holds, the missing ones become
// parameters of the compiled func, in the order they were demanded:
//
//	c := compiler.New()
//	compiler.Lit(c, 2)
//	c.Apply(func(a, b int) int { return a + b }) // a = 2, b = new input i0
//	c.Apply(func(v any) { fmt.Println(v) })      // consumes the sum
//	add2, err := compiler.Compose[func(int)](c)
//
// A Compiler is not safe for concurrent use. The funcs it produces are.
package compiler

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/specialistvlad/neforth/internal/ir"
	"github.com/specialistvlad/neforth/internal/realize"
)

var (
	ErrFinished      = errors.New("compiler already finished")
	ErrLiteralType   = errors.New("literal does not match its declared type")
	ErrInvalidTarget = errors.New("finish target must be a non-nil pointer to a func")
)

// Realizer turns an assembled program into a callable with signature sig.
type Realizer interface {
	Realize(l *ir.Lambda, sig reflect.Type) (reflect.Value, error)
}

// Compiler accumulates a program. The zero value is not usable; call New.
type Compiler struct {
	inputs  inputList
	ops     []ir.Expr
	locals  []*ir.Local
	outputs operandStack

	logger     *slog.Logger
	realizer   Realizer
	eagerTypes bool
	finished   bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for compilation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRealizer replaces the default closure realizer.
func WithRealizer(r Realizer) Option {
	return func(c *Compiler) {
		if r != nil {
			c.realizer = r
		}
	}
}

// WithEagerTypeChecks makes Apply reject operands that could not be bound to
// the operator's parameters. Without it such operands are only reported when
// the program is realized.
func WithEagerTypeChecks() Option {
	return func(c *Compiler) {
		c.eagerTypes = true
	}
}

// New returns an empty compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		logger:   slog.New(slog.DiscardHandler),
		realizer: realize.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Depth returns the number of produced values not yet consumed.
func (c *Compiler) Depth() int { return c.outputs.len() }

// Pending returns the unconsumed values, most recently produced first.
func (c *Compiler) Pending() []ir.Expr { return c.outputs.topFirst() }

// Inputs returns the free inputs synthesized so far, in declaration order.
func (c *Compiler) Inputs() []*ir.Param {
	return append([]*ir.Param(nil), c.inputs.params...)
}

// Assemble freezes the program built so far into a lambda. Values still on
// the operand stack are not part of it.
func (c *Compiler) Assemble() *ir.Lambda {
	return &ir.Lambda{
		Params: append([]*ir.Param(nil), c.inputs.params...),
		Body: &ir.Block{
			Locals: append([]*ir.Local(nil), c.locals...),
			Ops:    append([]ir.Expr(nil), c.ops...),
		},
	}
}
