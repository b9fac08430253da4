package realize

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/neforth/internal/ir"
)

// builder compiles the nodes of one lambda.
type builder struct {
	params map[*ir.Param]int
	locals map[*ir.Local]int
}

func newBuilder(l *ir.Lambda) *builder {
	b := &builder{
		params: make(map[*ir.Param]int, len(l.Params)),
		locals: make(map[*ir.Local]int, len(l.Body.Locals)),
	}
	for i, p := range l.Params {
		b.params[p] = i
	}
	for i, loc := range l.Body.Locals {
		b.locals[loc] = i
	}
	return b
}

func (b *builder) block(blk *ir.Block) (execFn, error) {
	steps := make([]execFn, 0, len(blk.Ops))
	for i, op := range blk.Ops {
		step, err := b.stmt(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return func(fr *frame) {
		for _, step := range steps {
			step(fr)
		}
	}, nil
}

func (b *builder) stmt(op ir.Expr) (execFn, error) {
	switch op := op.(type) {
	case *ir.Assign:
		return b.assign(op)
	case *ir.Invoke:
		call, err := b.invoke(op)
		if err != nil {
			return nil, err
		}
		return func(fr *frame) { call(fr) }, nil
	default:
		return nil, fmt.Errorf("%w: %T is not an operation", ErrMalformed, op)
	}
}

func (b *builder) expr(e ir.Expr) (evalFn, error) {
	switch e := e.(type) {
	case *ir.Const:
		v := e.Value
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: constant has no value", ErrMalformed)
		}
		return func(*frame) reflect.Value { return v }, nil

	case *ir.Param:
		i, ok := b.params[e]
		if !ok {
			return nil, fmt.Errorf("%w: input %s is not a parameter of the program", ErrMalformed, e.Name)
		}
		return func(fr *frame) reflect.Value { return fr.params[i] }, nil

	case *ir.Local:
		i, ok := b.locals[e]
		if !ok {
			return nil, fmt.Errorf("%w: temporary %s is not declared by the block", ErrMalformed, e.Name)
		}
		return func(fr *frame) reflect.Value { return fr.locals[i] }, nil

	case *ir.Convert:
		return b.convert(e)

	case *ir.Invoke:
		if e.Type() == nil {
			return nil, fmt.Errorf("%w: %s yields no value", ir.ErrTypeMismatch, e.Name)
		}
		return b.invoke(e)

	default:
		return nil, fmt.Errorf("%w: %T is not a value", ErrMalformed, e)
	}
}

func (b *builder) assign(a *ir.Assign) (execFn, error) {
	i, ok := b.locals[a.Dst]
	if !ok {
		return nil, fmt.Errorf("%w: temporary %s is not declared by the block", ErrMalformed, a.Dst.Name)
	}
	if err := ir.CheckBind(a.Src, a.Dst.T); err != nil {
		return nil, fmt.Errorf("assign %s: %w", a.Dst.Name, err)
	}
	src, err := b.expr(a.Src)
	if err != nil {
		return nil, err
	}
	return func(fr *frame) { fr.locals[i].Set(src(fr)) }, nil
}

func (b *builder) invoke(call *ir.Invoke) (evalFn, error) {
	ft := call.Fn.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %s is not a func", ErrMalformed, call.Name)
	}
	if ft.NumIn() != len(call.Args) {
		return nil, fmt.Errorf("%w: %s takes %d operands, got %d", ErrMalformed, call.Name, ft.NumIn(), len(call.Args))
	}

	fn, err := b.expr(call.Fn)
	if err != nil {
		return nil, err
	}
	args := make([]evalFn, len(call.Args))
	for i, arg := range call.Args {
		if err := ir.CheckBind(arg, ft.In(i)); err != nil {
			return nil, fmt.Errorf("%s operand %d: %w", call.Name, i, err)
		}
		if args[i], err = b.expr(arg); err != nil {
			return nil, err
		}
	}

	return func(fr *frame) reflect.Value {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			in[i] = arg(fr)
		}
		out := fn(fr).Call(in)
		if len(out) == 0 {
			return reflect.Value{}
		}
		return out[0]
	}, nil
}

func (b *builder) convert(c *ir.Convert) (evalFn, error) {
	from := c.X.Type()
	if from == nil || !ir.CanConvert(from, c.To) {
		return nil, fmt.Errorf("%w: cannot convert %v to %s", ir.ErrTypeMismatch, from, c.To)
	}
	x, err := b.expr(c.X)
	if err != nil {
		return nil, err
	}
	to := c.To

	if from.Kind() != reflect.Interface {
		return func(fr *frame) reflect.Value { return x(fr).Convert(to) }, nil
	}

	// Unboxing: the outcome depends on the dynamic value.
	return func(fr *frame) reflect.Value {
		v := x(fr)
		if v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		if !v.IsValid() {
			panic(fmt.Errorf("%w: cannot convert nil %s to %s", ir.ErrTypeMismatch, from, to))
		}
		if !ir.Convertible(v.Type(), to) {
			panic(fmt.Errorf("%w: cannot convert %s to %s", ir.ErrTypeMismatch, v.Type(), to))
		}
		return v.Convert(to)
	}, nil
}
