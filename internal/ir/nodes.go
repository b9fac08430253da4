package ir

import "reflect"

// Expr is a node of the intermediate representation.
type Expr interface {
	// Type returns the static type of the value the node yields, or nil if
	// it yields nothing.
	Type() reflect.Type

	node()
}

// Const is a compile-time known value. Value always has the constant's
// static type, which may be an interface type holding a boxed value.
type Const struct {
	Value reflect.Value
}

func (c *Const) Type() reflect.Type { return c.Value.Type() }

// Param is a free input of the program.
type Param struct {
	Name string
	T    reflect.Type
}

func (p *Param) Type() reflect.Type { return p.T }
func (p *Param) String() string     { return p.Name }

// Local is a temporary bound inside a Block.
type Local struct {
	Name string
	T    reflect.Type
}

func (l *Local) Type() reflect.Type { return l.T }
func (l *Local) String() string     { return l.Name }

// Invoke applies Fn to Args. Name labels the operator for diagnostics only.
type Invoke struct {
	Name string
	Fn   Expr
	Args []Expr
}

// Type returns the operator's single result type, or nil for an effectful
// operator.
func (i *Invoke) Type() reflect.Type {
	ft := i.Fn.Type()
	if ft == nil || ft.Kind() != reflect.Func || ft.NumOut() == 0 {
		return nil
	}
	return ft.Out(0)
}

// Assign stores the value of Src into Dst.
type Assign struct {
	Dst *Local
	Src Expr
}

func (a *Assign) Type() reflect.Type { return a.Dst.T }

// Convert is an explicit representation change of X to type To: a numeric
// conversion, boxing into an interface or unboxing out of one.
type Convert struct {
	X  Expr
	To reflect.Type
}

func (c *Convert) Type() reflect.Type { return c.To }

// Block evaluates Ops in order for their side effects. Locals are scoped to
// the block and start out as zero values.
type Block struct {
	Locals []*Local
	Ops    []Expr
}

func (b *Block) Type() reflect.Type { return nil }

// Lambda is a complete program: its parameter list and body.
type Lambda struct {
	Params []*Param
	Body   *Block
}

// ParamTypes returns the parameter types in declaration order.
func (l *Lambda) ParamTypes() []reflect.Type {
	types := make([]reflect.Type, len(l.Params))
	for i, p := range l.Params {
		types[i] = p.T
	}
	return types
}

func (*Const) node()   {}
func (*Param) node()   {}
func (*Local) node()   {}
func (*Invoke) node()  {}
func (*Assign) node()  {}
func (*Convert) node() {}
func (*Block) node()   {}
