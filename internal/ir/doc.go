// Package ir defines the typed intermediate representation produced by the
// compiler and consumed by a realizer.
//
// The representation is deliberately small. A compiled program is a single
// Lambda whose parameters are the free inputs synthesized during compilation
// and whose body is a Block of operations evaluated top to bottom:
//
//	Lambda(i0, i1)
//	  Block locals(o0)
//	    o0 = add(i0, i1)     // Assign{Dst: o0, Src: Invoke{...}}
//	    print(convert(o0))   // Invoke{Args: [Convert{X: o0}]}
//
// Every node knows its static Go type. Nodes that yield nothing (effectful
// invocations, blocks) report a nil type.
//
// The package never evaluates anything; turning a Lambda into a callable is
// the job of the realize package.
package ir
