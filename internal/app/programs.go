package app

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/specialistvlad/neforth/internal/compiler"
	"github.com/specialistvlad/neforth/internal/word"
)

// program is a demo compiled on every run. sig is the shape the assembled
// program realizes as; its parameters are the inputs the stack could not
// supply.
type program struct {
	description string
	sig         reflect.Type
	build       func(c *compiler.Compiler, outW io.Writer) error
}

var programs = map[string]program{
	"hello": {
		description: `"Hello World" 2 3 add print print`,
		sig:         reflect.TypeFor[func()](),
		build:       buildHello,
	},
	"sum": {
		description: "add print, both operands taken from -args",
		sig:         reflect.TypeFor[func(int, int)](),
		build:       buildSum,
	},
}

// ProgramNames lists the available demo programs in sorted order.
func ProgramNames() []string {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProgramDescription returns a one-line summary of the named program.
func ProgramDescription(name string) string {
	return programs[name].description
}

// demoWords returns the two operators the demos are built from. emit prints
// its operand on its own line to outW.
func demoWords(outW io.Writer) (add, emit *word.Word, err error) {
	add, err = word.Named("add", func(a, b int) int { return a + b })
	if err != nil {
		return nil, nil, err
	}
	emit, err = word.Named("print", func(v any) { fmt.Fprintln(outW, v) })
	if err != nil {
		return nil, nil, err
	}
	return add, emit, nil
}

func buildHello(c *compiler.Compiler, outW io.Writer) error {
	add, emit, err := demoWords(outW)
	if err != nil {
		return err
	}

	if err := compiler.Lit(c, "Hello World"); err != nil {
		return err
	}
	if err := compiler.Lit(c, 2); err != nil {
		return err
	}
	if err := compiler.Lit(c, 3); err != nil {
		return err
	}
	for _, w := range []*word.Word{add, emit, emit} {
		if err := c.ApplyWord(w); err != nil {
			return err
		}
	}
	return nil
}

func buildSum(c *compiler.Compiler, outW io.Writer) error {
	add, emit, err := demoWords(outW)
	if err != nil {
		return err
	}

	if err := c.ApplyWord(add); err != nil {
		return err
	}
	return c.ApplyWord(emit)
}
