package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/neforth/internal/compiler"
	"github.com/specialistvlad/neforth/internal/ctxlog"
	"github.com/specialistvlad/neforth/internal/irprint"
)

// Run compiles the configured program and invokes it once.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	name := a.config.Program
	a.logger.Debug("App.Run method started.", "program", name)

	prog, ok := programs[name]
	if !ok {
		return fmt.Errorf("unknown program %q", name)
	}

	c := compiler.New(compiler.WithLogger(a.logger))
	if err := prog.build(c, a.outW); err != nil {
		return fmt.Errorf("failed to compile program %q: %w", name, err)
	}
	a.logger.Debug("Program compiled.", "inputs", len(c.Inputs()), "pending", c.Depth())

	if a.config.Dump {
		if err := irprint.Fprint(a.outW, c.Assemble()); err != nil {
			return fmt.Errorf("failed to dump program %q: %w", name, err)
		}
	}

	args, err := decodeArgs(ctx, a.config.Args, prog.sig)
	if err != nil {
		return err
	}

	fn, err := c.FinishType(prog.sig)
	if err != nil {
		return fmt.Errorf("failed to finish program %q: %w", name, err)
	}

	a.logger.Info("Running compiled program.", "program", name, "signature", prog.sig.String())
	fn.Call(args)

	a.logger.Debug("App.Run method finished.")
	return nil
}
