package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/tinylang/tiny/compiler"
	"github.com/tinylang/tiny/compiler/lexer"
)

func main() {
	lexCmd := &cli.Command{
		Name:        "lex",
		Description: "print tokens of source files",
		Action:      lexAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "tlog verbosity topics"),
		},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile source files to IR text",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file, stdout if empty"),
			cli.NewFlag("verbosity,v", "", "tlog verbosity topics"),
		},
	}

	app := &cli.Command{
		Name:        "tiny",
		Description: "tiny is a compiler of tinylang modules to LLVM IR",
		Commands: []*cli.Command{
			lexCmd,
			compileCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func setup(c *cli.Command) context.Context {
	tlog.SetVerbosity(c.String("verbosity"))

	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	return ctx
}

func lexAct(c *cli.Command) (err error) {
	setup(c)

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read file")
		}

		l := lexer.New(text)

		for {
			tok, err := l.Next()
			if err != nil {
				return errors.Wrap(err, "%v:%d", a, l.Line())
			}

			if tok.Kind == lexer.Eoi {
				break
			}

			fmt.Printf("%-4d %-12v %s\n", tok.Line, tok.Kind, tok.Raw)
		}
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := setup(c)

	var w io.Writer = os.Stdout

	if out := c.String("output"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "create output")
		}

		defer func() {
			e := f.Close()
			if err == nil && e != nil {
				err = errors.Wrap(e, "close output")
			}
		}()

		w = f
	}

	return compileFiles(ctx, w, c.Args)
}

func compileFiles(ctx context.Context, w io.Writer, files []string) error {
	for _, a := range files {
		obj, err := compiler.CompileFile(ctx, a)
		if err != nil {
			// already <file>:<line>: <message>
			return err
		}

		_, err = w.Write(obj)
		if err != nil {
			return errors.Wrap(err, "write")
		}
	}

	return nil
}
