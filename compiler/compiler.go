package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/tinylang/tiny/compiler/front"
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile translates one module to IR text.
// Errors are *front.Error carrying the file and line.
func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name)
	defer tr.Finish("err", &err)

	p := front.New(name, text)

	obj, err = p.Parse(ctx)
	if err != nil {
		return nil, err
	}

	tr.Printw("compiled", "ir_size", len(obj))

	return obj, nil
}
