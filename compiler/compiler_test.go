package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinylang/tiny/compiler/front"
)

func TestCompileFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "sum.mod")

	err := os.WriteFile(name, []byte(`
MODULE Sum;
VAR s: INTEGER;

PROCEDURE Add(a, b: INTEGER): INTEGER;
BEGIN
	RETURN a + b
END Add;

BEGIN
	s := Add(1, 2)
END Sum.
`), 0o644)
	require.NoError(t, err)

	obj, err := CompileFile(context.Background(), name)
	require.NoError(t, err)

	assert.Equal(t, "; ModuleID = '"+name+"'\n"+
		"\n"+
		"@Sum_s = global i32 0, align 4\n"+
		"\n"+
		"define i32 @Sum_Add(i32 %0, i32 %1) {\n"+
		"\t%3 = add i32 %0, %1\n"+
		"\tret i32 %3\n"+
		"}\n"+
		"\n"+
		"define void @Sum__init() {\n"+
		"\t%1 = call i32 @Sum_Add(i32 1, i32 2)\n"+
		"\tstore i32 %1, i32* @Sum_s, align 4\n"+
		"\tret void\n"+
		"}\n", string(obj))
}

func TestCompileFileMissing(t *testing.T) {
	_, err := CompileFile(context.Background(), filepath.Join(t.TempDir(), "none.mod"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompileError(t *testing.T) {
	_, err := Compile(context.Background(), "bad.mod", []byte("MODULE M;\nBEGIN\nEND N."))

	var e *front.Error
	require.ErrorAs(t, err, &e)

	assert.Equal(t, 3, e.Line)
	assert.ErrorIs(t, err, front.ErrNameMismatch)
	assert.Regexp(t, `^bad.mod:3: `, err.Error())
}
