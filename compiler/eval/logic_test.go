package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinylang/tiny/compiler/gen"
	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/tp"
)

func TestOrBranches(t *testing.T) {
	e, g, args := newFunc(t, gen.Param{Type: tp.Boolean}, gen.Param{Type: tp.Integer})
	b, x := args[0], args[1]

	l, err := e.BeginLogic(Or, b)
	require.NoError(t, err)

	r, err := e.Binary(Lss, x, ir.Int(3))
	require.NoError(t, err)

	v, err := e.EndLogic(l, r)
	require.NoError(t, err)
	assert.Equal(t, ir.Ref{ID: 5, T: tp.Boolean}, v)

	l, err = e.BeginLogic(And, v)
	require.NoError(t, err)

	v, err = e.EndLogic(l, b)
	require.NoError(t, err)

	l, err = e.BeginLogic(Or, v)
	require.NoError(t, err)

	_, err = e.EndLogic(l, ir.Bool(false))
	require.NoError(t, err)

	assert.Equal(t, `	%3 = alloca i1, align 4
	store i1 %0, i1* %3, align 4
	br i1 %0, label %or_0_end, label %or_0_alt
or_0_alt:
	%4 = icmp slt i32 %1, 3
	store i1 %4, i1* %3, align 4
	br label %or_0_end
or_0_end:
	%5 = load i1, i1* %3, align 4
	%6 = alloca i1, align 4
	store i1 %5, i1* %6, align 4
	br i1 %5, label %and_0_alt, label %and_0_end
and_0_alt:
	store i1 %0, i1* %6, align 4
	br label %and_0_end
and_0_end:
	%7 = load i1, i1* %6, align 4
	%8 = alloca i1, align 4
	store i1 %7, i1* %8, align 4
	br i1 %7, label %or_1_end, label %or_1_alt
or_1_alt:
	store i1 false, i1* %8, align 4
	br label %or_1_end
or_1_end:
	%9 = load i1, i1* %8, align 4
`, body(g))
}

func TestShortCircuitLiterals(t *testing.T) {
	e, g, args := newFunc(t, gen.Param{Type: tp.Integer})
	x := args[0]

	for _, tc := range []struct {
		op     Op
		left   ir.Bool
		result string // "left" or "right"
	}{
		{Or, true, "left"},
		{Or, false, "right"},
		{And, false, "left"},
		{And, true, "right"},
	} {
		l, err := e.BeginLogic(tc.op, tc.left)
		require.NoError(t, err)

		// the right side would emit a compare if it was shown
		r, err := e.Binary(Eql, x, ir.Int(1))
		require.NoError(t, err)

		v, err := e.EndLogic(l, r)
		require.NoError(t, err)

		if tc.result == "left" {
			assert.Equal(t, tc.left, v, "%v %v", tc.left, tc.op)
			assert.Equal(t, -1, r.(ir.Ref).ID, "hidden ref")
		} else {
			assert.Equal(t, r, v, "%v %v", tc.left, tc.op)
		}

		assert.False(t, g.Hidden())
	}

	assert.Equal(t, `	%2 = icmp eq i32 %0, 1
	%3 = icmp eq i32 %0, 1
`, body(g))

	assert.Equal(t, 0, g.NextOrID(), "literal operands take no label ids")
	assert.Equal(t, 0, g.NextAndID())
}

func TestLogicTypes(t *testing.T) {
	e, g, _ := newFunc(t)

	_, err := e.BeginLogic(Or, ir.Int(1))
	assert.ErrorIs(t, err, ErrOperandType)

	l, err := e.BeginLogic(Or, ir.Bool(true))
	require.NoError(t, err)
	assert.True(t, g.Hidden())

	_, err = e.EndLogic(l, ir.Int(1))
	assert.ErrorIs(t, err, ErrOperandType)
	assert.False(t, g.Hidden())

	_, err = e.BeginLogic(Add, ir.Bool(true))
	assert.Error(t, err)
}
