package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/tp"
)

func TestUniverse(t *testing.T) {
	u := Universe()

	for _, name := range []string{"INTEGER", "BOOLEAN", "REAL"} {
		d, ok := u.Lookup(name).(*TypeDecl)
		require.True(t, ok, "%v", name)
		assert.Equal(t, name, d.Type.String())
	}

	assert.Nil(t, u.Lookup("CHAR"))
	assert.Nil(t, u.Parent())
	assert.Equal(t, 0, u.Depth())
}

func TestInsertRedefinition(t *testing.T) {
	s := New(Universe())

	assert.True(t, s.Insert(&Const{Name: "X", Value: ir.Int(1)}))
	assert.False(t, s.Insert(&Variable{Name: "X", Type: tp.Integer}))

	c, ok := s.Lookup("X").(*Const)
	require.True(t, ok)
	assert.Equal(t, ir.Int(1), c.Value)
}

func TestShadowing(t *testing.T) {
	outer := New(Universe())
	require.True(t, outer.Insert(&Const{Name: "X", Value: ir.Int(1)}))

	inner := New(outer)
	assert.True(t, inner.Insert(&Variable{Name: "X", Type: tp.Real}))
	assert.Equal(t, 2, inner.Depth())

	_, ok := inner.Lookup("X").(*Variable)
	assert.True(t, ok, "inner declaration wins")

	_, ok = outer.Lookup("X").(*Const)
	assert.True(t, ok, "outer is untouched")

	assert.True(t, inner.Insert(&Variable{Name: "INTEGER", Type: tp.Real}), "predefined names can be shadowed")
	assert.NotNil(t, inner.Lookup("BOOLEAN"))
}

func TestMangle(t *testing.T) {
	m := &Module{Name: "M"}
	p := &Procedure{Name: "P", Parent: m}
	q := &Procedure{Name: "Q", Parent: p}

	assert.Equal(t, "M__init", m.Mangle("_init"))
	assert.Equal(t, "M_P", p.Mangled())
	assert.Equal(t, "M_P_Q", q.Mangled())
	assert.Equal(t, "M_P_Q_x", q.Mangle("x"))
	assert.Equal(t, "R", (&Procedure{Name: "R"}).Mangled())
}
