package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinylang/tiny/compiler/tp"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "true", Bool(true).Name())
	assert.Equal(t, "false", Bool(false).Name())
	assert.Equal(t, "-17", Int(-17).Name())
	assert.Equal(t, "0x3FF0000000000000", Real(1).Name())
	assert.Equal(t, "0x0000000000000000", Real(0).Name())
	assert.Equal(t, "%12", Ref{ID: 12, T: tp.Integer}.Name())
	assert.Equal(t, "@M_x", Global{Sym: "M_x", T: tp.Real}.Name())
}

func TestTypes(t *testing.T) {
	assert.Equal(t, tp.Boolean, Bool(false).Type())
	assert.Equal(t, tp.Integer, Int(3).Type())
	assert.Equal(t, tp.Real, Real(3).Type())
	assert.Equal(t, tp.Real, Ref{ID: 1, T: tp.Real}.Type())
	assert.Equal(t, tp.Integer, Global{Sym: "g", T: tp.Integer}.Type())
}

func TestZero(t *testing.T) {
	assert.Equal(t, Int(0), Zero(tp.Integer))
	assert.Equal(t, Bool(false), Zero(tp.Boolean))
	assert.Equal(t, Real(0), Zero(tp.Real))
	assert.Nil(t, Zero(tp.Void))
}
