package ir

import (
	"fmt"
	"math"
	"strconv"

	"tlog.app/go/tlog/tlwire"

	"github.com/tinylang/tiny/compiler/tp"
)

type (
	// Value is an IR operand.
	// It's one of Bool, Int, Real, Ref or Global.
	Value interface {
		Type() tp.Type
		Name() string

		value()
	}

	// Literal is a value known at compile time.
	Literal interface {
		Value

		literal()
	}

	Bool bool
	Int  int32
	Real float64

	// Ref is the result of an instruction, %ID.
	// For storage slots and by-reference parameters T is the pointee type.
	Ref struct {
		ID int
		T  tp.Type
	}

	// Global is a module level variable, @Sym.
	Global struct {
		Sym string
		T   tp.Type
	}
)

// Zero returns the zero literal of type t or nil for Void.
func Zero(t tp.Type) Literal {
	switch t {
	case tp.Integer:
		return Int(0)
	case tp.Boolean:
		return Bool(false)
	case tp.Real:
		return Real(0)
	default:
		return nil
	}
}

func (Bool) Type() tp.Type     { return tp.Boolean }
func (Int) Type() tp.Type      { return tp.Integer }
func (Real) Type() tp.Type     { return tp.Real }
func (r Ref) Type() tp.Type    { return r.T }
func (g Global) Type() tp.Type { return g.T }

func (x Bool) Name() string {
	if x {
		return "true"
	}

	return "false"
}

func (x Int) Name() string { return strconv.FormatInt(int64(x), 10) }

// Name returns the hexadecimal form which is exact for every double.
func (x Real) Name() string {
	return fmt.Sprintf("0x%016X", math.Float64bits(float64(x)))
}

func (r Ref) Name() string    { return "%" + strconv.Itoa(r.ID) }
func (g Global) Name() string { return "@" + g.Sym }

func (Bool) value()   {}
func (Int) value()    {}
func (Real) value()   {}
func (Ref) value()    {}
func (Global) value() {}

func (Bool) literal() {}
func (Int) literal()  {}
func (Real) literal() {}

func (r Ref) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 2)
	b = e.AppendKeyInt(b, "id", r.ID)
	b = e.AppendString(b, "type")
	b = e.AppendString(b, r.T.String())

	return b
}
