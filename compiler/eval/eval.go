package eval

import (
	"cmp"
	"math"

	"tlog.app/go/errors"

	"github.com/tinylang/tiny/compiler/gen"
	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/tp"
)

type (
	// Evaluator folds operators over literals
	// and emits instructions for everything else.
	Evaluator struct {
		g *gen.Gen
	}
)

var (
	ErrOperandType    = errors.New("incompatible operand types")
	ErrDivisionByZero = errors.New("division by zero")
	ErrIncompatible   = errors.New("incompatible types")
)

func New(g *gen.Gen) *Evaluator {
	return &Evaluator{g: g}
}

func (e *Evaluator) Binary(op Op, l, r ir.Value) (ir.Value, error) {
	switch {
	case op.isArith():
		return e.arith(op, l, r)
	case op.isCompare():
		return e.compare(op, l, r)
	case op.isLogic():
		return e.logic(op, l, r)
	}

	return nil, errors.New("not a binary operator: %v", op)
}

func (e *Evaluator) Unary(op Op, x ir.Value) (ir.Value, error) {
	t := x.Type()

	switch op {
	case Pos, Neg:
		if !t.IsNumeric() {
			return nil, errors.Wrap(ErrOperandType, "%v%v", op, t)
		}

		if op == Pos {
			return x, nil
		}

		switch x := x.(type) {
		case ir.Int:
			return -x, nil
		case ir.Real:
			return -x, nil
		}

		if t == tp.Real {
			return e.g.Binary("fsub", t, ir.Real(math.Copysign(0, -1)), x), nil
		}

		return e.g.Binary("sub", t, ir.Int(0), x), nil
	case Not:
		if t != tp.Boolean {
			return nil, errors.Wrap(ErrOperandType, "%v%v", op, t)
		}

		if b, ok := x.(ir.Bool); ok {
			return !b, nil
		}

		return e.g.Binary("xor", t, x, ir.Bool(true)), nil
	}

	return nil, errors.New("not a unary operator: %v", op)
}

// Convert converts v to type t.
// Only INTEGER to REAL conversion is implicit.
func (e *Evaluator) Convert(v ir.Value, t tp.Type) (ir.Value, error) {
	switch vt := v.Type(); {
	case vt == t:
		return v, nil
	case vt == tp.Integer && t == tp.Real:
		return e.widen(v, t), nil
	}

	return nil, errors.Wrap(ErrIncompatible, "%v to %v", v.Type(), t)
}

func (e *Evaluator) arith(op Op, l, r ir.Value) (ir.Value, error) {
	lt, rt := l.Type(), r.Type()

	if !lt.IsNumeric() || !rt.IsNumeric() {
		return nil, operandError(op, lt, rt)
	}

	if (op == Div || op == Mod) && (lt != tp.Integer || rt != tp.Integer) {
		return nil, operandError(op, lt, rt)
	}

	if (op == Div || op == Mod || op == Quo) && isZero(r) {
		return nil, errors.Wrap(ErrDivisionByZero, "%v", op)
	}

	t := promote(lt, rt)
	if op == Quo {
		t = tp.Real
	}

	if ll, ok := l.(ir.Literal); ok {
		if rl, ok := r.(ir.Literal); ok {
			return foldArith(op, t, ll, rl), nil
		}
	}

	if x, ok := identity(op, t, l, r); ok {
		return x, nil
	}

	l, r = e.widen(l, t), e.widen(r, t)

	mn := intOps[op]
	if t == tp.Real {
		mn = realOps[op]
	}

	return e.g.Binary(mn, t, l, r), nil
}

func (e *Evaluator) compare(op Op, l, r ir.Value) (ir.Value, error) {
	lt, rt := l.Type(), r.Type()

	var t tp.Type

	switch {
	case lt.IsNumeric() && rt.IsNumeric():
		t = promote(lt, rt)
	case (op == Eql || op == Neq) && lt == tp.Boolean && rt == tp.Boolean:
		t = tp.Boolean
	default:
		return nil, operandError(op, lt, rt)
	}

	if ll, ok := l.(ir.Literal); ok {
		if rl, ok := r.(ir.Literal); ok {
			return foldCompare(op, t, ll, rl), nil
		}
	}

	l, r = e.widen(l, t), e.widen(r, t)

	pred := intOps[op]
	if t == tp.Real {
		pred = realOps[op]
	}

	return e.g.Compare(pred, t, l, r), nil
}

// logic is the eager form of & and OR.
// The parser uses BeginLogic and EndLogic to short-circuit.
func (e *Evaluator) logic(op Op, l, r ir.Value) (ir.Value, error) {
	lt, rt := l.Type(), r.Type()

	if lt != tp.Boolean || rt != tp.Boolean {
		return nil, operandError(op, lt, rt)
	}

	lb, lok := l.(ir.Bool)
	rb, rok := r.(ir.Bool)

	if lok && rok {
		if op == And {
			return lb && rb, nil
		}

		return lb || rb, nil
	}

	return e.g.Binary(intOps[op], tp.Boolean, l, r), nil
}

// widen promotes INTEGER v to REAL if t is REAL.
func (e *Evaluator) widen(v ir.Value, t tp.Type) ir.Value {
	if t != tp.Real || v.Type() != tp.Integer {
		return v
	}

	if i, ok := v.(ir.Int); ok {
		return ir.Real(i)
	}

	return e.g.IntToReal(v)
}

func identity(op Op, t tp.Type, l, r ir.Value) (ir.Value, bool) {
	switch op {
	case Add:
		if isZero(r) && l.Type() == t {
			return l, true
		}

		if isZero(l) && r.Type() == t {
			return r, true
		}
	case Sub:
		if isZero(r) && l.Type() == t {
			return l, true
		}
	case Mul:
		if isZero(l) || isZero(r) {
			return ir.Zero(t), true
		}

		if isOne(r) && l.Type() == t {
			return l, true
		}

		if isOne(l) && r.Type() == t {
			return r, true
		}
	case Div:
		if isOne(r) {
			return l, true
		}
	}

	return nil, false
}

func foldArith(op Op, t tp.Type, l, r ir.Literal) ir.Literal {
	if t == tp.Integer {
		a, b := l.(ir.Int), r.(ir.Int)

		switch op {
		case Add:
			return a + b
		case Sub:
			return a - b
		case Mul:
			return a * b
		case Div:
			return a / b
		case Mod:
			return a % b
		}

		panic(op)
	}

	a, b := realOf(l), realOf(r)

	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Quo:
		return a / b
	}

	panic(op)
}

func foldCompare(op Op, t tp.Type, l, r ir.Literal) ir.Bool {
	switch t {
	case tp.Boolean:
		eq := l.(ir.Bool) == r.(ir.Bool)

		return ir.Bool(eq == (op == Eql))
	case tp.Integer:
		return ordered(op, l.(ir.Int), r.(ir.Int))
	default:
		return ordered(op, realOf(l), realOf(r))
	}
}

func ordered[T cmp.Ordered](op Op, a, b T) ir.Bool {
	switch op {
	case Eql:
		return a == b
	case Neq:
		return a != b
	case Lss:
		return a < b
	case Leq:
		return a <= b
	case Gtr:
		return a > b
	case Geq:
		return a >= b
	}

	panic(op)
}

func promote(a, b tp.Type) tp.Type {
	if a == tp.Real || b == tp.Real {
		return tp.Real
	}

	return a
}

func realOf(v ir.Literal) ir.Real {
	switch v := v.(type) {
	case ir.Int:
		return ir.Real(v)
	case ir.Real:
		return v
	}

	panic(v)
}

func isZero(v ir.Value) bool {
	switch v := v.(type) {
	case ir.Int:
		return v == 0
	case ir.Real:
		return v == 0
	}

	return false
}

func isOne(v ir.Value) bool {
	switch v := v.(type) {
	case ir.Int:
		return v == 1
	case ir.Real:
		return v == 1
	}

	return false
}

func operandError(op Op, lt, rt tp.Type) error {
	return errors.Wrap(ErrOperandType, "%v %v %v", lt, op, rt)
}
