package eval

import (
	"fmt"

	"tlog.app/go/errors"

	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/tp"
)

type (
	// Logic is a short-circuit & or OR in progress.
	// The right operand is evaluated between BeginLogic and EndLogic.
	Logic struct {
		op   Op
		mode logicMode

		left ir.Value
		slot ir.Ref

		alt, end string
	}

	logicMode int
)

const (
	branched logicMode = iota
	decided
	passed
)

// BeginLogic starts op with the left operand.
//
// If left decides the result (TRUE OR, FALSE &) the generator is hidden
// until EndLogic so the right operand is checked but not emitted.
// If left is a literal which doesn't decide, the result is the right operand.
// Otherwise left is stored into a slot and evaluation of the right operand
// happens in an alternative block that runs only when left doesn't decide.
func (e *Evaluator) BeginLogic(op Op, left ir.Value) (*Logic, error) {
	if !op.isLogic() {
		return nil, errors.New("not a logic operator: %v", op)
	}

	if t := left.Type(); t != tp.Boolean {
		return nil, errors.Wrap(ErrOperandType, "%v %v ...", t, op)
	}

	l := &Logic{op: op, left: left}

	if b, ok := left.(ir.Bool); ok {
		if bool(b) == (op == Or) {
			l.mode = decided
			e.g.Hide()
		} else {
			l.mode = passed
		}

		return l, nil
	}

	var id int
	var prefix string

	if op == Or {
		id, prefix = e.g.NextOrID(), "or"
	} else {
		id, prefix = e.g.NextAndID(), "and"
	}

	l.alt = fmt.Sprintf("%s_%d_alt", prefix, id)
	l.end = fmt.Sprintf("%s_%d_end", prefix, id)

	l.slot = e.g.Alloca(tp.Boolean)
	e.g.Store(left, l.slot)

	if op == Or {
		e.g.Cond(left, l.end, l.alt)
	} else {
		e.g.Cond(left, l.alt, l.end)
	}

	e.g.Label(l.alt)

	return l, nil
}

// EndLogic finishes l with the right operand.
func (e *Evaluator) EndLogic(l *Logic, right ir.Value) (ir.Value, error) {
	if l.mode == decided {
		e.g.Show()
	}

	if t := right.Type(); t != tp.Boolean {
		return nil, operandError(l.op, l.left.Type(), t)
	}

	switch l.mode {
	case decided:
		return l.left, nil
	case passed:
		return right, nil
	}

	e.g.Store(right, l.slot)
	e.g.Branch(l.end)
	e.g.Label(l.end)

	return e.g.Load(l.slot), nil
}
