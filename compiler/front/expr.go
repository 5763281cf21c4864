package front

import (
	"tlog.app/go/errors"

	"github.com/tinylang/tiny/compiler/eval"
	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/lexer"
	"github.com/tinylang/tiny/compiler/scope"
	"github.com/tinylang/tiny/compiler/tp"
)

var (
	relations = map[lexer.Kind]eval.Op{
		lexer.Equal:        eval.Eql,
		lexer.NotEqual:     eval.Neq,
		lexer.Less:         eval.Lss,
		lexer.LessEqual:    eval.Leq,
		lexer.Greater:      eval.Gtr,
		lexer.GreaterEqual: eval.Geq,
	}

	addOps = map[lexer.Kind]eval.Op{
		lexer.Plus:  eval.Add,
		lexer.Minus: eval.Sub,
		lexer.KwOr:  eval.Or,
	}

	mulOps = map[lexer.Kind]eval.Op{
		lexer.Star:  eval.Mul,
		lexer.Slash: eval.Quo,
		lexer.KwDiv: eval.Div,
		lexer.KwMod: eval.Mod,
		lexer.And:   eval.And,
	}
)

// parseExpression parses a simple expression
// optionally followed by one relation.
func (p *Parser) parseExpression() (x ir.Value, err error) {
	x, err = p.parseSimpleExpression()
	if err != nil {
		return nil, err
	}

	op, ok := relations[p.tok.Kind]
	if !ok {
		return x, nil
	}

	err = p.advance()
	if err != nil {
		return nil, err
	}

	y, err := p.parseSimpleExpression()
	if err != nil {
		return nil, err
	}

	return p.ev.Binary(op, x, y)
}

func (p *Parser) parseSimpleExpression() (x ir.Value, err error) {
	sign := eval.Pos
	signed := p.tok.Is(lexer.Plus, lexer.Minus)

	if signed {
		if p.tok.Is(lexer.Minus) {
			sign = eval.Neg
		}

		err = p.advance()
		if err != nil {
			return nil, err
		}
	}

	x, err = p.parseTerm()
	if err != nil {
		return nil, err
	}

	if signed {
		x, err = p.ev.Unary(sign, x)
		if err != nil {
			return nil, err
		}
	}

	for {
		op, ok := addOps[p.tok.Kind]
		if !ok {
			return x, nil
		}

		x, err = p.binary(op, x, p.parseTerm)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseTerm() (x ir.Value, err error) {
	x, err = p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := mulOps[p.tok.Kind]
		if !ok {
			return x, nil
		}

		x, err = p.binary(op, x, p.parseFactor)
		if err != nil {
			return nil, err
		}
	}
}

// binary parses the right operand of op with next.
// & and OR are short-circuited.
func (p *Parser) binary(op eval.Op, x ir.Value, next func() (ir.Value, error)) (ir.Value, error) {
	err := p.advance()
	if err != nil {
		return nil, err
	}

	if op != eval.And && op != eval.Or {
		y, err := next()
		if err != nil {
			return nil, err
		}

		return p.ev.Binary(op, x, y)
	}

	l, err := p.ev.BeginLogic(op, x)
	if err != nil {
		return nil, err
	}

	y, err := next()
	if err != nil {
		return nil, err
	}

	return p.ev.EndLogic(l, y)
}

func (p *Parser) parseFactor() (x ir.Value, err error) {
	switch p.tok.Kind {
	case lexer.Integer:
		v, err := p.tok.Int()
		if err != nil {
			return nil, err
		}

		return ir.Int(v), p.advance()
	case lexer.KwTrue:
		return ir.Bool(true), p.advance()
	case lexer.KwFalse:
		return ir.Bool(false), p.advance()
	case lexer.Not:
		err = p.advance()
		if err != nil {
			return nil, err
		}

		x, err = p.parseExpression()
		if err != nil {
			return nil, err
		}

		return p.ev.Unary(eval.Not, x)
	case lexer.LParen:
		err = p.advance()
		if err != nil {
			return nil, err
		}

		x, err = p.parseExpression()
		if err != nil {
			return nil, err
		}

		return x, p.consume(lexer.RParen)
	case lexer.Ident:
		return p.parseDesignatorValue()
	}

	return nil, p.unexpected("factor")
}

func (p *Parser) parseDesignatorValue() (ir.Value, error) {
	d, err := p.parseQualIdent()
	if err != nil {
		return nil, err
	}

	switch d := d.(type) {
	case *scope.Const:
		return d.Value, nil
	case *scope.Variable:
		return p.read(d)
	case *scope.Procedure:
		if d.Returns == tp.Void {
			return nil, errors.Wrap(ErrNotValue, "PROCEDURE %v", d.Name)
		}

		return p.call(d)
	}

	return nil, errors.Wrap(ErrNotValue, "%v", d.DeclName())
}

// parseQualIdent resolves the current identifier and moves past it.
func (p *Parser) parseQualIdent() (scope.Decl, error) {
	err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}

	d := p.scope.Lookup(p.tok.Raw)
	if d == nil {
		return nil, p.atToken(errors.Wrap(ErrUnknownIdent, "%v", p.tok.Raw))
	}

	return d, p.advance()
}

func (p *Parser) read(v *scope.Variable) (ir.Value, error) {
	err := p.access(v)
	if err != nil {
		return nil, err
	}

	if !v.WithLoad {
		return v.Ref, nil
	}

	return p.gen.Load(v.Ref), nil
}

// access checks v belongs to the function being emitted.
// Locals of enclosing procedures are out of reach.
func (p *Parser) access(v *scope.Variable) error {
	if v.Owner != nil && v.Owner != p.proc {
		return errors.Wrap(ErrNonLocal, "%v of %v", v.Name, v.Owner.Name)
	}

	return nil
}

// assignable checks v can be stored to.
func (p *Parser) assignable(v *scope.Variable) error {
	err := p.access(v)
	if err != nil {
		return err
	}

	if !v.WithLoad {
		return errors.Wrap(ErrNotVariable, "%v is a value parameter", v.Name)
	}

	return nil
}
