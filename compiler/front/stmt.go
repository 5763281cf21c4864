package front

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/tinylang/tiny/compiler/eval"
	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/lexer"
	"github.com/tinylang/tiny/compiler/scope"
	"github.com/tinylang/tiny/compiler/tp"
)

func (p *Parser) parseStatementSequence(ctx context.Context) (err error) {
	for {
		err = p.parseStatement(ctx)
		if err != nil {
			return err
		}

		if !p.tok.Is(lexer.Semicolon) {
			return nil
		}

		err = p.advance()
		if err != nil {
			return err
		}
	}
}

func (p *Parser) parseStatement(ctx context.Context) (err error) {
	switch p.tok.Kind {
	case lexer.Ident:
		// CASE and FOR are not keywords
		switch p.tok.Raw {
		case "CASE", "FOR":
			return errors.Wrap(ErrNotImplemented, "%v statement", p.tok.Raw)
		}

		return p.parseAssignmentOrCall()
	case lexer.KwIf:
		return p.parseIf(ctx)
	case lexer.KwWhile:
		return p.parseWhile(ctx)
	case lexer.KwRepeat:
		return p.parseRepeat(ctx)
	case lexer.KwWith:
		return errors.Wrap(ErrNotImplemented, "WITH statement")
	}

	// empty statement
	return nil
}

func (p *Parser) parseAssignmentOrCall() (err error) {
	name := p.tok.Raw

	d, err := p.parseQualIdent()
	if err != nil {
		return err
	}

	switch d := d.(type) {
	case *scope.Procedure:
		_, err = p.call(d)
		if err != nil {
			return errors.Wrap(err, "call %v", name)
		}

		return nil
	case *scope.Variable:
		err = p.assignable(d)
		if err != nil {
			return err
		}

		err = p.consume(lexer.Assign)
		if err != nil {
			return err
		}

		x, err := p.parseExpression()
		if err != nil {
			return errors.Wrap(err, "assign %v", name)
		}

		x, err = p.ev.Convert(x, d.Type)
		if err != nil {
			return errors.Wrap(err, "assign %v", name)
		}

		p.gen.Store(x, d.Ref)

		return nil
	}

	return errors.Wrap(ErrNotVariable, "%v", name)
}

// call parses actual parameters of proc if any and emits the call.
func (p *Parser) call(proc *scope.Procedure) (ir.Value, error) {
	var args []ir.Value

	if p.tok.Is(lexer.LParen) {
		err := p.advance()
		if err != nil {
			return nil, err
		}

		for !p.tok.Is(lexer.RParen) {
			if len(args) != 0 {
				err = p.consume(lexer.Comma)
				if err != nil {
					return nil, err
				}
			}

			if len(args) == len(proc.Params) {
				return nil, errors.Wrap(ErrArgCount, "%v takes %d", proc.Name, len(proc.Params))
			}

			a, err := p.parseArgument(proc.Params[len(args)])
			if err != nil {
				return nil, errors.Wrap(err, "argument %d", len(args))
			}

			args = append(args, a)
		}

		err = p.advance()
		if err != nil {
			return nil, err
		}
	}

	if len(args) != len(proc.Params) {
		return nil, errors.Wrap(ErrArgCount, "%v takes %d, got %d", proc.Name, len(proc.Params), len(args))
	}

	return p.gen.Call(proc.Mangled(), proc.Returns, params(proc), args), nil
}

// parseArgument parses an argument for param.
// VAR params take the address of an assignable variable of the same type.
func (p *Parser) parseArgument(param *scope.Variable) (ir.Value, error) {
	if !param.IsVar {
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		return p.ev.Convert(x, param.Type)
	}

	d, err := p.parseQualIdent()
	if err != nil {
		return nil, err
	}

	v, ok := d.(*scope.Variable)
	if !ok {
		return nil, errors.Wrap(ErrNotVariable, "%v for VAR %v", d.DeclName(), param.Name)
	}

	err = p.assignable(v)
	if err != nil {
		return nil, err
	}

	if v.Type != param.Type {
		return nil, errors.Wrap(eval.ErrIncompatible, "%v %v for VAR %v %v", v.Name, v.Type, param.Name, param.Type)
	}

	return v.Ref, nil
}

func (p *Parser) parseIf(ctx context.Context) (err error) {
	id := p.gen.NextIfID()

	label := func(kind string, alt int) string {
		return fmt.Sprintf("if_%d_%s_%d", id, kind, alt)
	}

	end := fmt.Sprintf("if_%d_end", id)

	tlog.SpanFromContext(ctx).V("stmt").Printw("IF", "id", id, "line", p.tok.Line)

	alt, err := p.parseGuardedBodies(ctx, lexer.KwThen, label, end)
	if err != nil {
		return errors.Wrap(err, "IF")
	}

	p.gen.Label(label("cond", alt))

	if p.tok.Is(lexer.KwElse) {
		err = p.advance()
		if err != nil {
			return err
		}

		err = p.parseStatementSequence(ctx)
		if err != nil {
			return errors.Wrap(err, "ELSE")
		}
	}

	p.gen.Branch(end)
	p.gen.Label(end)

	return p.consume(lexer.KwEnd)
}

// parseWhile emits a loop of guarded bodies.
// Every body goes back to the first condition,
// the block after the last condition is the loop exit.
func (p *Parser) parseWhile(ctx context.Context) (err error) {
	id := p.gen.NextWhileID()

	label := func(kind string, alt int) string {
		return fmt.Sprintf("while_%d_%s_%d", id, kind, alt)
	}

	tlog.SpanFromContext(ctx).V("stmt").Printw("WHILE", "id", id, "line", p.tok.Line)

	alt, err := p.parseGuardedBodies(ctx, lexer.KwDo, label, label("cond", 0))
	if err != nil {
		return errors.Wrap(err, "WHILE")
	}

	p.gen.Label(label("cond", alt))

	return p.consume(lexer.KwEnd)
}

// parseGuardedBodies parses `IF|WHILE cond THEN|DO stmts {ELSIF cond THEN|DO stmts}`.
// Each body branches to next when done.
// It returns the index of the condition block following the last body.
func (p *Parser) parseGuardedBodies(ctx context.Context, bind lexer.Kind, label func(string, int) string, next string) (alt int, err error) {
	p.gen.Branch(label("cond", 0))

	for {
		err = p.advance()
		if err != nil {
			return alt, err
		}

		p.gen.Label(label("cond", alt))

		c, err := p.parseExpression()
		if err != nil {
			return alt, err
		}

		if c.Type() != tp.Boolean {
			return alt, errors.Wrap(eval.ErrIncompatible, "condition of type %v", c.Type())
		}

		p.gen.Cond(c, label("body", alt), label("cond", alt+1))

		err = p.consume(bind)
		if err != nil {
			return alt, err
		}

		p.gen.Label(label("body", alt))

		err = p.parseStatementSequence(ctx)
		if err != nil {
			return alt, err
		}

		p.gen.Branch(next)

		alt++

		if !p.tok.Is(lexer.KwElsif) {
			return alt, nil
		}
	}
}

// parseRepeat checks REPEAT stmts UNTIL cond.
// Looping is not emitted so the statement is rejected once parsed.
func (p *Parser) parseRepeat(ctx context.Context) (err error) {
	err = p.advance()
	if err != nil {
		return err
	}

	err = p.parseStatementSequence(ctx)
	if err != nil {
		return errors.Wrap(err, "REPEAT")
	}

	err = p.consume(lexer.KwUntil)
	if err != nil {
		return err
	}

	c, err := p.parseExpression()
	if err != nil {
		return errors.Wrap(err, "UNTIL")
	}

	if c.Type() != tp.Boolean {
		return errors.Wrap(eval.ErrIncompatible, "condition of type %v", c.Type())
	}

	return errors.Wrap(ErrNotImplemented, "REPEAT statement")
}
