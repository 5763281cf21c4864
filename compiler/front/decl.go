package front

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/tinylang/tiny/compiler/gen"
	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/lexer"
	"github.com/tinylang/tiny/compiler/scope"
	"github.com/tinylang/tiny/compiler/tp"
)

func (p *Parser) parseModule(ctx context.Context) (mod *scope.Module, err error) {
	err = p.consume(lexer.KwModule)
	if err != nil {
		return nil, err
	}

	err = p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}

	mod = &scope.Module{Name: p.tok.Raw}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile module", "name", mod.Name)
	defer tr.Finish("err", &err)

	err = p.declare(mod)
	if err != nil {
		return nil, err
	}

	defer p.enter(mod)()

	err = p.advance()
	if err != nil {
		return nil, err
	}

	err = p.consume(lexer.Semicolon)
	if err != nil {
		return nil, err
	}

	if p.tok.Is(lexer.KwImport) {
		return nil, errors.Wrap(ErrNotImplemented, "IMPORT")
	}

	err = p.parseDeclarationSequence(ctx, mod)
	if err != nil {
		return nil, errors.Wrap(err, "module %v", mod.Name)
	}

	p.gen.Begin(mod.Mangle("_init"), tp.Void, nil)

	if p.tok.Is(lexer.KwBegin) {
		err = p.advance()
		if err != nil {
			return nil, err
		}

		err = p.parseStatementSequence(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "module %v", mod.Name)
		}
	}

	p.gen.RetVoid()
	p.gen.End()

	err = p.consume(lexer.KwEnd)
	if err != nil {
		return nil, err
	}

	err = p.closingName("MODULE", mod.Name)
	if err != nil {
		return nil, err
	}

	err = p.consume(lexer.Period)
	if err != nil {
		return nil, err
	}

	return mod, nil
}

func (p *Parser) parseDeclarationSequence(ctx context.Context, parent scope.Scoping) (err error) {
	if p.tok.Is(lexer.KwConst) {
		err = p.advance()
		if err != nil {
			return err
		}

		for p.tok.Is(lexer.Ident) {
			err = p.parseConstDeclaration()
			if err != nil {
				return errors.Wrap(err, "CONST")
			}
		}
	}

	if p.tok.Is(lexer.KwType) {
		return errors.Wrap(ErrNotImplemented, "TYPE")
	}

	if p.tok.Is(lexer.KwVar) {
		err = p.advance()
		if err != nil {
			return err
		}

		for !p.tok.Is(lexer.Eoi, lexer.KwEnd, lexer.KwBegin, lexer.KwProcedure) {
			err = p.parseVariableDeclaration(parent)
			if err != nil {
				return errors.Wrap(err, "VAR")
			}

			err = p.consume(lexer.Semicolon)
			if err != nil {
				return err
			}
		}
	}

	for p.tok.Is(lexer.KwProcedure) {
		_, err = p.parseProcedureDeclaration(ctx, parent)
		if err != nil {
			return err
		}

		err = p.consume(lexer.Semicolon)
		if err != nil {
			return err
		}
	}

	return nil
}

// parseConstDeclaration parses `name = expr ;`.
// The expression is evaluated hidden and must fold to a literal.
func (p *Parser) parseConstDeclaration() (err error) {
	name := p.tok.Raw

	err = p.advance()
	if err != nil {
		return err
	}

	err = p.consume(lexer.Equal)
	if err != nil {
		return err
	}

	p.gen.Hide()
	x, err := p.parseExpression()
	p.gen.Show()

	if err != nil {
		return errors.Wrap(err, "%v", name)
	}

	lit, ok := x.(ir.Literal)
	if !ok {
		return errors.Wrap(ErrNotConst, "%v", name)
	}

	err = p.declare(&scope.Const{Name: name, Value: lit})
	if err != nil {
		return err
	}

	return p.consume(lexer.Semicolon)
}

// parseVariableDeclaration parses `a, b: T`.
// Module variables become globals, procedure variables get a stack slot.
func (p *Parser) parseVariableDeclaration(parent scope.Scoping) error {
	names, err := p.parseIdentList()
	if err != nil {
		return err
	}

	err = p.consume(lexer.Colon)
	if err != nil {
		return err
	}

	t, err := p.parseType()
	if err != nil {
		return err
	}

	for _, name := range names {
		v := &scope.Variable{
			Name:     name,
			Type:     t,
			WithLoad: true,
			Owner:    p.proc,
		}

		if p.proc == nil {
			v.Ref = p.gen.Global(parent.Mangle(name), t)
		} else {
			v.Ref = p.gen.Alloca(t)
		}

		err = p.declare(v)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Parser) parseProcedureDeclaration(ctx context.Context, parent scope.Scoping) (proc *scope.Procedure, err error) {
	err = p.consume(lexer.KwProcedure)
	if err != nil {
		return nil, err
	}

	err = p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}

	proc = &scope.Procedure{
		Name:   p.tok.Raw,
		Parent: parent,
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile procedure", "name", proc.Name, "mangled", proc.Mangled())
	defer tr.Finish("err", &err)

	// declared before the body so it can call itself
	err = p.declare(proc)
	if err != nil {
		return nil, err
	}

	err = p.advance()
	if err != nil {
		return nil, err
	}

	defer p.enter(proc)()

	defer func(outer *scope.Procedure) {
		p.proc = outer
	}(p.proc)

	p.proc = proc

	if p.tok.Is(lexer.LParen) {
		err = p.parseFormalParameters(proc)
		if err != nil {
			return nil, errors.Wrap(err, "PROCEDURE %v", proc.Name)
		}
	}

	err = p.consume(lexer.Semicolon)
	if err != nil {
		return nil, err
	}

	args := p.gen.Begin(proc.Mangled(), proc.Returns, params(proc))

	for i, v := range proc.Params {
		v.Ref = args[i]
	}

	err = p.parseProcedureBody(ctx, proc)
	if err != nil {
		return nil, errors.Wrap(err, "PROCEDURE %v", proc.Name)
	}

	p.gen.End()

	err = p.closingName("PROCEDURE", proc.Name)
	if err != nil {
		return nil, err
	}

	return proc, nil
}

func (p *Parser) parseProcedureBody(ctx context.Context, proc *scope.Procedure) (err error) {
	err = p.parseDeclarationSequence(ctx, proc)
	if err != nil {
		return err
	}

	if p.tok.Is(lexer.KwBegin) {
		err = p.advance()
		if err != nil {
			return err
		}

		err = p.parseStatementSequence(ctx)
		if err != nil {
			return err
		}
	}

	switch {
	case p.tok.Is(lexer.KwReturn):
		err = p.advance()
		if err != nil {
			return err
		}

		x, err := p.parseExpression()
		if err != nil {
			return errors.Wrap(err, "RETURN")
		}

		if proc.Returns == tp.Void {
			return errors.Wrap(ErrReturn, "RETURN with a value in a proper procedure")
		}

		x, err = p.ev.Convert(x, proc.Returns)
		if err != nil {
			return errors.Wrap(err, "RETURN")
		}

		p.gen.Ret(x)
	case proc.Returns != tp.Void:
		return errors.Wrap(ErrReturn, "RETURN %v expected", proc.Returns)
	default:
		p.gen.RetVoid()
	}

	return p.consume(lexer.KwEnd)
}

// parseFormalParameters parses `( [section {; section}] ) [: T]`.
// Sections may also be separated by commas.
func (p *Parser) parseFormalParameters(proc *scope.Procedure) (err error) {
	err = p.consume(lexer.LParen)
	if err != nil {
		return err
	}

	if !p.tok.Is(lexer.RParen, lexer.Eoi) {
		for {
			err = p.parseFPSection(proc)
			if err != nil {
				return err
			}

			if !p.tok.Is(lexer.Semicolon, lexer.Comma) {
				break
			}

			err = p.advance()
			if err != nil {
				return err
			}
		}
	}

	err = p.consume(lexer.RParen)
	if err != nil {
		return err
	}

	if !p.tok.Is(lexer.Colon) {
		return nil
	}

	err = p.advance()
	if err != nil {
		return err
	}

	proc.Returns, err = p.parseType()

	return err
}

// parseFPSection parses `[VAR] a, b: T`.
// Parameters live in registers, VAR parameters are pointers.
func (p *Parser) parseFPSection(proc *scope.Procedure) (err error) {
	isVar := p.tok.Is(lexer.KwVar)

	if isVar {
		err = p.advance()
		if err != nil {
			return err
		}
	}

	names, err := p.parseIdentList()
	if err != nil {
		return err
	}

	err = p.consume(lexer.Colon)
	if err != nil {
		return err
	}

	if p.tok.Is(lexer.KwArray) {
		return errors.Wrap(ErrNotImplemented, "ARRAY parameters")
	}

	t, err := p.parseType()
	if err != nil {
		return err
	}

	for _, name := range names {
		v := &scope.Variable{
			Name:     name,
			Type:     t,
			IsVar:    isVar,
			WithLoad: isVar,
			Owner:    proc,
		}

		err = p.declare(v)
		if err != nil {
			return err
		}

		proc.Params = append(proc.Params, v)
	}

	return nil
}

func (p *Parser) parseIdentList() (names []string, err error) {
	for {
		err = p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}

		names = append(names, p.tok.Raw)

		err = p.advance()
		if err != nil {
			return nil, err
		}

		if !p.tok.Is(lexer.Comma) {
			return names, nil
		}

		err = p.advance()
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseType() (tp.Type, error) {
	d, err := p.parseQualIdent()
	if err != nil {
		return tp.Void, err
	}

	t, ok := d.(*scope.TypeDecl)
	if !ok {
		return tp.Void, errors.Wrap(ErrNotType, "%v", d.DeclName())
	}

	return t.Type, nil
}

// closingName checks the identifier after END.
func (p *Parser) closingName(what, name string) error {
	err := p.expect(lexer.Ident)
	if err != nil {
		return err
	}

	if p.tok.Raw != name {
		return p.atToken(errors.Wrap(ErrNameMismatch, "%v %v ends with name %v", what, name, p.tok.Raw))
	}

	return p.advance()
}

func (p *Parser) declare(d scope.Decl) error {
	if !p.scope.Insert(d) {
		return errors.Wrap(ErrRedefined, "%v", d.DeclName())
	}

	return nil
}

func params(proc *scope.Procedure) []gen.Param {
	ps := make([]gen.Param, len(proc.Params))

	for i, v := range proc.Params {
		ps[i] = gen.Param{Type: v.Type, ByRef: v.IsVar}
	}

	return ps
}
