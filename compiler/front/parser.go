package front

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/tinylang/tiny/compiler/eval"
	"github.com/tinylang/tiny/compiler/gen"
	"github.com/tinylang/tiny/compiler/lexer"
	"github.com/tinylang/tiny/compiler/scope"
)

type (
	// Parser compiles one source unit in a single pass.
	// Declarations and statements are checked and emitted as they are parsed.
	Parser struct {
		name string

		lex *lexer.Lexer
		tok lexer.Token

		// line of the last consumed token
		line int
		// errLine overrides line when the error is at the current token
		errLine int

		gen *gen.Gen
		ev  *eval.Evaluator

		universe *scope.Scope
		scope    *scope.Scope

		// proc is the procedure whose body is being compiled.
		// nil in the module body.
		proc *scope.Procedure
	}

	// Error is a compilation error at a source line.
	Error struct {
		File string
		Line int
		Err  error
	}
)

var (
	ErrUnexpected     = errors.New("unexpected token")
	ErrUnknownIdent   = errors.New("unknown identifier")
	ErrRedefined      = errors.New("already defined")
	ErrNameMismatch   = errors.New("name mismatch")
	ErrNotConst       = errors.New("expression is not const")
	ErrNotType        = errors.New("is no type")
	ErrNotVariable    = errors.New("is no variable")
	ErrNotValue       = errors.New("is no value")
	ErrNotImplemented = errors.New("not implemented")
	ErrNonLocal       = errors.New("non-local variable access")
	ErrArgCount       = errors.New("wrong number of arguments")
	ErrReturn         = errors.New("bad return")
)

func New(name string, text []byte) *Parser {
	g := gen.New(name)
	u := scope.Universe()

	return &Parser{
		name:     name,
		lex:      lexer.New(text),
		line:     1,
		gen:      g,
		ev:       eval.New(g),
		universe: u,
		scope:    u,
	}
}

// Parse compiles the module and returns its IR text.
func (p *Parser) Parse(ctx context.Context) (obj []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "front: parse", "file", p.name)
	defer tr.Finish("err", &err)

	defer func() {
		if err != nil {
			line := p.line
			if p.errLine != 0 {
				line = p.errLine
			}

			err = &Error{File: p.name, Line: line, Err: err}
		}
	}()

	err = p.advance()
	if err != nil {
		return nil, err
	}

	_, err = p.parseModule(ctx)
	if err != nil {
		return nil, err
	}

	err = p.expect(lexer.Eoi)
	if err != nil {
		return nil, err
	}

	return p.gen.Finish(), nil
}

func (p *Parser) advance() (err error) {
	if p.tok.Line != 0 {
		p.line = p.tok.Line
	}

	p.tok, err = p.lex.Next()
	if err != nil {
		p.errLine = p.lex.Line()
	}

	return err
}

func (p *Parser) expect(k lexer.Kind) error {
	if p.tok.Kind != k {
		return p.unexpected(k.String())
	}

	return nil
}

func (p *Parser) consume(k lexer.Kind) error {
	err := p.expect(k)
	if err != nil {
		return err
	}

	return p.advance()
}

func (p *Parser) unexpected(want string) error {
	return p.atToken(errors.Wrap(ErrUnexpected, "%q, expected %v", p.tok.String(), want))
}

// atToken reports err at the current token instead of the last consumed one.
func (p *Parser) atToken(err error) error {
	p.errLine = p.tok.Line

	return err
}

// enter makes a new scope current.
// The returned func restores the previous one.
func (p *Parser) enter(owner scope.Scoping) (leave func()) {
	prev := p.scope

	s := scope.New(prev)
	s.From = loc.Caller(1)
	p.scope = s

	tlog.V("scope").Printw("enter scope", "owner", owner.DeclName(), "depth", s.Depth(), "from", s.From)

	return func() {
		p.scope = prev

		tlog.V("scope").Printw("leave scope", "owner", owner.DeclName(), "depth", s.Depth(), "from", s.From)
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
