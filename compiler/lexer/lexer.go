package lexer

import (
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	Lexer struct {
		b    []byte
		i    int
		line int
	}
)

var (
	ErrUnknownChar     = errors.New("unknown input character")
	ErrUnclosedComment = errors.New("unclosed comment")
	ErrBadInteger      = errors.New("bad integer")
)

func New(text []byte) *Lexer {
	return &Lexer{
		b:    text,
		line: 1,
	}
}

// Line is the 1-based line the lexer is at.
func (l *Lexer) Line() int { return l.line }

// Next reads the next token.
// At the end of the input it returns Eoi forever.
func (l *Lexer) Next() (tok Token, err error) {
	for {
		l.skipSpaces()

		if l.i+1 < len(l.b) && l.b[l.i] == '(' && l.b[l.i+1] == '*' {
			err = l.skipComment()
			if err != nil {
				return tok, err
			}

			continue
		}

		break
	}

	tok, err = l.token()
	if err != nil {
		return tok, err
	}

	tlog.V("token").Printw("token", "tok", tok)

	return tok, nil
}

func (l *Lexer) token() (tok Token, err error) {
	st := l.i
	tok.Line = l.line

	if st == len(l.b) {
		tok.Kind = Eoi
		return tok, nil
	}

	set := func(k Kind, size int) (Token, error) {
		l.i = st + size

		tok.Kind = k
		tok.Raw = string(l.b[st:l.i])

		return tok, nil
	}

	switch c := l.b[st]; {
	case isLetter(c):
		i := st + 1
		for i < len(l.b) && (isLetter(l.b[i]) || isDigit(l.b[i])) {
			i++
		}

		k, ok := Keyword(string(l.b[st:i]))
		if !ok {
			k = Ident
		}

		return set(k, i-st)
	case isDigit(c):
		i := st + 1
		for i < len(l.b) && isDigit(l.b[i]) {
			i++
		}

		return set(Integer, i-st)
	}

	switch c := l.b[st]; c {
	case '+':
		return set(Plus, 1)
	case '-':
		return set(Minus, 1)
	case '*':
		return set(Star, 1)
	case '/':
		return set(Slash, 1)
	case '(':
		return set(LParen, 1)
	case ')':
		return set(RParen, 1)
	case ',':
		return set(Comma, 1)
	case ';':
		return set(Semicolon, 1)
	case '.':
		return set(Period, 1)
	case '#':
		return set(NotEqual, 1)
	case '=':
		return set(Equal, 1)
	case '&':
		return set(And, 1)
	case '~':
		return set(Not, 1)
	case ':':
		if l.followedByEqual(st) {
			return set(Assign, 2)
		}

		return set(Colon, 1)
	case '<':
		if l.followedByEqual(st) {
			return set(LessEqual, 2)
		}

		return set(Less, 1)
	case '>':
		if l.followedByEqual(st) {
			return set(GreaterEqual, 2)
		}

		return set(Greater, 1)
	default:
		return tok, errors.Wrap(ErrUnknownChar, "%q", c)
	}
}

func (l *Lexer) followedByEqual(i int) bool {
	return i+1 < len(l.b) && l.b[i+1] == '='
}

func (l *Lexer) skipSpaces() {
	for l.i < len(l.b) {
		switch l.b[l.i] {
		case '\n':
			l.line++
		case ' ', '\t', '\f', '\v', '\r':
		default:
			return
		}

		l.i++
	}
}

// skipComment skips a comment starting at the current position.
// Comments nest.
func (l *Lexer) skipComment() error {
	l.i += 2
	nesting := 1

	for l.i < len(l.b) {
		c := l.b[l.i]
		l.i++

		switch {
		case c == '\n':
			l.line++
		case c == '(' && l.i < len(l.b) && l.b[l.i] == '*':
			l.i++
			nesting++
		case c == '*' && l.i < len(l.b) && l.b[l.i] == ')':
			l.i++
			nesting--

			if nesting == 0 {
				return nil
			}
		}
	}

	return ErrUnclosedComment
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
