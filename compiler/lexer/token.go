package lexer

import (
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog/tlwire"
)

type (
	Kind int

	Token struct {
		Kind Kind
		Raw  string
		Line int
	}
)

const (
	Eoi Kind = iota
	Ident
	Integer

	Plus
	Minus
	Star
	Slash
	LParen
	RParen
	Comma
	Semicolon
	Period
	NotEqual
	Equal
	And
	Not
	Assign
	Colon
	Less
	LessEqual
	Greater
	GreaterEqual

	KwArray
	KwBegin
	KwConst
	KwDiv
	KwDo
	KwElse
	KwElsif
	KwEnd
	KwFalse
	KwIf
	KwImport
	KwMod
	KwModule
	KwOf
	KwOr
	KwProcedure
	KwRepeat
	KwReturn
	KwThen
	KwTrue
	KwType
	KwUntil
	KwVar
	KwWhile
	KwWith

	numKinds
)

var names = [numKinds]string{
	Eoi:     "end of input",
	Ident:   "identifier",
	Integer: "integer literal",

	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	LParen:       "(",
	RParen:       ")",
	Comma:        ",",
	Semicolon:    ";",
	Period:       ".",
	NotEqual:     "#",
	Equal:        "=",
	And:          "&",
	Not:          "~",
	Assign:       ":=",
	Colon:        ":",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",

	KwArray:     "ARRAY",
	KwBegin:     "BEGIN",
	KwConst:     "CONST",
	KwDiv:       "DIV",
	KwDo:        "DO",
	KwElse:      "ELSE",
	KwElsif:     "ELSIF",
	KwEnd:       "END",
	KwFalse:     "FALSE",
	KwIf:        "IF",
	KwImport:    "IMPORT",
	KwMod:       "MOD",
	KwModule:    "MODULE",
	KwOf:        "OF",
	KwOr:        "OR",
	KwProcedure: "PROCEDURE",
	KwRepeat:    "REPEAT",
	KwReturn:    "RETURN",
	KwThen:      "THEN",
	KwTrue:      "TRUE",
	KwType:      "TYPE",
	KwUntil:     "UNTIL",
	KwVar:       "VAR",
	KwWhile:     "WHILE",
	KwWith:      "WITH",
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, KwWith-KwArray+1)

	for k := KwArray; k <= KwWith; k++ {
		m[names[k]] = k
	}

	return m
}()

// Keyword returns the keyword kind spelled as s.
// Keywords are case sensitive.
func Keyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return names[k]
	}

	return "unknown"
}

func (k Kind) IsKeyword() bool {
	return k >= KwArray && k <= KwWith
}

func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}

	return false
}

func (t Token) String() string {
	if t.Kind == Eoi {
		return t.Kind.String()
	}

	return t.Raw
}

// Int is the value of an Integer token.
// It must fit into 32 bits.
func (t Token) Int() (int32, error) {
	x, err := strconv.ParseInt(t.Raw, 10, 32)
	if err != nil {
		return 0, errors.Wrap(ErrBadInteger, "%v", t.Raw)
	}

	return int32(x), nil
}

func (t Token) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 3)

	b = e.AppendString(b, "kind")
	b = e.AppendString(b, t.Kind.String())
	b = e.AppendString(b, "raw")
	b = e.AppendString(b, t.Raw)
	b = e.AppendKeyInt(b, "line", t.Line)

	return b
}
