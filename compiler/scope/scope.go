package scope

import (
	"tlog.app/go/loc"

	"github.com/tinylang/tiny/compiler/tp"
)

type (
	Scope struct {
		parent  *Scope
		symbols map[string]Decl

		// From is where the scope was entered.
		From loc.PC
	}
)

func New(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		symbols: make(map[string]Decl),
	}
}

// Universe returns a new outermost scope with the predefined types.
func Universe() *Scope {
	s := New(nil)

	for _, t := range tp.Predefined {
		s.Insert(&TypeDecl{Name: t.String(), Type: t})
	}

	return s
}

func (s *Scope) Parent() *Scope { return s.parent }

// Insert adds d to s.
// It returns false if the name is already declared in s itself.
// Names of outer scopes may be shadowed.
func (s *Scope) Insert(d Decl) bool {
	name := d.DeclName()

	if _, ok := s.symbols[name]; ok {
		return false
	}

	s.symbols[name] = d

	return true
}

// Lookup finds the innermost declaration of name.
func (s *Scope) Lookup(name string) Decl {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.symbols[name]; ok {
			return d
		}
	}

	return nil
}

// Depth is the number of enclosing scopes.
func (s *Scope) Depth() (d int) {
	for cur := s.parent; cur != nil; cur = cur.parent {
		d++
	}

	return d
}
