package scope

import (
	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/tp"
)

type (
	// Decl is a named declaration.
	// It's one of *Module, *Procedure, *Variable, *Const or *TypeDecl.
	Decl interface {
		DeclName() string

		decl()
	}

	// Scoping is a declaration which owns a scope and prefixes mangled names.
	Scoping interface {
		Decl

		Mangle(name string) string
	}

	Module struct {
		Name string
	}

	Procedure struct {
		Name   string
		Parent Scoping

		Params  []*Variable
		Returns tp.Type
	}

	Variable struct {
		Name string
		Type tp.Type

		// Ref is the storage slot if WithLoad is set
		// or the value itself otherwise.
		Ref ir.Value

		IsVar    bool
		WithLoad bool

		// Owner is the procedure the storage belongs to.
		// nil for module variables.
		Owner *Procedure
	}

	Const struct {
		Name  string
		Value ir.Literal
	}

	TypeDecl struct {
		Name string
		Type tp.Type
	}
)

func (d *Module) DeclName() string    { return d.Name }
func (d *Procedure) DeclName() string { return d.Name }
func (d *Variable) DeclName() string  { return d.Name }
func (d *Const) DeclName() string     { return d.Name }
func (d *TypeDecl) DeclName() string  { return d.Name }

func (*Module) decl()    {}
func (*Procedure) decl() {}
func (*Variable) decl()  {}
func (*Const) decl()     {}
func (*TypeDecl) decl()  {}

func (d *Module) Mangle(name string) string {
	return d.Name + "_" + name
}

func (d *Procedure) Mangle(name string) string {
	name = d.Name + "_" + name

	if d.Parent != nil {
		return d.Parent.Mangle(name)
	}

	return name
}

// Mangled is the external name of the procedure.
func (d *Procedure) Mangled() string {
	if d.Parent != nil {
		return d.Parent.Mangle(d.Name)
	}

	return d.Name
}
