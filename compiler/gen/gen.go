package gen

import (
	"github.com/nikandfor/hacked/hfmt"
	"nikand.dev/go/heap"
	"tlog.app/go/tlog"

	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/tp"
)

type (
	// Gen allocates value and label ids and writes IR text.
	//
	// While hidden nothing is written and no counter advances.
	Gen struct {
		module string

		globals []byte
		funcs   heap.Heap[Function]
		seq     int

		cur   *frame
		outer []*frame

		hidden int
	}

	// Function is a finished function definition.
	Function struct {
		Seq  int
		Name string
		Text []byte
	}

	Param struct {
		Type  tp.Type
		ByRef bool
	}

	frame struct {
		Function

		next [numCounters]int
	}

	counter int
)

const (
	valueID counter = iota
	whileID
	ifID
	orID
	andID

	numCounters
)

func New(module string) *Gen {
	return &Gen{
		module: module,
		funcs:  heap.Heap[Function]{Less: funcLess},
	}
}

// Begin opens a new function and makes it current.
// The enclosing function, if any, is resumed by End.
// It returns the parameter values.
func (g *Gen) Begin(name string, ret tp.Type, params []Param) []ir.Ref {
	if g.cur != nil {
		g.outer = append(g.outer, g.cur)
	}

	g.cur = &frame{
		Function: Function{
			Seq:  g.seq,
			Name: name,
		},
	}

	g.seq++

	refs := make([]ir.Ref, len(params))

	b := hfmt.Appendf(g.cur.Text, "define %v @%v(", ret.IR(), name)

	for i, p := range params {
		refs[i] = ir.Ref{ID: g.NextID(), T: p.Type}

		if i != 0 {
			b = append(b, ", "...)
		}

		b = hfmt.Appendf(b, "%v %v", ptype(p), refs[i].Name())
	}

	g.cur.Text = append(b, ") {\n"...)

	// the unnamed entry block takes the next id
	g.NextID()

	return refs
}

// End closes the current function.
func (g *Gen) End() {
	f := g.cur.Function
	f.Text = append(f.Text, "}\n"...)

	tlog.V("func").Printw("function", "seq", f.Seq, "name", f.Name, "size", len(f.Text))

	g.funcs.Push(f)

	g.cur = nil

	if l := len(g.outer); l != 0 {
		g.cur = g.outer[l-1]
		g.outer = g.outer[:l-1]
	}
}

// Finish assembles the module text.
// Functions are ordered by the time they were begun.
func (g *Gen) Finish() (b []byte) {
	b = hfmt.Appendf(b, "; ModuleID = '%s'\n", g.module)

	if len(g.globals) != 0 {
		b = append(b, '\n')
		b = append(b, g.globals...)
	}

	for g.funcs.Len() != 0 {
		f := g.funcs.Pop()

		b = append(b, '\n')
		b = append(b, f.Text...)
	}

	tlog.V("dump_ir").Printw("module", "text", b)

	return b
}

// Text returns the text of the current function so far.
func (g *Gen) Text() []byte {
	if g.cur == nil {
		return nil
	}

	return g.cur.Text
}

func (g *Gen) Hide() { g.hidden++ }
func (g *Gen) Show() { g.hidden-- }

func (g *Gen) Hidden() bool { return g.hidden != 0 }

func (g *Gen) NextID() int      { return g.next(valueID) }
func (g *Gen) NextWhileID() int { return g.next(whileID) }
func (g *Gen) NextIfID() int    { return g.next(ifID) }
func (g *Gen) NextOrID() int    { return g.next(orID) }
func (g *Gen) NextAndID() int   { return g.next(andID) }

func (g *Gen) next(c counter) (id int) {
	if g.hidden != 0 {
		return -1
	}

	id = g.cur.next[c]
	g.cur.next[c]++

	return id
}

func funcLess(d []Function, i, j int) bool {
	return d[i].Seq < d[j].Seq
}

func ptype(p Param) string {
	if p.ByRef {
		return p.Type.IR() + "*"
	}

	return p.Type.IR()
}
