package gen

import (
	"github.com/nikandfor/hacked/hfmt"

	"github.com/tinylang/tiny/compiler/ir"
	"github.com/tinylang/tiny/compiler/tp"
)

// Global declares a module variable initialized with zero.
func (g *Gen) Global(sym string, t tp.Type) ir.Global {
	v := ir.Global{Sym: sym, T: t}

	if g.hidden == 0 {
		g.globals = hfmt.Appendf(g.globals, "%v = global %v %v, align 4\n", v.Name(), t.IR(), ir.Zero(t).Name())
	}

	return v
}

func (g *Gen) appendRaw(format string, args ...any) {
	if g.hidden != 0 {
		return
	}

	g.cur.Text = hfmt.Appendf(g.cur.Text, format, args...)
	g.cur.Text = append(g.cur.Text, '\n')
}

func (g *Gen) append(format string, args ...any) {
	if g.hidden != 0 {
		return
	}

	g.cur.Text = append(g.cur.Text, '\t')
	g.appendRaw(format, args...)
}

func (g *Gen) Label(l string) {
	g.appendRaw("%v:", l)
}

func (g *Gen) Branch(l string) {
	g.append("br label %%%v", l)
}

func (g *Gen) Cond(v ir.Value, t, f string) {
	g.append("br %v %v, label %%%v, label %%%v", v.Type().IR(), v.Name(), t, f)
}

func (g *Gen) RetVoid() {
	g.append("ret void")
}

func (g *Gen) Ret(v ir.Value) {
	g.append("ret %v %v", v.Type().IR(), v.Name())
}

// Alloca reserves a stack slot for a value of type t.
func (g *Gen) Alloca(t tp.Type) ir.Ref {
	r := ir.Ref{ID: g.NextID(), T: t}

	g.append("%v = alloca %v, align 4", r.Name(), t.IR())

	return r
}

// Store writes v into the slot ptr points to.
func (g *Gen) Store(v, ptr ir.Value) {
	t := ptr.Type().IR()

	g.append("store %v %v, %v* %v, align 4", t, v.Name(), t, ptr.Name())
}

func (g *Gen) Load(ptr ir.Value) ir.Ref {
	r := ir.Ref{ID: g.NextID(), T: ptr.Type()}
	t := r.T.IR()

	g.append("%v = load %v, %v* %v, align 4", r.Name(), t, t, ptr.Name())

	return r
}

// Binary emits an arithmetic or logic instruction.
// Operands and result have type t.
func (g *Gen) Binary(op string, t tp.Type, a, b ir.Value) ir.Ref {
	r := ir.Ref{ID: g.NextID(), T: t}

	g.append("%v = %v %v %v, %v", r.Name(), op, t.IR(), a.Name(), b.Name())

	return r
}

// Compare emits icmp or fcmp depending on the operands type t.
func (g *Gen) Compare(pred string, t tp.Type, a, b ir.Value) ir.Ref {
	r := ir.Ref{ID: g.NextID(), T: tp.Boolean}

	cmp := "icmp"
	if t == tp.Real {
		cmp = "fcmp"
	}

	g.append("%v = %v %v %v %v, %v", r.Name(), cmp, pred, t.IR(), a.Name(), b.Name())

	return r
}

// IntToReal converts an INTEGER value.
func (g *Gen) IntToReal(v ir.Value) ir.Ref {
	r := ir.Ref{ID: g.NextID(), T: tp.Real}

	g.append("%v = sitofp i32 %v to double", r.Name(), v.Name())

	return r
}

// Call emits a call of function name.
// Arguments for ByRef params are pointers.
// It returns nil for Void functions.
func (g *Gen) Call(name string, ret tp.Type, params []Param, args []ir.Value) ir.Value {
	var b []byte

	for i, a := range args {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = hfmt.Appendf(b, "%v %v", ptype(params[i]), a.Name())
	}

	if ret == tp.Void {
		g.append("call void @%v(%s)", name, b)

		return nil
	}

	r := ir.Ref{ID: g.NextID(), T: ret}

	g.append("%v = call %v @%v(%s)", r.Name(), ret.IR(), name, b)

	return r
}
