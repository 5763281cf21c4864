package eval

type (
	Op int
)

const (
	Add Op = iota
	Sub
	Mul
	Quo
	Div
	Mod

	Eql
	Neq
	Lss
	Leq
	Gtr
	Geq

	And
	Or

	Neg
	Pos
	Not
)

var opNames = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Quo: "/",
	Div: "DIV",
	Mod: "MOD",
	Eql: "=",
	Neq: "#",
	Lss: "<",
	Leq: "<=",
	Gtr: ">",
	Geq: ">=",
	And: "&",
	Or:  "OR",
	Neg: "-",
	Pos: "+",
	Not: "~",
}

func (op Op) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}

	return "?"
}

func (op Op) isArith() bool   { return op >= Add && op <= Mod }
func (op Op) isCompare() bool { return op >= Eql && op <= Geq }
func (op Op) isLogic() bool   { return op == And || op == Or }

// mnemonics by operand type
var (
	intOps = map[Op]string{
		Add: "add", Sub: "sub", Mul: "mul", Div: "sdiv", Mod: "srem",
		And: "and", Or: "or",
		Eql: "eq", Neq: "ne", Lss: "slt", Leq: "sle", Gtr: "sgt", Geq: "sge",
	}

	realOps = map[Op]string{
		Add: "fadd", Sub: "fsub", Mul: "fmul", Quo: "fdiv",
		Eql: "oeq", Neq: "one", Lss: "olt", Leq: "ole", Gtr: "ogt", Geq: "oge",
	}
)
