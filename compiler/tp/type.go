package tp

type (
	// Type is one of the predefined types.
	// Types are compared by value.
	Type uint8
)

const (
	Void Type = iota
	Integer
	Boolean
	Real
)

var types = [...]struct {
	name    string
	ir      string
	numeric bool
}{
	Void:    {name: "VOID", ir: "void"},
	Integer: {name: "INTEGER", ir: "i32", numeric: true},
	Boolean: {name: "BOOLEAN", ir: "i1"},
	Real:    {name: "REAL", ir: "double", numeric: true},
}

// Predefined are the types visible in the outermost scope.
var Predefined = []Type{Integer, Boolean, Real}

func (t Type) String() string {
	if int(t) < len(types) {
		return types[t].name
	}

	return "UNKNOWN"
}

// IR returns the low level type mnemonic.
func (t Type) IR() string {
	if int(t) < len(types) {
		return types[t].ir
	}

	return "void"
}

func (t Type) IsNumeric() bool {
	return int(t) < len(types) && types[t].numeric
}
