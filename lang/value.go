package lang

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindChar
	KindError
	KindReturn
	KindFunction
	KindBuiltin
	KindHash
	KindComment
	KindNewLine
)

// Value is a runtime value. The zero Value is Null. Reference variants keep a
// pointer in data so that == on two Values is identity for them and value
// equality for scalars.
type Value struct {
	kind ValueKind
	data any
}

// Function is a closure: the parameters and body of a FUNCTION literal
// together with the environment it was evaluated in.
type Function struct {
	Parameters []*Identifier
	Body       *BlockStatement
	Env        *Env
}

// BuiltinFunc is the signature of native functions exposed to programs. env is
// the caller's environment. Misuse is reported by returning an Error value.
type BuiltinFunc func(env *Env, args ...Value) Value

type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// BuiltinRegistry resolves names that are not bound in any scope.
type BuiltinRegistry interface {
	Lookup(name string) (Value, bool)
}

// Hash maps hashable keys to their original key and value.
type Hash struct {
	Pairs map[HashKey]HashPair
}

type HashPair struct {
	Key   Value
	Value Value
}

type errorValue struct {
	message string
	pos     Position
}

type returnValue struct {
	value Value
}

// textValue backs characters, comments and newlines. Each evaluation
// allocates a fresh one, so two equal characters are still distinct values.
type textValue struct {
	text string
}

var (
	Null  = Value{kind: KindNull}
	True  = Value{kind: KindBool, data: true}
	False = Value{kind: KindBool, data: false}
)
