package lang

import "fmt"

func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewChar(c string) Value   { return Value{kind: KindChar, data: &textValue{text: c}} }

// NewBool returns one of the shared True or False values.
func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

func NewComment(text string) Value { return Value{kind: KindComment, data: &textValue{text: text}} }
func NewNewLine() Value            { return Value{kind: KindNewLine, data: &textValue{text: "\n"}} }

// NewError builds an Error value with a formatted message.
func NewError(format string, args ...any) Value {
	return Value{kind: KindError, data: &errorValue{message: fmt.Sprintf(format, args...)}}
}

func newErrorAt(pos Position, format string, args ...any) Value {
	return Value{kind: KindError, data: &errorValue{message: fmt.Sprintf(format, args...), pos: pos}}
}

func NewReturn(v Value) Value {
	return Value{kind: KindReturn, data: &returnValue{value: v}}
}

func NewFunction(params []*Identifier, body *BlockStatement, env *Env) Value {
	return Value{kind: KindFunction, data: &Function{Parameters: params, Body: body, Env: env}}
}

func NewBuiltin(name string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Fn: fn}}
}

// NewHash builds a Hash from key/value pairs. It fails with an Error value
// when a key is not hashable.
func NewHash(pairs ...HashPair) Value {
	h := &Hash{Pairs: make(map[HashKey]HashPair, len(pairs))}
	for _, pair := range pairs {
		key, ok := pair.Key.HashKey()
		if !ok {
			return NewError("unusable as hash key: %s", pair.Key.Kind())
		}
		h.Pairs[key] = pair
	}
	return Value{kind: KindHash, data: h}
}
