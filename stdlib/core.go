package stdlib

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mgomes/codelang/lang"
)

func (r *Registry) registerCore() {
	r.register("len", builtinLen)
	r.register("string", builtinString)
	r.register("number", builtinNumber)
	r.register("print", builtinPrint)
	r.register("sprint", builtinSprint)
	r.register("sprintf", builtinSprintf)
	r.register("hash", builtinHash)
	r.register("hash_has", builtinHashHas)
	r.register("hash_set", builtinHashSet)
}

func builtinLen(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 1 {
		return wrongArgs(len(args), 1)
	}
	switch arg := args[0]; arg.Kind() {
	case lang.KindString, lang.KindChar:
		return lang.NewInt(int64(utf8.RuneCountInString(arg.Text())))
	case lang.KindHash:
		return lang.NewInt(int64(len(arg.Hash().Pairs)))
	default:
		return lang.NewError("argument to `len` not supported, got %s", arg.Kind())
	}
}

func builtinString(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 1 {
		return wrongArgs(len(args), 1)
	}
	if args[0].Kind() == lang.KindString {
		return args[0]
	}
	return lang.NewString(args[0].Inspect())
}

// builtinNumber converts text to an INTEGER when it holds a base-10 integer
// and to a FLOAT otherwise.
func builtinNumber(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 1 {
		return wrongArgs(len(args), 1)
	}
	switch arg := args[0]; arg.Kind() {
	case lang.KindInt, lang.KindFloat:
		return arg
	case lang.KindBool:
		if arg.Bool() {
			return lang.NewInt(1)
		}
		return lang.NewInt(0)
	case lang.KindString, lang.KindChar:
		s := strings.TrimSpace(arg.Text())
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return lang.NewInt(n)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return lang.NewFloat(f)
		}
		return lang.NewError("could not convert %q to a number", arg.Text())
	default:
		return lang.NewError("argument to `number` not supported, got %s", arg.Kind())
	}
}

func builtinPrint(env *lang.Env, args ...lang.Value) lang.Value {
	if _, err := io.WriteString(env.Stdout(), joinInspect(args)+"\n"); err != nil {
		return lang.NewError("print failed: %v", err)
	}
	return lang.Null
}

func builtinSprint(env *lang.Env, args ...lang.Value) lang.Value {
	return lang.NewString(joinInspect(args))
}

func joinInspect(args []lang.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Inspect()
	}
	return strings.Join(parts, " ")
}

// builtinSprintf formats with Go verbs. Arguments are passed as their native
// Go values so %d, %f, %t, %s and %q behave as expected.
func builtinSprintf(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) == 0 {
		return wrongArgs(0, 1)
	}
	format, failed := textArg("sprintf", args, 0)
	if failed.IsError() {
		return failed
	}
	natives := make([]any, 0, len(args)-1)
	for _, arg := range args[1:] {
		natives = append(natives, native(arg))
	}
	return lang.NewString(fmt.Sprintf(format, natives...))
}

func native(v lang.Value) any {
	switch v.Kind() {
	case lang.KindInt:
		return v.Int()
	case lang.KindFloat:
		return v.Float()
	case lang.KindBool:
		return v.Bool()
	case lang.KindString, lang.KindChar:
		return v.Text()
	default:
		return v.Inspect()
	}
}

func builtinHash(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args)%2 != 0 {
		return lang.NewError("hash expects key/value pairs, got %d arguments", len(args))
	}
	pairs := make([]lang.HashPair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, lang.HashPair{Key: args[i], Value: args[i+1]})
	}
	return lang.NewHash(pairs...)
}

func hashArg(name string, args []lang.Value) (*lang.Hash, lang.Value) {
	if args[0].Kind() != lang.KindHash {
		return nil, lang.NewError("argument 1 to `%s` must be HASH, got %s", name, args[0].Kind())
	}
	return args[0].Hash(), lang.Null
}

func builtinHashHas(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 2 {
		return wrongArgs(len(args), 2)
	}
	h, failed := hashArg("hash_has", args)
	if failed.IsError() {
		return failed
	}
	key, ok := args[1].HashKey()
	if !ok {
		return lang.False
	}
	_, found := h.Pairs[key]
	return lang.NewBool(found)
}

// builtinHashSet returns a copy of the hash with key bound to value; the
// argument is left untouched.
func builtinHashSet(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 3 {
		return wrongArgs(len(args), 3)
	}
	h, failed := hashArg("hash_set", args)
	if failed.IsError() {
		return failed
	}
	newKey, ok := args[1].HashKey()
	if !ok {
		return lang.NewError("unusable as hash key: %s", args[1].Kind())
	}
	pairs := make([]lang.HashPair, 0, len(h.Pairs)+1)
	for key, pair := range h.Pairs {
		if key == newKey {
			continue
		}
		pairs = append(pairs, pair)
	}
	pairs = append(pairs, lang.HashPair{Key: args[1], Value: args[2]})
	return lang.NewHash(pairs...)
}
