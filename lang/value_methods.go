package lang

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// String returns the type name programs see in error messages.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindBool:
		return "BOOLEAN"
	case KindInt:
		return "INTEGER"
	case KindFloat:
		return "FLOAT"
	case KindString:
		return "STRING"
	case KindChar:
		return "CHARACTER"
	case KindError:
		return "ERROR"
	case KindReturn:
		return "RETURN_VALUE"
	case KindFunction:
		return "FUNCTION"
	case KindBuiltin:
		return "BUILTIN"
	case KindHash:
		return "HASH"
	case KindComment:
		return "COMMENT"
	case KindNewLine:
		return "NEWLINE"
	default:
		return fmt.Sprintf("KIND(%d)", int(k))
	}
}

func (v Value) Kind() ValueKind { return v.kind }

// Type is the type name of the value.
func (v Value) Type() string { return v.kind.String() }

func (v Value) IsNull() bool  { return v.kind == KindNull }
func (v Value) IsError() bool { return v.kind == KindError }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

// Text returns the content of strings, characters and comments.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindChar, KindComment, KindNewLine:
		return v.data.(*textValue).text
	default:
		return ""
	}
}

func (v Value) Function() *Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(*Function)
}

func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		return nil
	}
	return v.data.(*Builtin)
}

func (v Value) Hash() *Hash {
	if v.kind != KindHash {
		return nil
	}
	return v.data.(*Hash)
}

// ErrorMessage returns the message of an Error value.
func (v Value) ErrorMessage() string {
	if v.kind != KindError {
		return ""
	}
	return v.data.(*errorValue).message
}

func (v Value) errorPos() Position {
	if v.kind != KindError {
		return Position{}
	}
	return v.data.(*errorValue).pos
}

// Unwrap returns the value carried by a return signal, or v itself.
func (v Value) Unwrap() Value {
	if v.kind == KindReturn {
		return v.data.(*returnValue).value
	}
	return v
}

// Inspect renders the value the way DISPLAY and the REPL show it.
func (v Value) Inspect() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.Bool() {
			return "TRUE"
		}
		return "FALSE"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindString, KindChar, KindNewLine:
		return v.Text()
	case KindComment:
		return "# " + v.Text()
	case KindError:
		return "Error: " + v.ErrorMessage()
	case KindReturn:
		return v.Unwrap().Inspect()
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin function"
	case KindHash:
		return inspectHash(v.Hash(), Value.Inspect)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// String is the debug rendering: text values are quoted and functions show
// their source.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.Text())
	case KindChar:
		return "'" + v.Text() + "'"
	case KindNewLine:
		return "$"
	case KindReturn:
		return "RETURN " + v.Unwrap().String()
	case KindFunction:
		fn := v.Function()
		params := make([]string, len(fn.Parameters))
		for i, p := range fn.Parameters {
			params[i] = p.Name
		}
		return fmt.Sprintf("FUNCTION(%s) %s", strings.Join(params, ", "), fn.Body.String())
	case KindBuiltin:
		return "builtin " + v.Builtin().Name
	case KindHash:
		return inspectHash(v.Hash(), Value.String)
	default:
		return v.Inspect()
	}
}

func inspectHash(h *Hash, render func(Value) string) string {
	if len(h.Pairs) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(h.Pairs))
	for _, pair := range h.Pairs {
		parts = append(parts, render(pair.Key)+":"+render(pair.Value))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// formatFloat prints the shortest decimal that round-trips, without an
// exponent for ordinary magnitudes.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	if abs := math.Abs(f); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// identical reports whether a and b are the same value. Scalars compare by
// content; every other variant compares by reference.
func identical(a, b Value) bool {
	return a.kind == b.kind && a.data == b.data
}

// Truthy reports how IF treats v: only NULL and FALSE are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}
