package lang

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// evalDisplay writes the concatenation of its arguments followed by a
// newline. Floats always show one decimal place.
func (exec *Execution) evalDisplay(stmt *DisplayStatement, env *Env) Value {
	var b strings.Builder
	for _, arg := range stmt.Args {
		val := exec.eval(arg, env)
		if val.IsError() {
			return val
		}
		if val.Kind() == KindFloat {
			b.WriteString(strconv.FormatFloat(val.Float(), 'f', 1, 64))
			continue
		}
		b.WriteString(val.Inspect())
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(env.Stdout(), b.String()); err != nil {
		return newErrorAt(stmt.Pos(), "display failed: %v", err)
	}
	return Null
}

// evalScan reads one line, splits it on commas and assigns each field to the
// matching name, converted to the type of the value the name currently holds.
func (exec *Execution) evalScan(stmt *ScanStatement, env *Env) Value {
	line, err := env.Streams().Stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return newErrorAt(stmt.Pos(), "scan failed: %v", err)
	}
	line = strings.TrimRight(line, "\r\n")

	fields := strings.Split(line, ",")
	if strings.TrimSpace(line) == "" {
		fields = nil
	}
	if len(fields) < len(stmt.Names) {
		fmt.Fprintln(env.Stderr(), "Not enough input values provided.")
		return Null
	}

	for i, name := range stmt.Names {
		field := strings.TrimSpace(fields[i])
		current, _ := env.Get(name.Name)
		val, ok := coerceInput(field, current.Kind())
		if !ok {
			if isScannable(current.Kind()) {
				fmt.Fprintf(env.Stderr(), "Invalid %s value %q for variable '%s'.\n", current.Kind(), field, name.Name)
			} else {
				fmt.Fprintf(env.Stderr(), "Unsupported type for variable '%s'.\n", name.Name)
			}
			continue
		}
		env.Set(name.Name, val)
	}
	return Null
}

func isScannable(kind ValueKind) bool {
	switch kind {
	case KindBool, KindInt, KindFloat, KindString, KindChar:
		return true
	default:
		return false
	}
}

func coerceInput(field string, kind ValueKind) (Value, bool) {
	switch kind {
	case KindBool:
		return NewBool(strings.ToUpper(field) == "TRUE"), true
	case KindInt:
		i, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return NewInt(i), true
	case KindFloat:
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Value{}, false
		}
		return NewFloat(f), true
	case KindString:
		return NewString(field), true
	case KindChar:
		if field == "" {
			return NewChar(""), true
		}
		_, size := utf8.DecodeRuneInString(field)
		return NewChar(field[:size]), true
	default:
		return Value{}, false
	}
}
