package stdlib

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mgomes/codelang/lang"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func (r *Registry) registerStrings() {
	r.register("string_concat", builtinStringConcat)
	r.register("string_contains", textPredicate("string_contains", strings.Contains))
	r.register("string_includes", textPredicate("string_includes", strings.Contains))
	r.register("string_starts_with", textPredicate("string_starts_with", strings.HasPrefix))
	r.register("string_ends_with", textPredicate("string_ends_with", strings.HasSuffix))
	r.register("string_index_of", builtinStringIndexOf)
	r.register("string_len", builtinStringLen)
	r.register("string_lowercase", r.caseMapper("string_lowercase", func(t language.Tag) cases.Caser { return cases.Lower(t) }))
	r.register("string_uppercase", r.caseMapper("string_uppercase", func(t language.Tag) cases.Caser { return cases.Upper(t) }))
	r.register("string_repeat", builtinStringRepeat)
	r.register("string_replace", builtinStringReplace)
	r.register("string_reverse", builtinStringReverse)
	r.register("string_slice", builtinStringSlice)
	r.register("string_substr", builtinStringSubstr)
	r.register("string_substring", builtinStringSubstring)
	r.register("string_trim", builtinStringTrim)
	r.register("string_format", builtinStringFormat)
	r.register("number_format", r.builtinNumberFormat)
}

func builtinStringConcat(env *lang.Env, args ...lang.Value) lang.Value {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(arg.Inspect())
	}
	return lang.NewString(b.String())
}

func textPredicate(name string, pred func(s, sub string) bool) lang.BuiltinFunc {
	return func(env *lang.Env, args ...lang.Value) lang.Value {
		if len(args) != 2 {
			return wrongArgs(len(args), 2)
		}
		s, failed := textArg(name, args, 0)
		if failed.IsError() {
			return failed
		}
		sub, failed := textArg(name, args, 1)
		if failed.IsError() {
			return failed
		}
		return lang.NewBool(pred(s, sub))
	}
}

func builtinStringIndexOf(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 2 {
		return wrongArgs(len(args), 2)
	}
	s, failed := textArg("string_index_of", args, 0)
	if failed.IsError() {
		return failed
	}
	sub, failed := textArg("string_index_of", args, 1)
	if failed.IsError() {
		return failed
	}
	idx := strings.Index(s, sub)
	if idx < 0 {
		return lang.NewInt(-1)
	}
	return lang.NewInt(int64(utf8.RuneCountInString(s[:idx])))
}

func builtinStringLen(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 1 {
		return wrongArgs(len(args), 1)
	}
	s, failed := textArg("string_len", args, 0)
	if failed.IsError() {
		return failed
	}
	return lang.NewInt(int64(utf8.RuneCountInString(s)))
}

// caseMapper builds a fresh Caser per call; Casers carry state.
func (r *Registry) caseMapper(name string, newCaser func(language.Tag) cases.Caser) lang.BuiltinFunc {
	return func(env *lang.Env, args ...lang.Value) lang.Value {
		if len(args) != 1 {
			return wrongArgs(len(args), 1)
		}
		s, failed := textArg(name, args, 0)
		if failed.IsError() {
			return failed
		}
		return lang.NewString(newCaser(r.locale).String(s))
	}
}

func builtinStringRepeat(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 2 {
		return wrongArgs(len(args), 2)
	}
	s, failed := textArg("string_repeat", args, 0)
	if failed.IsError() {
		return failed
	}
	n, failed := intArg("string_repeat", args, 1)
	if failed.IsError() {
		return failed
	}
	if n < 0 {
		return lang.NewError("argument 2 to `string_repeat` must not be negative, got %d", n)
	}
	if len(s) > 0 && n > maxStringBytes/int64(len(s)) {
		return lang.NewError("string_repeat result exceeds limit %d bytes", maxStringBytes)
	}
	return lang.NewString(strings.Repeat(s, int(n)))
}

// builtinStringReplace replaces the first occurrence only.
func builtinStringReplace(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 3 {
		return wrongArgs(len(args), 3)
	}
	var parts [3]string
	for i := range parts {
		text, failed := textArg("string_replace", args, i)
		if failed.IsError() {
			return failed
		}
		parts[i] = text
	}
	return lang.NewString(strings.Replace(parts[0], parts[1], parts[2], 1))
}

func builtinStringReverse(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 1 {
		return wrongArgs(len(args), 1)
	}
	s, failed := textArg("string_reverse", args, 0)
	if failed.IsError() {
		return failed
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return lang.NewString(string(runes))
}

// sliceBounds reads the text and the integer offsets that follow it.
func sliceBounds(name string, args []lang.Value) ([]rune, []int64, lang.Value) {
	if failed := checkArity(args, 2, 3); failed.IsError() {
		return nil, nil, failed
	}
	s, failed := textArg(name, args, 0)
	if failed.IsError() {
		return nil, nil, failed
	}
	offsets := make([]int64, 0, 2)
	for i := 1; i < len(args); i++ {
		n, failed := intArg(name, args, i)
		if failed.IsError() {
			return nil, nil, failed
		}
		offsets = append(offsets, n)
	}
	return []rune(s), offsets, lang.Null
}

// relative resolves an offset that may count from the end.
func relative(i, n int64) int64 {
	if i < 0 {
		return max(n+i, 0)
	}
	return min(i, n)
}

func builtinStringSlice(env *lang.Env, args ...lang.Value) lang.Value {
	runes, offsets, failed := sliceBounds("string_slice", args)
	if failed.IsError() {
		return failed
	}
	n := int64(len(runes))
	start, end := relative(offsets[0], n), n
	if len(offsets) == 2 {
		end = relative(offsets[1], n)
	}
	if start >= end {
		return lang.NewString("")
	}
	return lang.NewString(string(runes[start:end]))
}

// builtinStringSubstr takes a start offset and a length.
func builtinStringSubstr(env *lang.Env, args ...lang.Value) lang.Value {
	runes, offsets, failed := sliceBounds("string_substr", args)
	if failed.IsError() {
		return failed
	}
	n := int64(len(runes))
	start := relative(offsets[0], n)
	length := n - start
	if len(offsets) == 2 {
		length = min(max(offsets[1], 0), n-start)
	}
	if length <= 0 {
		return lang.NewString("")
	}
	return lang.NewString(string(runes[start : start+length]))
}

// builtinStringSubstring clamps negative offsets to zero and swaps reversed
// bounds.
func builtinStringSubstring(env *lang.Env, args ...lang.Value) lang.Value {
	runes, offsets, failed := sliceBounds("string_substring", args)
	if failed.IsError() {
		return failed
	}
	n := int64(len(runes))
	start, end := min(max(offsets[0], 0), n), n
	if len(offsets) == 2 {
		end = min(max(offsets[1], 0), n)
	}
	if start > end {
		start, end = end, start
	}
	return lang.NewString(string(runes[start:end]))
}

func builtinStringTrim(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 1 {
		return wrongArgs(len(args), 1)
	}
	s, failed := textArg("string_trim", args, 0)
	if failed.IsError() {
		return failed
	}
	return lang.NewString(strings.TrimSpace(s))
}

// builtinStringFormat substitutes {0}, {1}, ... with the inspected arguments.
func builtinStringFormat(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) == 0 {
		return wrongArgs(0, 1)
	}
	tpl, failed := textArg("string_format", args, 0)
	if failed.IsError() {
		return failed
	}
	replacements := make([]string, 0, 2*(len(args)-1))
	for i, arg := range args[1:] {
		replacements = append(replacements, "{"+strconv.Itoa(i)+"}", arg.Inspect())
	}
	return lang.NewString(strings.NewReplacer(replacements...).Replace(tpl))
}

func (r *Registry) builtinNumberFormat(env *lang.Env, args ...lang.Value) lang.Value {
	if failed := checkArity(args, 1, 2); failed.IsError() {
		return failed
	}
	value, failed := numberArg("number_format", args, 0)
	if failed.IsError() {
		return failed
	}
	tag, failed := r.localeArg("number_format", args, 1)
	if failed.IsError() {
		return failed
	}
	p := message.NewPrinter(tag)
	return lang.NewString(p.Sprintf("%v", number.Decimal(value)))
}
