package stdlib

import (
	"regexp"
	"unicode/utf8"

	"github.com/mgomes/codelang/lang"
)

func (r *Registry) registerRegex() {
	r.register("regex_test", builtinRegexTest)
	r.register("regex_search", builtinRegexSearch)
	r.register("regex_replace", builtinRegexReplace)
}

// compileArgs validates (text, pattern, ...) and compiles the pattern.
func compileArgs(name string, args []lang.Value, want int) (string, *regexp.Regexp, lang.Value) {
	if len(args) != want {
		return "", nil, wrongArgs(len(args), want)
	}
	text, failed := textArg(name, args, 0)
	if failed.IsError() {
		return "", nil, failed
	}
	pattern, failed := textArg(name, args, 1)
	if failed.IsError() {
		return "", nil, failed
	}
	if len(pattern) > maxRegexPatternSize {
		return "", nil, lang.NewError("%s pattern exceeds limit %d bytes", name, maxRegexPatternSize)
	}
	if len(text) > maxRegexInputBytes {
		return "", nil, lang.NewError("%s text exceeds limit %d bytes", name, maxRegexInputBytes)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", nil, lang.NewError("%s invalid regex: %v", name, err)
	}
	return text, re, lang.Null
}

func builtinRegexTest(env *lang.Env, args ...lang.Value) lang.Value {
	text, re, failed := compileArgs("regex_test", args, 2)
	if failed.IsError() {
		return failed
	}
	return lang.NewBool(re.MatchString(text))
}

// builtinRegexSearch returns the rune offset of the first match, or -1.
func builtinRegexSearch(env *lang.Env, args ...lang.Value) lang.Value {
	text, re, failed := compileArgs("regex_search", args, 2)
	if failed.IsError() {
		return failed
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return lang.NewInt(-1)
	}
	return lang.NewInt(int64(utf8.RuneCountInString(text[:loc[0]])))
}

// builtinRegexReplace replaces every match; $1 style group references expand.
func builtinRegexReplace(env *lang.Env, args ...lang.Value) lang.Value {
	text, re, failed := compileArgs("regex_replace", args, 3)
	if failed.IsError() {
		return failed
	}
	replacement, failed := textArg("regex_replace", args, 2)
	if failed.IsError() {
		return failed
	}
	if len(replacement) > maxRegexInputBytes {
		return lang.NewError("regex_replace replacement exceeds limit %d bytes", maxRegexInputBytes)
	}
	out := re.ReplaceAllString(text, replacement)
	if len(out) > maxRegexInputBytes {
		return lang.NewError("regex_replace output exceeds limit %d bytes", maxRegexInputBytes)
	}
	return lang.NewString(out)
}
