package stdlib

import (
	"github.com/mgomes/codelang/lang"
	"golang.org/x/text/language"
)

func wrongArgs(got int, want int) lang.Value {
	return lang.NewError("wrong number of arguments. got=%d, want=%d", got, want)
}

func wrongArgsRange(got int, lo, hi int) lang.Value {
	return lang.NewError("wrong number of arguments. got=%d, want=%d..%d", got, lo, hi)
}

// checkArity returns an Error value unless len(args) lies in [lo, hi].
func checkArity(args []lang.Value, lo, hi int) lang.Value {
	if len(args) >= lo && len(args) <= hi {
		return lang.Null
	}
	if lo == hi {
		return wrongArgs(len(args), lo)
	}
	return wrongArgsRange(len(args), lo, hi)
}

func textArg(name string, args []lang.Value, i int) (string, lang.Value) {
	switch v := args[i]; v.Kind() {
	case lang.KindString, lang.KindChar:
		return v.Text(), lang.Null
	default:
		return "", lang.NewError("argument %d to `%s` must be STRING, got %s", i+1, name, v.Kind())
	}
}

func intArg(name string, args []lang.Value, i int) (int64, lang.Value) {
	if v := args[i]; v.Kind() == lang.KindInt {
		return v.Int(), lang.Null
	}
	return 0, lang.NewError("argument %d to `%s` must be INTEGER, got %s", i+1, name, args[i].Kind())
}

func numberArg(name string, args []lang.Value, i int) (float64, lang.Value) {
	switch v := args[i]; v.Kind() {
	case lang.KindInt, lang.KindFloat:
		return v.Float(), lang.Null
	default:
		return 0, lang.NewError("argument %d to `%s` must be INTEGER or FLOAT, got %s", i+1, name, v.Kind())
	}
}

// localeArg reads an optional BCP 47 tag at position i.
func (r *Registry) localeArg(name string, args []lang.Value, i int) (language.Tag, lang.Value) {
	if len(args) <= i {
		return r.locale, lang.Null
	}
	raw, failed := textArg(name, args, i)
	if failed.IsError() {
		return language.Und, failed
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, lang.NewError("invalid locale %q", raw)
	}
	return tag, lang.Null
}
