package stdlib

import (
	"time"

	"github.com/goodsign/monday"
	"github.com/mgomes/codelang/lang"
	"golang.org/x/text/language"
)

const (
	isoLayout = "2006-01-02T15:04:05.000Z"
	utcLayout = "Mon, 02 Jan 2006 15:04:05 GMT"
)

var mondayLocales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_US": monday.LocaleEnUS,
	"en_GB": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_CA": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_BR": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"ru":    monday.LocaleRuRU,
	"pl":    monday.LocalePlPL,
	"sv":    monday.LocaleSvSE,
	"tr":    monday.LocaleTrTR,
	"ja":    monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"ko":    monday.LocaleKoKR,
}

// mondayLocale picks the closest monday locale for tag, preferring an exact
// language and region match.
func mondayLocale(tag language.Tag) monday.Locale {
	base, _ := tag.Base()
	region, _ := tag.Region()
	if loc, ok := mondayLocales[base.String()+"_"+region.String()]; ok {
		return loc
	}
	if loc, ok := mondayLocales[base.String()]; ok {
		return loc
	}
	return monday.LocaleEnUS
}

func localeLayout(loc monday.Locale) string {
	switch loc {
	case monday.LocaleEnUS:
		return "January 2, 2006 15:04:05"
	case monday.LocaleDeDE:
		return "2. January 2006 15:04:05"
	case monday.LocaleJaJP, monday.LocaleZhCN:
		return "2006年1月2日 15:04:05"
	case monday.LocaleKoKR:
		return "2006년 1월 2일 15:04:05"
	default:
		return "2 January 2006 15:04:05"
	}
}

func (r *Registry) registerDates() {
	r.register("date_now", r.builtinDateNow)
	r.register("date_iso", r.timestampFormatter("date_iso", isoLayout))
	r.register("date_utc", r.timestampFormatter("date_utc", utcLayout))
	r.register("date_locale", r.builtinDateLocale)
	r.register("date_locale_now", r.builtinDateLocaleNow)
}

// builtinDateNow returns milliseconds since the Unix epoch.
func (r *Registry) builtinDateNow(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 0 {
		return wrongArgs(len(args), 0)
	}
	return lang.NewInt(r.now().UnixMilli())
}

// timestamp reads an optional millisecond timestamp, defaulting to now.
func (r *Registry) timestamp(name string, args []lang.Value) (time.Time, lang.Value) {
	if len(args) == 0 {
		return r.now(), lang.Null
	}
	ms, failed := intArg(name, args, 0)
	if failed.IsError() {
		return time.Time{}, failed
	}
	return time.UnixMilli(ms), lang.Null
}

func (r *Registry) timestampFormatter(name, layout string) lang.BuiltinFunc {
	return func(env *lang.Env, args ...lang.Value) lang.Value {
		if failed := checkArity(args, 0, 1); failed.IsError() {
			return failed
		}
		t, failed := r.timestamp(name, args)
		if failed.IsError() {
			return failed
		}
		return lang.NewString(t.UTC().Format(layout))
	}
}

func formatLocal(t time.Time, tag language.Tag) lang.Value {
	loc := mondayLocale(tag)
	return lang.NewString(monday.Format(t, localeLayout(loc), loc))
}

func (r *Registry) builtinDateLocale(env *lang.Env, args ...lang.Value) lang.Value {
	if failed := checkArity(args, 1, 2); failed.IsError() {
		return failed
	}
	t, failed := r.timestamp("date_locale", args)
	if failed.IsError() {
		return failed
	}
	tag, failed := r.localeArg("date_locale", args, 1)
	if failed.IsError() {
		return failed
	}
	return formatLocal(t.In(r.location), tag)
}

func (r *Registry) builtinDateLocaleNow(env *lang.Env, args ...lang.Value) lang.Value {
	if failed := checkArity(args, 0, 1); failed.IsError() {
		return failed
	}
	tag, failed := r.localeArg("date_locale_now", args, 0)
	if failed.IsError() {
		return failed
	}
	return formatLocal(r.now().In(r.location), tag)
}
