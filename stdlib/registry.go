// Package stdlib provides the builtin functions available to CODE programs.
//
// A Registry is handed to the engine through lang.Config.Builtins:
//
//	engine, err := lang.NewEngine(lang.Config{Builtins: stdlib.New()})
//
// Names that are bound in no scope fall back to the registry, so programs may
// shadow any builtin with an ordinary declaration.
package stdlib

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/mgomes/codelang/lang"
	"golang.org/x/text/language"
)

const (
	maxStringBytes      = 1 << 20
	maxRegexInputBytes  = 1 << 20
	maxRegexPatternSize = 16 << 10
)

// Registry resolves builtin names. It is safe to share between engines as long
// as the random source is not used concurrently.
type Registry struct {
	builtins map[string]lang.Value
	locale   language.Tag
	rand     *rand.Rand
	now      func() time.Time
	location *time.Location
}

// Option customises a Registry.
type Option func(*Registry)

// WithLocale sets the default locale for number_format, date_locale and the
// case-mapping builtins.
func WithLocale(tag language.Tag) Option {
	return func(r *Registry) { r.locale = tag }
}

// WithRand replaces the source used by math_random.
func WithRand(src *rand.Rand) Option {
	return func(r *Registry) { r.rand = src }
}

// WithClock replaces the clock used by the date builtins.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithLocation sets the time zone date_locale renders in.
func WithLocation(loc *time.Location) Option {
	return func(r *Registry) { r.location = loc }
}

// New builds a registry holding the full catalogue.
func New(opts ...Option) *Registry {
	r := &Registry{
		builtins: make(map[string]lang.Value),
		locale:   language.English,
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rand == nil {
		seed := uint64(r.now().UnixNano())
		r.rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	r.registerCore()
	r.registerStrings()
	r.registerMath()
	r.registerDates()
	r.registerRegex()
	return r
}

func (r *Registry) register(name string, fn lang.BuiltinFunc) {
	r.builtins[name] = lang.NewBuiltin(name, fn)
}

// Lookup implements lang.BuiltinRegistry.
func (r *Registry) Lookup(name string) (lang.Value, bool) {
	v, ok := r.builtins[name]
	return v, ok
}

// Names lists every builtin in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locale reports the default locale of the registry.
func (r *Registry) Locale() language.Tag {
	return r.locale
}
