package stdlib

import (
	"math"

	"github.com/mgomes/codelang/lang"
)

// maxExactFloat is the largest magnitude below which every integer is
// representable as a float64.
const maxExactFloat = 1 << 53

func (r *Registry) registerMath() {
	r.register("math_abs", builtinMathAbs)
	r.register("math_ceil", roundingBuiltin("math_ceil", math.Ceil))
	r.register("math_floor", roundingBuiltin("math_floor", math.Floor))
	r.register("math_round", roundingBuiltin("math_round", roundHalfUp))
	r.register("math_trunc", roundingBuiltin("math_trunc", math.Trunc))
	r.register("math_sqrt", floatBuiltin("math_sqrt", math.Sqrt))
	r.register("math_log", floatBuiltin("math_log", math.Log))
	r.register("math_sin", floatBuiltin("math_sin", math.Sin))
	r.register("math_cos", floatBuiltin("math_cos", math.Cos))
	r.register("math_tan", floatBuiltin("math_tan", math.Tan))
	r.register("math_pow", builtinMathPow)
	r.register("math_random", r.builtinMathRandom)
}

func builtinMathAbs(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 1 {
		return wrongArgs(len(args), 1)
	}
	switch arg := args[0]; arg.Kind() {
	case lang.KindInt:
		if n := arg.Int(); n < 0 {
			return lang.NewInt(-n)
		}
		return arg
	case lang.KindFloat:
		return lang.NewFloat(math.Abs(arg.Float()))
	default:
		return lang.NewError("argument 1 to `math_abs` must be INTEGER or FLOAT, got %s", arg.Kind())
	}
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

// roundingBuiltin yields an INTEGER whenever the rounded value fits one.
func roundingBuiltin(name string, round func(float64) float64) lang.BuiltinFunc {
	return func(env *lang.Env, args ...lang.Value) lang.Value {
		if len(args) != 1 {
			return wrongArgs(len(args), 1)
		}
		if args[0].Kind() == lang.KindInt {
			return args[0]
		}
		f, failed := numberArg(name, args, 0)
		if failed.IsError() {
			return failed
		}
		rounded := round(f)
		if math.IsNaN(rounded) || math.Abs(rounded) >= math.MaxInt64 {
			return lang.NewFloat(rounded)
		}
		return lang.NewInt(int64(rounded))
	}
}

func floatBuiltin(name string, fn func(float64) float64) lang.BuiltinFunc {
	return func(env *lang.Env, args ...lang.Value) lang.Value {
		if len(args) != 1 {
			return wrongArgs(len(args), 1)
		}
		f, failed := numberArg(name, args, 0)
		if failed.IsError() {
			return failed
		}
		return lang.NewFloat(fn(f))
	}
}

// builtinMathPow stays in integers for non-negative integer exponents while
// the result is exact.
func builtinMathPow(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 2 {
		return wrongArgs(len(args), 2)
	}
	base, failed := numberArg("math_pow", args, 0)
	if failed.IsError() {
		return failed
	}
	exp, failed := numberArg("math_pow", args, 1)
	if failed.IsError() {
		return failed
	}
	result := math.Pow(base, exp)
	integral := args[0].Kind() == lang.KindInt && args[1].Kind() == lang.KindInt && exp >= 0
	if integral && math.Abs(result) < maxExactFloat {
		return lang.NewInt(int64(result))
	}
	return lang.NewFloat(result)
}

func (r *Registry) builtinMathRandom(env *lang.Env, args ...lang.Value) lang.Value {
	if len(args) != 0 {
		return wrongArgs(len(args), 0)
	}
	return lang.NewFloat(r.rand.Float64())
}
