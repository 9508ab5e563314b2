package lang

import "log/slog"

func (exec *Execution) evalCall(call *CallExpression, env *Env) Value {
	callee := exec.eval(call.Function, env)
	if callee.IsError() {
		return callee
	}
	args, failed := exec.evalExpressions(call.Arguments, env)
	if failed.IsError() {
		return failed
	}
	return exec.applyFunction(callee, args, call, env)
}

// evalExpressions evaluates exprs left to right and stops at the first Error.
func (exec *Execution) evalExpressions(exprs []Expression, env *Env) ([]Value, Value) {
	values := make([]Value, 0, len(exprs))
	for _, expr := range exprs {
		val := exec.eval(expr, env)
		if val.IsError() {
			return nil, val
		}
		values = append(values, val)
	}
	return values, Null
}

// applyFunction calls a closure or builtin. Closures run in a fresh scope
// enclosing their defining environment; parameters without a matching
// argument are bound to NULL and surplus arguments are ignored.
func (exec *Execution) applyFunction(callee Value, args []Value, call *CallExpression, env *Env) Value {
	if err := exec.ctx.Err(); err != nil {
		return newErrorAt(call.Pos(), "evaluation cancelled: %v", err)
	}

	name := call.Function.String()
	if exec.logger.Enabled(exec.ctx, slog.LevelDebug) {
		exec.logger.Debug("call", "function", name, "args", len(args), "depth", exec.depth)
	}

	switch callee.Kind() {
	case KindFunction:
		fn := callee.Function()
		scope := NewEnclosedEnv(fn.Env)
		for i, param := range fn.Parameters {
			if i < len(args) {
				scope.Set(param.Name, args[i])
			} else {
				scope.Set(param.Name, Null)
			}
		}

		// Frames stay pushed on error so the trace can be rendered.
		exec.pushFrame(name, call.Pos())
		result := exec.eval(fn.Body, scope)
		if !result.IsError() {
			exec.popFrame()
		}
		return result.Unwrap()
	case KindBuiltin:
		exec.pushFrame(name, call.Pos())
		result := callee.Builtin().Fn(env, args...)
		if !result.IsError() {
			exec.popFrame()
		}
		return exec.locate(result, call.Pos())
	default:
		return newErrorAt(call.Pos(), "not a function: %s", callee.Kind())
	}
}
