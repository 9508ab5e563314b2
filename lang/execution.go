package lang

import (
	"context"
	"log/slog"
)

// Execution carries the per-run state of one evaluation: cancellation, the
// nesting depth and the call stack used for runtime error frames.
type Execution struct {
	engine    *Engine
	ctx       context.Context
	source    string
	depth     int
	maxDepth  int
	loopLimit int
	callStack []callFrame
	logger    *slog.Logger
}

type callFrame struct {
	Function string
	Pos      Position
}

func (e *Engine) newExecution(ctx context.Context, source string) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Execution{
		engine:    e,
		ctx:       ctx,
		source:    source,
		maxDepth:  e.config.MaxDepth,
		loopLimit: e.config.LoopLimit,
		logger:    e.logger,
	}
}

func (exec *Execution) eval(node Node, env *Env) Value {
	if limit := exec.enter(node); limit.IsError() {
		return limit
	}
	defer exec.leave()

	switch n := node.(type) {
	case *Program:
		return exec.evalProgram(n, env)
	case *BlockStatement:
		return exec.evalBlock(n, env)
	case *ExpressionStatement:
		return exec.eval(n.Expression, env)
	case *VarDeclaration:
		return exec.evalDeclaration(n, env)
	case *AssignmentStatement:
		val := exec.eval(n.Value, env)
		if val.IsError() {
			return val
		}
		return env.Set(n.Name.Name, val)
	case *ReturnStatement:
		if n.Value == nil {
			return NewReturn(Null)
		}
		val := exec.eval(n.Value, env)
		if val.IsError() {
			return val
		}
		return NewReturn(val)
	case *WhileLoop:
		return exec.evalWhile(n, env)
	case *DisplayStatement:
		return exec.evalDisplay(n, env)
	case *ScanStatement:
		return exec.evalScan(n, env)
	case *Comment:
		return NewComment(n.Text)
	case *NewLine:
		return NewNewLine()

	case *IntegerLiteral:
		return NewInt(n.Value)
	case *FloatLiteral:
		return NewFloat(n.Value)
	case *StringLiteral:
		return NewString(n.Value)
	case *CharLiteral:
		return NewChar(n.Value)
	case *EscapeLiteral:
		return NewChar(n.Value)
	case *BooleanLiteral:
		return NewBool(n.Value)
	case *Identifier:
		return exec.evalIdentifier(n, env)
	case *PrefixExpression:
		right := exec.eval(n.Right, env)
		if right.IsError() {
			return right
		}
		return exec.locate(evalPrefix(n.Operator, right), n.Pos())
	case *InfixExpression:
		left := exec.eval(n.Left, env)
		if left.IsError() {
			return left
		}
		right := exec.eval(n.Right, env)
		if right.IsError() {
			return right
		}
		return exec.locate(evalInfix(n.Operator, left, right), n.Pos())
	case *IncrementExpression:
		return exec.evalStep(n.Name, n.Prefix, 1, "++", env)
	case *DecrementExpression:
		return exec.evalStep(n.Name, n.Prefix, -1, "--", env)
	case *IfExpression:
		return exec.evalIf(n, env)
	case *FunctionLiteral:
		return NewFunction(n.Parameters, n.Body, env)
	case *CallExpression:
		return exec.evalCall(n, env)
	case *IndexExpression:
		return exec.evalIndex(n, env)
	}
	return Null
}

// evalProgram runs the top-level statements and unwraps a RETURN.
func (exec *Execution) evalProgram(program *Program, env *Env) Value {
	result := Null
	for _, stmt := range program.Statements {
		val := exec.eval(stmt, env)
		switch val.Kind() {
		case KindReturn:
			return val.Unwrap()
		case KindError:
			return val
		case KindComment:
			continue
		}
		result = val
	}
	return result
}

// evalBlock runs statements in env itself and passes RETURN and Error values
// up unchanged so the enclosing call or program can handle them.
func (exec *Execution) evalBlock(block *BlockStatement, env *Env) Value {
	result := Null
	for _, stmt := range block.Statements {
		val := exec.eval(stmt, env)
		switch val.Kind() {
		case KindReturn, KindError:
			return val
		case KindComment:
			continue
		}
		result = val
	}
	return result
}

// evalDeclaration binds every name and yields the last bound value.
func (exec *Execution) evalDeclaration(decl *VarDeclaration, env *Env) Value {
	result := Null
	for _, binding := range decl.Bindings {
		val := exec.eval(binding.Value, env)
		if val.IsError() {
			return val
		}
		result = env.Set(binding.Name.Name, val)
	}
	return result
}

func (exec *Execution) evalIdentifier(ident *Identifier, env *Env) Value {
	if val, ok := env.Get(ident.Name); ok {
		return val
	}
	if builtin, ok := exec.engine.LookupBuiltin(ident.Name); ok {
		return builtin
	}
	return newErrorAt(ident.Pos(), "identifier not found: %s at %s", ident.Name, ident.Pos())
}

func (exec *Execution) evalIf(ie *IfExpression, env *Env) Value {
	cond := exec.eval(ie.Condition, env)
	if cond.IsError() {
		return cond
	}
	if cond.Truthy() {
		return exec.eval(ie.Consequence, env)
	}
	if ie.Alternative != nil {
		return exec.eval(ie.Alternative, env)
	}
	return Null
}

// evalWhile evaluates the guard until it is not TRUE and yields the last
// guard value. Each guard evaluation counts toward the loop limit.
func (exec *Execution) evalWhile(loop *WhileLoop, env *Env) Value {
	count := 0
	for {
		if err := exec.ctx.Err(); err != nil {
			return newErrorAt(loop.Pos(), "evaluation cancelled: %v", err)
		}
		count++
		if count > exec.loopLimit {
			return newErrorAt(loop.Pos(), "loop count of %s exeeded", groupDigits(exec.loopLimit))
		}

		cond := exec.eval(loop.Condition, env)
		if cond.IsError() {
			return cond
		}
		if !identical(cond, True) {
			return cond
		}

		body := exec.eval(loop.Body, env)
		if body.Kind() == KindReturn || body.IsError() {
			return body
		}
	}
}

// evalStep implements ++ and --. The variable keeps its numeric kind; the
// prefix form yields the new value and the postfix form the old one.
func (exec *Execution) evalStep(name *Identifier, prefix bool, delta int64, op string, env *Env) Value {
	current, ok := env.Get(name.Name)
	if !ok {
		return newErrorAt(name.Pos(), "identifier not found: %s at %s", name.Name, name.Pos())
	}

	var next Value
	switch current.Kind() {
	case KindInt:
		next = NewInt(current.Int() + delta)
	case KindFloat:
		next = NewFloat(current.Float() + float64(delta))
	default:
		return newErrorAt(name.Pos(), "unknown operator: %s%s", op, current.Kind())
	}

	env.Set(name.Name, next)
	if prefix {
		return next
	}
	return current
}

// locate stamps pos on an error value that does not carry a position yet.
func (exec *Execution) locate(v Value, pos Position) Value {
	if v.IsError() && v.errorPos() == (Position{}) {
		return newErrorAt(pos, "%s", v.ErrorMessage())
	}
	return v
}
