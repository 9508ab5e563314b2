package lang

import "math"

func evalPrefix(op string, right Value) Value {
	switch op {
	case "!", "NOT":
		return evalBang(right)
	case "-":
		switch right.Kind() {
		case KindInt:
			return NewInt(-right.Int())
		case KindFloat:
			return NewFloat(-right.Float())
		default:
			return NewError("unknown operator: -%s", right.Kind())
		}
	case "~":
		if right.Kind() != KindInt {
			return NewError("unknown operator: ~%s", right.Kind())
		}
		return NewInt(^right.Int())
	default:
		return NewError("unknown operator: %s%s", op, right.Kind())
	}
}

// evalBang negates booleans and maps NULL to TRUE. Every other value is
// considered set, so its negation is FALSE.
func evalBang(right Value) Value {
	switch right.Kind() {
	case KindNull:
		return True
	case KindBool:
		return NewBool(!right.Bool())
	default:
		return False
	}
}

// evalInfix applies a binary operator. Numeric pairs promote to FLOAT when
// either side is FLOAT; == and <> fall back to identity for non-scalars. AND
// needs two booleans and yields FALSE otherwise. OR is TRUE when either side
// is boolean TRUE.
func evalInfix(op string, left, right Value) Value {
	lk, rk := left.Kind(), right.Kind()
	switch {
	case lk == KindInt && rk == KindInt:
		return evalIntegerInfix(op, left.Int(), right.Int())
	case isNumeric(lk) && isNumeric(rk):
		return evalFloatInfix(op, left, right)
	case lk == KindString && rk == KindString:
		return evalStringInfix(op, left, right)
	case op == "==":
		return NewBool(identical(left, right))
	case op == "<>":
		return NewBool(!identical(left, right))
	case op == "AND" || op == "&&":
		if lk == KindBool && rk == KindBool {
			return NewBool(left.Bool() && right.Bool())
		}
		return False
	case op == "OR" || op == "||":
		return NewBool((lk == KindBool && left.Bool()) || (rk == KindBool && right.Bool()))
	case lk != rk:
		return NewError("type mismatch: %s %s %s", lk, op, rk)
	default:
		return NewError("unknown operator: %s %s %s", lk, op, rk)
	}
}

func isNumeric(k ValueKind) bool {
	return k == KindInt || k == KindFloat
}

func evalIntegerInfix(op string, l, r int64) Value {
	switch op {
	case "+":
		return NewInt(l + r)
	case "-":
		return NewInt(l - r)
	case "*":
		return NewInt(l * r)
	case "/":
		if r == 0 {
			return NewError("division by zero")
		}
		return NewInt(l / r)
	case "%":
		if r == 0 {
			return NewError("division by zero")
		}
		return NewInt(l % r)
	case "<":
		return NewBool(l < r)
	case ">":
		return NewBool(l > r)
	case "<=":
		return NewBool(l <= r)
	case ">=":
		return NewBool(l >= r)
	case "==":
		return NewBool(l == r)
	case "<>":
		return NewBool(l != r)
	default:
		return NewError("unknown operator: INTEGER %s INTEGER", op)
	}
}

func evalFloatInfix(op string, left, right Value) Value {
	l, r := left.Float(), right.Float()
	switch op {
	case "+":
		return NewFloat(l + r)
	case "-":
		return NewFloat(l - r)
	case "*":
		return NewFloat(l * r)
	case "/":
		return NewFloat(l / r)
	case "%":
		return NewFloat(math.Mod(l, r))
	case "<":
		return NewBool(l < r)
	case ">":
		return NewBool(l > r)
	case "<=":
		return NewBool(l <= r)
	case ">=":
		return NewBool(l >= r)
	case "==":
		return NewBool(l == r)
	case "<>":
		return NewBool(l != r)
	default:
		return NewError("unknown operator: %s %s %s", left.Kind(), op, right.Kind())
	}
}

func evalStringInfix(op string, left, right Value) Value {
	l, r := left.Text(), right.Text()
	switch op {
	case "+":
		return NewString(l + r)
	case "==":
		return NewBool(l == r)
	case "<":
		return NewBool(l < r)
	case ">":
		return NewBool(l > r)
	default:
		return NewError("unknown operator: STRING %s STRING", op)
	}
}
