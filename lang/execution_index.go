package lang

func (exec *Execution) evalIndex(ie *IndexExpression, env *Env) Value {
	left := exec.eval(ie.Left, env)
	if left.IsError() {
		return left
	}

	var start, end Value
	if ie.Index != nil {
		start = exec.eval(ie.Index, env)
		if start.IsError() {
			return start
		}
	}
	if ie.End != nil {
		end = exec.eval(ie.End, env)
		if end.IsError() {
			return end
		}
	}

	switch left.Kind() {
	case KindString:
		if ie.HasColon {
			return exec.locate(sliceString(left.Text(), ie.Index != nil, start, ie.End != nil, end), ie.Pos())
		}
		return exec.locate(indexString(left.Text(), start), ie.Pos())
	case KindHash:
		if ie.HasColon {
			return newErrorAt(ie.Pos(), "slice not supported on HASH")
		}
		if _, ok := start.HashKey(); !ok {
			return newErrorAt(ie.Pos(), "unusable as hash key: %s", start.Kind())
		}
		return left.Hash().Get(start)
	default:
		return newErrorAt(ie.Pos(), "index operator not supported: %s", left.Kind())
	}
}

// indexString returns the character at a rune offset.
func indexString(s string, idx Value) Value {
	if idx.Kind() != KindInt {
		return NewError("index must be INTEGER, got %s", idx.Kind())
	}
	runes := []rune(s)
	i := idx.Int()
	if i < 0 || i >= int64(len(runes)) {
		return NewError("index out of range: %d", i)
	}
	return NewChar(string(runes[i]))
}

// sliceString returns the runes in [start, end). Missing bounds default to
// the ends of the string and out-of-range bounds are clamped.
func sliceString(s string, hasStart bool, start Value, hasEnd bool, end Value) Value {
	runes := []rune(s)
	lo, hi := int64(0), int64(len(runes))
	if hasStart {
		if start.Kind() != KindInt {
			return NewError("index must be INTEGER, got %s", start.Kind())
		}
		lo = clamp(start.Int(), 0, int64(len(runes)))
	}
	if hasEnd {
		if end.Kind() != KindInt {
			return NewError("index must be INTEGER, got %s", end.Kind())
		}
		hi = clamp(end.Int(), 0, int64(len(runes)))
	}
	if lo >= hi {
		return NewString("")
	}
	return NewString(string(runes[lo:hi]))
}

func clamp(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}
