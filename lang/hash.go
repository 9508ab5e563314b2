package lang

// HashKey identifies a hashable value inside a Hash.
type HashKey struct {
	Kind  ValueKind
	Value int64
}

// HashKey computes the key for v. Booleans, integers, strings, characters,
// comments and newlines are hashable; anything else reports false.
func (v Value) HashKey() (HashKey, bool) {
	switch v.kind {
	case KindBool:
		if v.Bool() {
			return HashKey{Kind: v.kind, Value: 1}, true
		}
		return HashKey{Kind: v.kind, Value: 0}, true
	case KindInt:
		return HashKey{Kind: v.kind, Value: v.Int()}, true
	case KindString, KindChar, KindComment, KindNewLine:
		return HashKey{Kind: v.kind, Value: int64(stringHash(v.Text()))}, true
	default:
		return HashKey{}, false
	}
}

// stringHash is the 31-multiplier rolling hash over UTF-16 code units,
// wrapped to 32 bits.
func stringHash(s string) int32 {
	var h int32
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := surrogates(r)
			h = 31*h + int32(hi)
			h = 31*h + int32(lo)
			continue
		}
		h = 31*h + int32(r)
	}
	return h
}

func surrogates(r rune) (rune, rune) {
	r -= 0x10000
	return 0xD800 + (r>>10)&0x3FF, 0xDC00 + r&0x3FF
}

// Get returns the value stored under key, or Null when the key is absent or
// not hashable.
func (h *Hash) Get(key Value) Value {
	hk, ok := key.HashKey()
	if !ok {
		return Null
	}
	if pair, ok := h.Pairs[hk]; ok {
		return pair.Value
	}
	return Null
}
