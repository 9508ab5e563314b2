package lang

const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precPrefix
	precCall
)

var precedences = map[TokenType]int{
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precEquality,
	tokenNotEQ:    precEquality,
	tokenLT:       precRelational,
	tokenLTE:      precRelational,
	tokenGT:       precRelational,
	tokenGTE:      precRelational,
	tokenPlus:     precAdditive,
	tokenMinus:    precAdditive,
	tokenSlash:    precMultiplicative,
	tokenAsterisk: precMultiplicative,
	tokenPercent:  precMultiplicative,
	tokenLParen:   precCall,
	tokenLBracket: precCall,
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return precLowest
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return precLowest
}
