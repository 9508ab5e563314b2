package lang

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token
	// second holds the token after peekToken once something has asked for it.
	second *Token

	errors     []error
	lexErrorAt map[int]bool

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// Parse parses source into a Program. The returned Program is never nil; the
// error slice carries every diagnostic including warnings, so callers that
// only care about blocking problems should filter with FatalErrors.
func Parse(source string) (*Program, []error) {
	return newParser(source).ParseProgram()
}

func newParser(input string) *parser {
	p := &parser{l: newLexer(input)}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenInt, p.parseIntegerLiteral)
	p.registerPrefix(tokenFloat, p.parseFloatLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenCharacter, p.parseCharLiteral)
	p.registerPrefix(tokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(tokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(tokenBang, p.parsePrefixExpression)
	p.registerPrefix(tokenNot, p.parsePrefixExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenTilde, p.parsePrefixExpression)
	p.registerPrefix(tokenIncrement, p.parsePrefixStep)
	p.registerPrefix(tokenDecrement, p.parsePrefixStep)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenIf, p.parseIfExpression)
	p.registerPrefix(tokenFunction, p.parseFunctionLiteral)
	p.registerPrefix(tokenLBracket, p.parseEscapeLiteral)
	p.registerPrefix(tokenNewline, p.parseNewLine)

	for _, tt := range []TokenType{
		tokenPlus, tokenMinus, tokenSlash, tokenAsterisk, tokenPercent,
		tokenEQ, tokenNotEQ, tokenLT, tokenLTE, tokenGT, tokenGTE,
		tokenAnd, tokenOr,
	} {
		p.infixFns[tt] = p.parseInfixExpression
	}
	p.infixFns[tokenLParen] = p.parseCallExpression
	p.infixFns[tokenLBracket] = p.parseIndexExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	if p.second != nil {
		p.peekToken = *p.second
		p.second = nil
		return
	}
	p.peekToken = p.readToken()
}

// peekSecond returns the token after peekToken without consuming anything.
func (p *parser) peekSecond() Token {
	if p.second == nil {
		tok := p.readToken()
		p.second = &tok
	}
	return *p.second
}

func (p *parser) readToken() Token {
	tok := p.l.NextToken()
	for _, err := range p.l.takeErrors() {
		p.addLexError(err)
	}
	return tok
}

// ParseProgram parses statements until EOF. BEGIN CODE and END CODE delimit
// the program body; statements found outside them are still parsed, and one
// warning is recorded per stray region.
func (p *parser) ParseProgram() (*Program, []error) {
	program := &Program{}
	inCode := false
	warned := false

	for p.curToken.Type != tokenEOF {
		if p.curToken.Type == tokenBegin && p.peekToken.Type == tokenCode {
			inCode = true
			warned = false
			p.nextToken()
			p.nextToken()
			continue
		}
		if p.curToken.Type == tokenEnd && p.peekToken.Type == tokenCode {
			inCode = false
			warned = false
			p.nextToken()
			p.nextToken()
			continue
		}
		if !inCode && !warned && p.curToken.Type != tokenComment {
			p.addDiagnostic(p.curToken, ErrCodeOutsideBlock, SeverityWarning, "code outside of BEGIN CODE and END CODE block")
			warned = true
		}

		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program, p.errors
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tokenLabel(tt))
	return false
}

// expectName advances onto an identifier, reporting TRUE and FALSE as
// reserved rather than as a generic syntax error.
func (p *parser) expectName() bool {
	switch p.peekToken.Type {
	case tokenIdent:
		p.nextToken()
		return true
	case tokenTrue, tokenFalse:
		p.errorReserved(p.peekToken)
		return false
	default:
		p.errorExpected(p.peekToken, "identifier")
		return false
	}
}

func (p *parser) skipSemicolon() {
	if p.peekToken.Type == tokenSemicolon {
		p.nextToken()
	}
}
