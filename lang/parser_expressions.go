package lang

import "strconv"

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// parseIdentifier also handles the postfix forms x++ and x--.
func (p *parser) parseIdentifier() Expression {
	ident := &Identifier{Name: p.curToken.Literal, token: p.curToken}
	switch p.peekToken.Type {
	case tokenIncrement:
		p.nextToken()
		return &IncrementExpression{Name: ident, token: ident.token}
	case tokenDecrement:
		p.nextToken()
		return &DecrementExpression{Name: ident, token: ident.token}
	}
	return ident
}

func (p *parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addDiagnostic(p.curToken, ErrCodeSyntax, SeverityError, "invalid integer literal "+p.curToken.Literal)
		return nil
	}
	return &IntegerLiteral{Value: value, token: p.curToken}
}

func (p *parser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addDiagnostic(p.curToken, ErrCodeSyntax, SeverityError, "invalid float literal "+p.curToken.Literal)
		return nil
	}
	return &FloatLiteral{Value: value, token: p.curToken}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, token: p.curToken}
}

func (p *parser) parseCharLiteral() Expression {
	return &CharLiteral{Value: p.curToken.Literal, token: p.curToken}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Value: p.curToken.Type == tokenTrue, token: p.curToken}
}

func (p *parser) parseNewLine() Expression {
	return &NewLine{token: p.curToken}
}

// parseEscapeLiteral reads [c], taking the literal text of whatever single
// token sits between the brackets.
func (p *parser) parseEscapeLiteral() Expression {
	tok := p.curToken
	p.nextToken()
	if p.curToken.Type == tokenEOF {
		p.errorExpected(p.curToken, "escaped character")
		return nil
	}
	value := p.curToken.Literal
	if !p.expectPeek(tokenRBracket) {
		return nil
	}
	return &EscapeLiteral{Value: value, token: tok}
}

func (p *parser) parsePrefixExpression() Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &PrefixExpression{Operator: tok.Literal, Right: right, token: tok}
}

// parsePrefixStep handles ++x and --x.
func (p *parser) parsePrefixStep() Expression {
	tok := p.curToken
	if !p.expectName() {
		return nil
	}
	ident := &Identifier{Name: p.curToken.Literal, token: p.curToken}
	if tok.Type == tokenIncrement {
		return &IncrementExpression{Name: ident, Prefix: true, token: tok}
	}
	return &DecrementExpression{Name: ident, Prefix: true, token: tok}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &InfixExpression{Left: left, Operator: tok.Literal, Right: right, token: tok}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parseIfExpression() Expression {
	expr := &IfExpression{token: p.curToken}
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	expr.Condition = p.parseExpression(precLowest)
	if expr.Condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	expr.Consequence = p.parseBlock(tokenIf)
	if expr.Consequence == nil {
		return nil
	}

	if p.peekToken.Type == tokenElse {
		p.nextToken()
		expr.Alternative = p.parseBlock(tokenIf)
		if expr.Alternative == nil {
			return nil
		}
	}
	return expr
}

func (p *parser) parseFunctionLiteral() Expression {
	fn := &FunctionLiteral{token: p.curToken}
	if !p.expectPeek(tokenLParen) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}
	fn.Parameters = params

	fn.Body = p.parseBlock("")
	if fn.Body == nil {
		return nil
	}
	return fn
}

func (p *parser) parseFunctionParameters() ([]*Identifier, bool) {
	params := []*Identifier{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return params, true
	}

	if !p.expectName() {
		return nil, false
	}
	params = append(params, &Identifier{Name: p.curToken.Literal, token: p.curToken})

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		if !p.expectName() {
			return nil, false
		}
		params = append(params, &Identifier{Name: p.curToken.Literal, token: p.curToken})
	}

	if !p.expectPeek(tokenRParen) {
		return nil, false
	}
	return params, true
}

func (p *parser) parseCallExpression(function Expression) Expression {
	expr := &CallExpression{Function: function, token: p.curToken}
	args, ok := p.parseExpressionList(tokenRParen)
	if !ok {
		return nil
	}
	expr.Arguments = args
	return expr
}

func (p *parser) parseExpressionList(end TokenType) ([]Expression, bool) {
	list := []Expression{}
	if p.peekToken.Type == end {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		expr := p.parseExpression(precLowest)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

// parseIndexExpression handles x[i], x[:j], x[i:], x[i:j] and x[:].
func (p *parser) parseIndexExpression(left Expression) Expression {
	expr := &IndexExpression{Left: left, token: p.curToken}

	if p.peekToken.Type != tokenColon {
		if p.peekToken.Type == tokenRBracket {
			p.errorExpected(p.peekToken, "index expression")
			return nil
		}
		p.nextToken()
		expr.Index = p.parseExpression(precLowest)
		if expr.Index == nil {
			return nil
		}
	}

	if p.peekToken.Type == tokenColon {
		p.nextToken()
		expr.HasColon = true
		if p.peekToken.Type != tokenRBracket {
			p.nextToken()
			expr.End = p.parseExpression(precLowest)
			if expr.End == nil {
				return nil
			}
		}
	}

	if !p.expectPeek(tokenRBracket) {
		return nil
	}
	return expr
}
