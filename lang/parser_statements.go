package lang

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenIntKw, tokenFloatKw, tokenBoolKw, tokenCharKw:
		return p.parseVarDeclaration()
	case tokenDisplay:
		return p.parseDisplayStatement()
	case tokenScan:
		return p.parseScanStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenWhile:
		return p.parseWhileLoop()
	case tokenComment:
		return &Comment{Text: p.curToken.Literal, token: p.curToken}
	case tokenSemicolon:
		return nil
	case tokenIdent:
		if p.peekToken.Type == tokenAssign {
			return p.parseAssignmentStatement()
		}
		return p.parseExpressionStatement()
	case tokenTrue, tokenFalse:
		if p.peekToken.Type == tokenAssign {
			p.errorReserved(p.curToken)
			p.nextToken()
			p.nextToken()
			p.parseExpression(precLowest)
			p.skipSemicolon()
			return nil
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarDeclaration() Statement {
	decl := &VarDeclaration{token: p.curToken}

	for {
		if !p.expectName() {
			return nil
		}
		name := &Identifier{Name: p.curToken.Literal, token: p.curToken}

		var value Expression
		if p.peekToken.Type == tokenAssign {
			p.nextToken()
			p.nextToken()
			value = p.parseExpression(precLowest)
			if value == nil {
				return nil
			}
		} else {
			value = zeroLiteral(decl.token.Type, name.Pos())
		}
		decl.Bindings = append(decl.Bindings, Binding{Name: name, Value: value})

		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
	}

	p.skipSemicolon()
	return decl
}

// zeroLiteral builds the initializer used when a declaration omits one.
func zeroLiteral(kind TokenType, pos Position) Expression {
	switch kind {
	case tokenFloatKw:
		return &FloatLiteral{Value: 0, token: Token{Type: tokenFloat, Literal: "0.0", Pos: pos}}
	case tokenBoolKw:
		return &BooleanLiteral{Value: false, token: Token{Type: tokenFalse, Literal: "FALSE", Pos: pos}}
	case tokenCharKw:
		return &CharLiteral{Value: "", token: Token{Type: tokenCharacter, Literal: "", Pos: pos}}
	default:
		return &IntegerLiteral{Value: 0, token: Token{Type: tokenInt, Literal: "0", Pos: pos}}
	}
}

func (p *parser) parseDisplayStatement() Statement {
	stmt := &DisplayStatement{token: p.curToken}
	if !p.expectPeek(tokenColon) {
		return nil
	}

	p.nextToken()
	arg := p.parseExpression(precLowest)
	if arg == nil {
		return nil
	}
	stmt.Args = append(stmt.Args, arg)

	for p.peekToken.Type == tokenConcat {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(precLowest)
		if arg == nil {
			return nil
		}
		stmt.Args = append(stmt.Args, arg)
	}

	p.skipSemicolon()
	return stmt
}

func (p *parser) parseScanStatement() Statement {
	stmt := &ScanStatement{token: p.curToken}
	if p.peekToken.Type == tokenColon {
		p.nextToken()
	}

	if !p.expectName() {
		return nil
	}
	stmt.Names = append(stmt.Names, &Identifier{Name: p.curToken.Literal, token: p.curToken})

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		if !p.expectName() {
			return nil
		}
		stmt.Names = append(stmt.Names, &Identifier{Name: p.curToken.Literal, token: p.curToken})
	}

	p.skipSemicolon()
	return stmt
}

func (p *parser) parseReturnStatement() Statement {
	stmt := &ReturnStatement{token: p.curToken}

	switch p.peekToken.Type {
	case tokenSemicolon, tokenRBrace, tokenEnd, tokenEOF:
		p.skipSemicolon()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(precLowest)
	if stmt.Value == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

func (p *parser) parseAssignmentStatement() Statement {
	stmt := &AssignmentStatement{
		Name:  &Identifier{Name: p.curToken.Literal, token: p.curToken},
		token: p.curToken,
	}
	p.nextToken()
	p.nextToken()

	stmt.Value = p.parseExpression(precLowest)
	if stmt.Value == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

func (p *parser) parseWhileLoop() Statement {
	stmt := &WhileLoop{token: p.curToken}
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(precLowest)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}

	stmt.Body = p.parseBlock(tokenWhile)
	if stmt.Body == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

func (p *parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{token: p.curToken}
	stmt.Expression = p.parseExpression(precLowest)
	if stmt.Expression == nil {
		return nil
	}
	p.skipSemicolon()
	return stmt
}

// parseBlock parses a body introduced by the next token. Two forms are
// accepted: BEGIN [label] ... END [label], where label is the IF or WHILE
// keyword that owns the block, and a brace-delimited { ... }. Reaching EOF
// first records a diagnostic and returns what was parsed so far.
func (p *parser) parseBlock(label TokenType) *BlockStatement {
	if p.peekToken.Type == tokenLBrace {
		p.nextToken()
		return p.parseBraceBlock()
	}
	if !p.expectPeek(tokenBegin) {
		return nil
	}

	block := &BlockStatement{token: p.curToken}
	p.skipLabel(label)
	p.nextToken()

	for p.curToken.Type != tokenEnd {
		if p.curToken.Type == tokenEOF {
			p.errorExpected(p.curToken, tokenLabel(tokenEnd))
			return block
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	p.skipLabel(label)
	return block
}

func (p *parser) parseBraceBlock() *BlockStatement {
	block := &BlockStatement{token: p.curToken}
	p.nextToken()

	for p.curToken.Type != tokenRBrace {
		if p.curToken.Type == tokenEOF {
			p.errorExpected(p.curToken, tokenLabel(tokenRBrace))
			return block
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

// skipLabel consumes an IF or WHILE label after BEGIN or END. The keyword is
// only a label when it is not the start of a new statement, which always
// opens with a parenthesized condition.
func (p *parser) skipLabel(label TokenType) {
	if p.peekToken.Type != tokenIf && p.peekToken.Type != tokenWhile {
		return
	}
	if p.peekSecond().Type == tokenLParen {
		return
	}
	if p.peekToken.Type != label && label != "" {
		p.errorExpected(p.peekToken, tokenLabel(label)+" label")
	}
	p.nextToken()
}
