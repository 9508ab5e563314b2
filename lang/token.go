package lang

import "fmt"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"
	tokenComment TokenType = "COMMENT"

	tokenIdent     TokenType = "IDENT"
	tokenInt       TokenType = "INTEGER"
	tokenFloat     TokenType = "FLOATINGPOINT"
	tokenString    TokenType = "STRING"
	tokenCharacter TokenType = "CHARACTER"
	tokenTrue      TokenType = "TRUE"
	tokenFalse     TokenType = "FALSE"

	tokenAssign    TokenType = "="
	tokenPlus      TokenType = "+"
	tokenIncrement TokenType = "++"
	tokenMinus     TokenType = "-"
	tokenDecrement TokenType = "--"
	tokenBang      TokenType = "!"
	tokenAsterisk  TokenType = "*"
	tokenSlash     TokenType = "/"
	tokenPercent   TokenType = "%"
	tokenTilde     TokenType = "~"
	tokenLT        TokenType = "<"
	tokenGT        TokenType = ">"
	tokenLTE       TokenType = "<="
	tokenGTE       TokenType = ">="
	tokenEQ        TokenType = "=="
	tokenNotEQ     TokenType = "<>"
	tokenAnd       TokenType = "AND"
	tokenOr        TokenType = "OR"
	tokenNot       TokenType = "NOT"
	tokenConcat    TokenType = "&"
	tokenNewline   TokenType = "$"

	tokenComma     TokenType = ","
	tokenSemicolon TokenType = ";"
	tokenColon     TokenType = ":"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"
	tokenHash      TokenType = "#"

	tokenFunction TokenType = "FUNCTION"
	tokenIf       TokenType = "IF"
	tokenElse     TokenType = "ELSE"
	tokenWhile    TokenType = "WHILE"
	tokenReturn   TokenType = "RETURN"
	tokenBegin    TokenType = "BEGIN"
	tokenEnd      TokenType = "END"
	tokenCode     TokenType = "CODE"
	tokenDisplay  TokenType = "DISPLAY"
	tokenScan     TokenType = "SCAN"
	tokenIntKw    TokenType = "INT"
	tokenFloatKw  TokenType = "FLOAT"
	tokenBoolKw   TokenType = "BOOL"
	tokenCharKw   TokenType = "CHAR"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a location in the source text. Offset is a byte offset;
// Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

var keywords = map[string]TokenType{
	"FUNCTION": tokenFunction,
	"IF":       tokenIf,
	"ELSE":     tokenElse,
	"WHILE":    tokenWhile,
	"RETURN":   tokenReturn,
	"BEGIN":    tokenBegin,
	"END":      tokenEnd,
	"CODE":     tokenCode,
	"DISPLAY":  tokenDisplay,
	"SCAN":     tokenScan,
	"INT":      tokenIntKw,
	"FLOAT":    tokenFloatKw,
	"BOOL":     tokenBoolKw,
	"CHAR":     tokenCharKw,
	"AND":      tokenAnd,
	"OR":       tokenOr,
	"NOT":      tokenNot,
	"TRUE":     tokenTrue,
	"FALSE":    tokenFalse,
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}

// Keywords returns the reserved words of the language in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
