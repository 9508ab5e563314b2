package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `BEGIN CODE
INT five = 5, ten = 10;
FLOAT ratio = 2.5
CHAR c = 'x'
BOOL flag = "TRUE"
INT add = FUNCTION(x, y) { x + y; };
DISPLAY: add(five, ten) & $ & [#]
IF (five < ten) BEGIN IF RETURN TRUE END IF ELSE BEGIN IF RETURN FALSE END IF
five == 5; ten <> 9; a <= b; a >= b;
!-/*%~ i++ --j
x AND y && z OR w || v NOT q
s[1:2]
# trailing comment
END CODE`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{tokenBegin, "BEGIN"},
		{tokenCode, "CODE"},
		{tokenIntKw, "INT"},
		{tokenIdent, "five"},
		{tokenAssign, "="},
		{tokenInt, "5"},
		{tokenComma, ","},
		{tokenIdent, "ten"},
		{tokenAssign, "="},
		{tokenInt, "10"},
		{tokenSemicolon, ";"},
		{tokenFloatKw, "FLOAT"},
		{tokenIdent, "ratio"},
		{tokenAssign, "="},
		{tokenFloat, "2.5"},
		{tokenCharKw, "CHAR"},
		{tokenIdent, "c"},
		{tokenAssign, "="},
		{tokenCharacter, "x"},
		{tokenBoolKw, "BOOL"},
		{tokenIdent, "flag"},
		{tokenAssign, "="},
		{tokenTrue, "TRUE"},
		{tokenIntKw, "INT"},
		{tokenIdent, "add"},
		{tokenAssign, "="},
		{tokenFunction, "FUNCTION"},
		{tokenLParen, "("},
		{tokenIdent, "x"},
		{tokenComma, ","},
		{tokenIdent, "y"},
		{tokenRParen, ")"},
		{tokenLBrace, "{"},
		{tokenIdent, "x"},
		{tokenPlus, "+"},
		{tokenIdent, "y"},
		{tokenSemicolon, ";"},
		{tokenRBrace, "}"},
		{tokenSemicolon, ";"},
		{tokenDisplay, "DISPLAY"},
		{tokenColon, ":"},
		{tokenIdent, "add"},
		{tokenLParen, "("},
		{tokenIdent, "five"},
		{tokenComma, ","},
		{tokenIdent, "ten"},
		{tokenRParen, ")"},
		{tokenConcat, "&"},
		{tokenNewline, "$"},
		{tokenConcat, "&"},
		{tokenLBracket, "["},
		{tokenHash, "#"},
		{tokenRBracket, "]"},
		{tokenIf, "IF"},
		{tokenLParen, "("},
		{tokenIdent, "five"},
		{tokenLT, "<"},
		{tokenIdent, "ten"},
		{tokenRParen, ")"},
		{tokenBegin, "BEGIN"},
		{tokenIf, "IF"},
		{tokenReturn, "RETURN"},
		{tokenTrue, "TRUE"},
		{tokenEnd, "END"},
		{tokenIf, "IF"},
		{tokenElse, "ELSE"},
		{tokenBegin, "BEGIN"},
		{tokenIf, "IF"},
		{tokenReturn, "RETURN"},
		{tokenFalse, "FALSE"},
		{tokenEnd, "END"},
		{tokenIf, "IF"},
		{tokenIdent, "five"},
		{tokenEQ, "=="},
		{tokenInt, "5"},
		{tokenSemicolon, ";"},
		{tokenIdent, "ten"},
		{tokenNotEQ, "<>"},
		{tokenInt, "9"},
		{tokenSemicolon, ";"},
		{tokenIdent, "a"},
		{tokenLTE, "<="},
		{tokenIdent, "b"},
		{tokenSemicolon, ";"},
		{tokenIdent, "a"},
		{tokenGTE, ">="},
		{tokenIdent, "b"},
		{tokenSemicolon, ";"},
		{tokenBang, "!"},
		{tokenMinus, "-"},
		{tokenSlash, "/"},
		{tokenAsterisk, "*"},
		{tokenPercent, "%"},
		{tokenTilde, "~"},
		{tokenIdent, "i"},
		{tokenIncrement, "++"},
		{tokenDecrement, "--"},
		{tokenIdent, "j"},
		{tokenIdent, "x"},
		{tokenAnd, "AND"},
		{tokenIdent, "y"},
		{tokenAnd, "&&"},
		{tokenIdent, "z"},
		{tokenOr, "OR"},
		{tokenIdent, "w"},
		{tokenOr, "||"},
		{tokenIdent, "v"},
		{tokenNot, "NOT"},
		{tokenIdent, "q"},
		{tokenIdent, "s"},
		{tokenLBracket, "["},
		{tokenInt, "1"},
		{tokenColon, ":"},
		{tokenInt, "2"},
		{tokenRBracket, "]"},
		{tokenComment, "trailing comment"},
		{tokenEnd, "END"},
		{tokenCode, "CODE"},
		{tokenEOF, ""},
	}

	l := newLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
	if errs := l.takeErrors(); len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, errs := Tokenize("INT a = 1\n  a++")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 4, Line: 1, Column: 5},
		{Offset: 6, Line: 1, Column: 7},
		{Offset: 8, Line: 1, Column: 9},
		{Offset: 12, Line: 2, Column: 3},
		{Offset: 13, Line: 2, Column: 4},
	}
	for i, pos := range want {
		if tokens[i].Pos != pos {
			t.Fatalf("token %d (%q): expected %+v, got %+v", i, tokens[i].Literal, pos, tokens[i].Pos)
		}
	}
	if last := tokens[len(tokens)-1]; last.Type != tokenEOF {
		t.Fatalf("expected trailing EOF, got %q", last.Type)
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := newLexer("x")
	l.NextToken()
	for range 3 {
		if tok := l.NextToken(); tok.Type != tokenEOF {
			t.Fatalf("expected EOF, got %q", tok.Type)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input   string
		types   []TokenType
		literal []string
	}{
		{"3.14", []TokenType{tokenFloat}, []string{"3.14"}},
		{"5.", []TokenType{tokenInt, tokenIllegal}, []string{"5", "."}},
		{".5", []TokenType{tokenIllegal, tokenInt}, []string{".", "5"}},
		{"1.2.3", []TokenType{tokenFloat, tokenIllegal, tokenInt}, []string{"1.2", ".", "3"}},
		{"42abc", []TokenType{tokenInt, tokenIdent}, []string{"42", "abc"}},
	}

	for _, tt := range tests {
		tokens, _ := Tokenize(tt.input)
		if len(tokens) != len(tt.types)+1 {
			t.Fatalf("%q: expected %d tokens, got %d", tt.input, len(tt.types)+1, len(tokens))
		}
		for i := range tt.types {
			if tokens[i].Type != tt.types[i] || tokens[i].Literal != tt.literal[i] {
				t.Fatalf("%q token %d: expected %s %q, got %s %q", tt.input, i, tt.types[i], tt.literal[i], tokens[i].Type, tokens[i].Literal)
			}
		}
	}
}

func TestLexerStringBooleans(t *testing.T) {
	tokens, _ := Tokenize(`"TRUE" "FALSE" "true" "hello world"`)
	want := []struct {
		tt  TokenType
		lit string
	}{
		{tokenTrue, "TRUE"},
		{tokenFalse, "FALSE"},
		{tokenString, "true"},
		{tokenString, "hello world"},
	}
	for i, w := range want {
		if tokens[i].Type != w.tt || tokens[i].Literal != w.lit {
			t.Fatalf("token %d: expected %s %q, got %s %q", i, w.tt, w.lit, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestLexerMalformedLiterals(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		atEOF bool
	}{
		{`''`, "empty character literal", false},
		{`'ab'`, "character literal is too long", false},
		{`'a`, "unclosed character literal", true},
		{`"abc`, "unterminated string literal", true},
	}

	for _, tt := range tests {
		tokens, errs := Tokenize(tt.input)
		if len(errs) != 1 {
			t.Fatalf("%q: expected one error, got %v", tt.input, errs)
		}
		var lexErr *LexError
		if !errors.As(errs[0], &lexErr) {
			t.Fatalf("%q: expected *LexError, got %T", tt.input, errs[0])
		}
		if lexErr.Msg != tt.msg || lexErr.atEOF != tt.atEOF {
			t.Fatalf("%q: unexpected error %+v", tt.input, lexErr)
		}
		if tokens[0].Type != tokenIllegal {
			t.Fatalf("%q: expected ILLEGAL token, got %s", tt.input, tokens[0].Type)
		}
		if !strings.Contains(lexErr.Error(), "syntax error at 1:1") {
			t.Fatalf("%q: unexpected message %q", tt.input, lexErr.Error())
		}
	}
}

func TestLexerIllegalCharacters(t *testing.T) {
	tokens, _ := Tokenize("a @ | b")
	if tokens[1].Type != tokenIllegal || tokens[1].Literal != "@" {
		t.Fatalf("expected ILLEGAL @, got %s %q", tokens[1].Type, tokens[1].Literal)
	}
	if tokens[2].Type != tokenIllegal || tokens[2].Literal != "|" {
		t.Fatalf("expected ILLEGAL |, got %s %q", tokens[2].Type, tokens[2].Literal)
	}
	if tokens[3].Type != tokenIdent {
		t.Fatalf("expected scanning to continue, got %s", tokens[3].Type)
	}
}
