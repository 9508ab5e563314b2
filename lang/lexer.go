package lang

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LexError reports a malformed literal found while scanning.
type LexError struct {
	Pos    Position
	Msg    string
	atEOF  bool
	source string
}

func (e *LexError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune

	errs []*LexError
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	for i := 0; ; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w := utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
}

// NextToken scans and returns the next token. Once the input is exhausted it
// keeps returning EOF tokens.
func (l *lexer) NextToken() Token {
	l.skipWhitespace()

	tok := l.makeToken(tokenIllegal, "")

	switch l.ch {
	case 0:
		tok.Type = tokenEOF
		return tok
	case '=':
		tok = l.pairOr('=', tokenEQ, tokenAssign)
	case '+':
		tok = l.pairOr('+', tokenIncrement, tokenPlus)
	case '-':
		tok = l.pairOr('-', tokenDecrement, tokenMinus)
	case '>':
		tok = l.pairOr('=', tokenGTE, tokenGT)
	case '<':
		switch l.peekRune() {
		case '=':
			tok = l.pairOr('=', tokenLTE, tokenLT)
		case '>':
			tok = l.pairOr('>', tokenNotEQ, tokenLT)
		default:
			tok.Type, tok.Literal = tokenLT, "<"
			l.readRune()
		}
	case '&':
		tok = l.pairOr('&', tokenAnd, tokenConcat)
	case '|':
		if l.peekRune() == '|' {
			tok = l.pairOr('|', tokenOr, tokenIllegal)
		} else {
			tok.Literal = "|"
			l.readRune()
		}
	case '!', '*', '/', '%', '~', '$', ',', ';', ':', '(', ')', '{', '}', '[', ']':
		tok.Type = TokenType(string(l.ch))
		tok.Literal = string(l.ch)
		l.readRune()
	case '#':
		if l.peekRune() == ']' {
			tok.Type, tok.Literal = tokenHash, "#"
			l.readRune()
		} else {
			tok.Type = tokenComment
			tok.Literal = l.readComment()
		}
	case '"':
		tok = l.readString(tok)
	case '\'':
		tok = l.readCharacter(tok)
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		case unicode.IsDigit(l.ch):
			literal, isFloat := l.readNumber()
			tok.Literal = literal
			if isFloat {
				tok.Type = tokenFloat
			} else {
				tok.Type = tokenInt
			}
		default:
			tok.Literal = string(l.ch)
			l.readRune()
		}
	}

	return tok
}

// pairOr emits double when the next rune is second, otherwise single. The
// token position is taken before either rune is consumed.
func (l *lexer) pairOr(second rune, double, single TokenType) Token {
	tok := l.makeToken(single, string(l.ch))
	if l.peekRune() == second {
		first := l.ch
		l.readRune()
		tok.Type = double
		tok.Literal = string(first) + string(l.ch)
	}
	l.readRune()
	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Offset: l.currentOffset(), Line: l.line, Column: l.column}}
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readRune()
	}
}

func (l *lexer) readComment() string {
	l.readRune()
	start := l.currentOffset()
	for l.ch != 0 && l.ch != '\n' && l.ch != '\r' {
		l.readRune()
	}
	return strings.TrimSpace(l.input[start:l.currentOffset()])
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumber() (string, bool) {
	var sb strings.Builder
	hasDot := false

	sb.WriteRune(l.ch)
	for {
		r := l.peekRune()
		switch {
		case r == '.' && !hasDot && unicode.IsDigit(l.peekRuneN(1)):
			hasDot = true
			l.readRune()
			sb.WriteRune('.')
		case unicode.IsDigit(r):
			l.readRune()
			sb.WriteRune(r)
		default:
			l.readRune()
			return sb.String(), hasDot
		}
	}
}

// readString scans a double-quoted literal. The exact texts "TRUE" and
// "FALSE" become boolean tokens.
func (l *lexer) readString(tok Token) Token {
	var sb strings.Builder
	for {
		l.readRune()
		switch l.ch {
		case 0:
			l.addError(tok.Pos, "unterminated string literal", true)
			tok.Literal = "\"" + sb.String()
			return tok
		case '"':
			l.readRune()
			literal := sb.String()
			switch literal {
			case "TRUE":
				tok.Type = tokenTrue
			case "FALSE":
				tok.Type = tokenFalse
			default:
				tok.Type = tokenString
			}
			tok.Literal = literal
			return tok
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func (l *lexer) readCharacter(tok Token) Token {
	var runes []rune
	for {
		l.readRune()
		if l.ch == 0 {
			l.addError(tok.Pos, "unclosed character literal", true)
			tok.Literal = "'" + string(runes)
			return tok
		}
		if l.ch == '\'' {
			l.readRune()
			break
		}
		runes = append(runes, l.ch)
	}

	switch {
	case len(runes) == 0:
		l.addError(tok.Pos, "empty character literal", false)
		tok.Literal = "''"
	case len(runes) > 1:
		l.addError(tok.Pos, "character literal is too long", false)
		tok.Literal = "'" + string(runes) + "'"
	default:
		tok.Type = tokenCharacter
		tok.Literal = string(runes)
	}
	return tok
}

func (l *lexer) addError(pos Position, msg string, atEOF bool) {
	l.errs = append(l.errs, &LexError{Pos: pos, Msg: msg, atEOF: atEOF, source: l.input})
}

// takeErrors returns and clears the errors recorded since the last call.
func (l *lexer) takeErrors() []*LexError {
	errs := l.errs
	l.errs = nil
	return errs
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Tokenize scans source to completion and returns every token including the
// trailing EOF, along with any malformed-literal errors.
func Tokenize(source string) ([]Token, []error) {
	l := newLexer(source)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			break
		}
	}
	var errs []error
	for _, err := range l.takeErrors() {
		errs = append(errs, err)
	}
	return tokens, errs
}
