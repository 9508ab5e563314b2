package lang

import (
	"errors"
	"fmt"
	"strings"
)

// Severity distinguishes diagnostics that block evaluation from advisory ones.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// ErrorCode classifies a parse diagnostic.
type ErrorCode string

const (
	ErrCodeSyntax       ErrorCode = "syntax"
	ErrCodeLex          ErrorCode = "lex"
	ErrCodeReserved     ErrorCode = "reserved-word"
	ErrCodeOutsideBlock ErrorCode = "outside-code-block"
)

// ParseError is a single diagnostic produced while parsing. Malformed
// literals reported by the scanner arrive here with code ErrCodeLex and unwrap
// to the underlying *LexError.
type ParseError struct {
	Pos      Position
	Code     ErrorCode
	Severity Severity
	Msg      string
	// AtEOF is set when the diagnostic was caused by running out of input,
	// which interactive callers treat as a request for more lines.
	AtEOF bool

	err    error
	source string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	label := "parse error"
	if e.Severity == SeverityWarning {
		label = "warning"
	}
	fmt.Fprintf(&b, "%s at %d:%d: %s", label, e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// FatalErrors drops warnings and returns the diagnostics that should stop
// evaluation.
func FatalErrors(errs []error) []error {
	var out []error
	for _, err := range errs {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Severity == SeverityWarning {
			continue
		}
		out = append(out, err)
	}
	return out
}

// IsIncomplete reports whether every fatal diagnostic was caused by reaching
// the end of input, meaning more source could complete the program.
func IsIncomplete(errs []error) bool {
	fatal := FatalErrors(errs)
	if len(fatal) == 0 {
		return false
	}
	for _, err := range fatal {
		var pe *ParseError
		if !errors.As(err, &pe) || !pe.AtEOF {
			return false
		}
	}
	return true
}

// CombineErrors joins diagnostics into a single error separated by blank lines.
func CombineErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.New(strings.Join(msgs, "\n\n"))
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addDiagnostic(tok, ErrCodeSyntax, SeverityError, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok.Type)))
}

func (p *parser) errorUnexpected(tok Token) {
	if tok.Type == tokenIllegal && p.lexErrorAt[tok.Pos.Offset] {
		return
	}
	p.addDiagnostic(tok, ErrCodeSyntax, SeverityError, fmt.Sprintf("unexpected token %s", tokenLabel(tok.Type)))
}

func (p *parser) errorReserved(tok Token) {
	p.addDiagnostic(tok, ErrCodeReserved, SeverityError, fmt.Sprintf("%s is a reserved keyword and cannot be used as a name", tok.Literal))
}

func (p *parser) addDiagnostic(tok Token, code ErrorCode, severity Severity, msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:      tok.Pos,
		Code:     code,
		Severity: severity,
		Msg:      msg,
		AtEOF:    tok.Type == tokenEOF,
		source:   p.l.input,
	})
}

func (p *parser) addLexError(err *LexError) {
	if p.lexErrorAt == nil {
		p.lexErrorAt = make(map[int]bool)
	}
	p.lexErrorAt[err.Pos.Offset] = true
	p.errors = append(p.errors, &ParseError{
		Pos:      err.Pos,
		Code:     ErrCodeLex,
		Severity: SeverityError,
		Msg:      err.Msg,
		AtEOF:    err.atEOF,
		err:      err,
		source:   p.l.input,
	})
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenComment:
		return "comment"
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	case tokenCharacter:
		return "character"
	default:
		return fmt.Sprintf("%q", string(tt))
	}
}
