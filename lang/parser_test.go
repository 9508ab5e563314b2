package lang

import (
	"errors"
	"strings"
	"testing"
)

func parseProgram(t *testing.T, input string) *Program {
	t.Helper()
	program, errs := Parse(input)
	if fatal := FatalErrors(errs); len(fatal) > 0 {
		t.Fatalf("parse %q: %v", input, CombineErrors(fatal))
	}
	return program
}

func singleExpression(t *testing.T, input string) Expression {
	t.Helper()
	program := parseProgram(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d: %s", len(program.Statements), program.String())
	}
	stmt, ok := program.Statements[0].(*ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ExpressionStatement, got %T", program.Statements[0])
	}
	return stmt.Expression
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 <> 3 > 4", "((5 < 4) <> (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"TRUE", "TRUE"},
		{"FALSE", "FALSE"},
		{"3 > 5 == FALSE", "((3 > 5) == FALSE)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(TRUE == TRUE)", "(!(TRUE == TRUE))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
		{"a AND b OR c", "((a AND b) OR c)"},
		{"a OR b AND c", "(a OR (b AND c))"},
		{"a && b || c", "((a && b) || c)"},
		{"NOT a AND b", "((NOT a) AND b)"},
		{"a == b AND c < d", "((a == b) AND (c < d))"},
		{"x % 2 == 0", "((x % 2) == 0)"},
		{"a <= b >= c", "((a <= b) >= c)"},
		{"~a + b", "((~a) + b)"},
		{"a * s[1]", "(a * (s[1]))"},
		{"i++ + 1", "((i++) + 1)"},
		{"++i * 2", "((++i) * 2)"},
		{"x-- - --y", "((x--) - (--y))"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestVarDeclarations(t *testing.T) {
	tests := []struct {
		input    string
		kind     string
		names    []string
		expected string
	}{
		{"INT x = 5;", "INT", []string{"x"}, "INT x = 5;"},
		{"INT a, b = 2", "INT", []string{"a", "b"}, "INT a = 0, b = 2;"},
		{"FLOAT f", "FLOAT", []string{"f"}, "FLOAT f = 0.0;"},
		{"BOOL ok, done = TRUE", "BOOL", []string{"ok", "done"}, "BOOL ok = FALSE, done = TRUE;"},
		{"CHAR c = 'z'", "CHAR", []string{"c"}, "CHAR c = z;"},
		{"INT y = x + 1", "INT", []string{"y"}, "INT y = (x + 1);"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if len(program.Statements) != 1 {
			t.Fatalf("%q: expected 1 statement, got %d", tt.input, len(program.Statements))
		}
		decl, ok := program.Statements[0].(*VarDeclaration)
		if !ok {
			t.Fatalf("%q: expected *VarDeclaration, got %T", tt.input, program.Statements[0])
		}
		if decl.Kind() != tt.kind {
			t.Fatalf("%q: expected kind %s, got %s", tt.input, tt.kind, decl.Kind())
		}
		if len(decl.Bindings) != len(tt.names) {
			t.Fatalf("%q: expected %d bindings, got %d", tt.input, len(tt.names), len(decl.Bindings))
		}
		for i, name := range tt.names {
			if decl.Bindings[i].Name.Name != name {
				t.Fatalf("%q: binding %d expected %s, got %s", tt.input, i, name, decl.Bindings[i].Name.Name)
			}
		}
		if decl.String() != tt.expected {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.expected, decl.String())
		}
	}
}

func TestReturnStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		hasValue bool
	}{
		{"RETURN 5;", "RETURN 5;", true},
		{"RETURN x + y", "RETURN (x + y);", true},
		{"RETURN;", "RETURN ;", false},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		stmt, ok := program.Statements[0].(*ReturnStatement)
		if !ok {
			t.Fatalf("%q: expected *ReturnStatement, got %T", tt.input, program.Statements[0])
		}
		if (stmt.Value != nil) != tt.hasValue {
			t.Fatalf("%q: unexpected value %v", tt.input, stmt.Value)
		}
		if stmt.String() != tt.expected {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.expected, stmt.String())
		}
	}
}

func TestLiteralExpressions(t *testing.T) {
	if lit, ok := singleExpression(t, "5;").(*IntegerLiteral); !ok || lit.Value != 5 {
		t.Fatalf("expected integer literal 5, got %#v", lit)
	}
	if lit, ok := singleExpression(t, "2.75").(*FloatLiteral); !ok || lit.Value != 2.75 {
		t.Fatalf("expected float literal 2.75, got %#v", lit)
	}
	if lit, ok := singleExpression(t, `"hello world"`).(*StringLiteral); !ok || lit.Value != "hello world" {
		t.Fatalf("expected string literal, got %#v", lit)
	}
	if lit, ok := singleExpression(t, "'q'").(*CharLiteral); !ok || lit.Value != "q" {
		t.Fatalf("expected char literal, got %#v", lit)
	}
	if lit, ok := singleExpression(t, `"FALSE"`).(*BooleanLiteral); !ok || lit.Value {
		t.Fatalf("expected boolean literal FALSE, got %#v", lit)
	}
	if lit, ok := singleExpression(t, "[&]").(*EscapeLiteral); !ok || lit.Value != "&" || lit.String() != "[&]" {
		t.Fatalf("expected escape literal, got %#v", lit)
	}
	if ident, ok := singleExpression(t, "foobar").(*Identifier); !ok || ident.Name != "foobar" {
		t.Fatalf("expected identifier, got %#v", ident)
	}
}

func TestIfExpression(t *testing.T) {
	expr := singleExpression(t, "IF (x < y) BEGIN IF x END IF")
	ie, ok := expr.(*IfExpression)
	if !ok {
		t.Fatalf("expected *IfExpression, got %T", expr)
	}
	if ie.Condition.String() != "(x < y)" {
		t.Fatalf("unexpected condition %q", ie.Condition.String())
	}
	if len(ie.Consequence.Statements) != 1 || ie.Consequence.String() != "x" {
		t.Fatalf("unexpected consequence %q", ie.Consequence.String())
	}
	if ie.Alternative != nil {
		t.Fatalf("expected no alternative, got %q", ie.Alternative.String())
	}
}

func TestIfElseExpression(t *testing.T) {
	expr := singleExpression(t, "IF (x < y) BEGIN IF x END IF ELSE BEGIN IF y END IF")
	ie, ok := expr.(*IfExpression)
	if !ok {
		t.Fatalf("expected *IfExpression, got %T", expr)
	}
	if ie.Alternative == nil || ie.Alternative.String() != "y" {
		t.Fatalf("unexpected alternative %v", ie.Alternative)
	}
	if got := ie.String(); got != "(x < y) xELSE y" {
		t.Fatalf("unexpected string form %q", got)
	}
}

func TestIfFollowedByIf(t *testing.T) {
	program := parseProgram(t, "IF (a) BEGIN x END IF (b) BEGIN y END")
	if len(program.Statements) != 2 {
		t.Fatalf("expected two IF statements, got %d: %q", len(program.Statements), program.String())
	}
}

func TestFunctionLiteral(t *testing.T) {
	expr := singleExpression(t, "FUNCTION(x, y) { x + y; }")
	fn, ok := expr.(*FunctionLiteral)
	if !ok {
		t.Fatalf("expected *FunctionLiteral, got %T", expr)
	}
	if len(fn.Parameters) != 2 || fn.Parameters[0].Name != "x" || fn.Parameters[1].Name != "y" {
		t.Fatalf("unexpected parameters %v", fn.Parameters)
	}
	if fn.Body.String() != "(x + y)" {
		t.Fatalf("unexpected body %q", fn.Body.String())
	}
	if fn.String() != "FUNCTION(x, y) (x + y)" {
		t.Fatalf("unexpected string form %q", fn.String())
	}
}

func TestFunctionParameters(t *testing.T) {
	tests := []struct {
		input  string
		params []string
	}{
		{"FUNCTION() {};", nil},
		{"FUNCTION(x) {};", []string{"x"}},
		{"FUNCTION(x, y, z) {};", []string{"x", "y", "z"}},
		{"FUNCTION(x) BEGIN x END", []string{"x"}},
	}

	for _, tt := range tests {
		fn, ok := singleExpression(t, tt.input).(*FunctionLiteral)
		if !ok {
			t.Fatalf("%q: expected function literal", tt.input)
		}
		if len(fn.Parameters) != len(tt.params) {
			t.Fatalf("%q: expected %d params, got %d", tt.input, len(tt.params), len(fn.Parameters))
		}
		for i, name := range tt.params {
			if fn.Parameters[i].Name != name {
				t.Fatalf("%q: param %d expected %s, got %s", tt.input, i, name, fn.Parameters[i].Name)
			}
		}
	}
}

func TestCallExpression(t *testing.T) {
	call, ok := singleExpression(t, "add(1, 2 * 3, 4 + 5);").(*CallExpression)
	if !ok {
		t.Fatalf("expected *CallExpression")
	}
	if call.Function.String() != "add" {
		t.Fatalf("unexpected callee %q", call.Function.String())
	}
	want := []string{"1", "(2 * 3)", "(4 + 5)"}
	if len(call.Arguments) != len(want) {
		t.Fatalf("expected %d arguments, got %d", len(want), len(call.Arguments))
	}
	for i, w := range want {
		if call.Arguments[i].String() != w {
			t.Fatalf("argument %d: expected %q, got %q", i, w, call.Arguments[i].String())
		}
	}

	immediate := singleExpression(t, "FUNCTION(x) { x; }(5)")
	if _, ok := immediate.(*CallExpression); !ok {
		t.Fatalf("expected immediate call, got %T", immediate)
	}
}

func TestIndexExpressions(t *testing.T) {
	tests := []struct {
		input    string
		hasIndex bool
		hasColon bool
		hasEnd   bool
		expected string
	}{
		{"s[1]", true, false, false, "(s[1])"},
		{"s[1:2]", true, true, true, "(s[1:2])"},
		{"s[:2]", false, true, true, "(s[:2])"},
		{"s[1:]", true, true, false, "(s[1:])"},
		{"s[:]", false, true, false, "(s[:])"},
		{"s[i + 1:n - 1]", true, true, true, "(s[(i + 1):(n - 1)])"},
	}

	for _, tt := range tests {
		ie, ok := singleExpression(t, tt.input).(*IndexExpression)
		if !ok {
			t.Fatalf("%q: expected *IndexExpression", tt.input)
		}
		if (ie.Index != nil) != tt.hasIndex || ie.HasColon != tt.hasColon || (ie.End != nil) != tt.hasEnd {
			t.Fatalf("%q: unexpected shape index=%v colon=%v end=%v", tt.input, ie.Index, ie.HasColon, ie.End)
		}
		if ie.String() != tt.expected {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.expected, ie.String())
		}
	}
}

func TestStepExpressions(t *testing.T) {
	tests := []struct {
		input    string
		prefix   bool
		expected string
	}{
		{"i++", false, "(i++)"},
		{"++i", true, "(++i)"},
	}
	for _, tt := range tests {
		inc, ok := singleExpression(t, tt.input).(*IncrementExpression)
		if !ok {
			t.Fatalf("%q: expected *IncrementExpression", tt.input)
		}
		if inc.Prefix != tt.prefix || inc.Name.Name != "i" || inc.String() != tt.expected {
			t.Fatalf("%q: unexpected node %q prefix=%v", tt.input, inc.String(), inc.Prefix)
		}
	}

	dec, ok := singleExpression(t, "--n").(*DecrementExpression)
	if !ok || !dec.Prefix || dec.String() != "(--n)" {
		t.Fatalf("unexpected decrement %#v", dec)
	}
}

func TestDisplayStatement(t *testing.T) {
	program := parseProgram(t, `DISPLAY: a & "b" & $ & [#]`)
	stmt, ok := program.Statements[0].(*DisplayStatement)
	if !ok {
		t.Fatalf("expected *DisplayStatement, got %T", program.Statements[0])
	}
	if len(stmt.Args) != 4 {
		t.Fatalf("expected 4 arguments, got %d", len(stmt.Args))
	}
	if _, ok := stmt.Args[2].(*NewLine); !ok {
		t.Fatalf("expected newline marker, got %T", stmt.Args[2])
	}
	if stmt.String() != "DISPLAY: a, b, $, [#]" {
		t.Fatalf("unexpected string form %q", stmt.String())
	}
}

func TestScanStatement(t *testing.T) {
	for _, input := range []string{"SCAN: a, b, c", "SCAN a, b, c;"} {
		program := parseProgram(t, input)
		stmt, ok := program.Statements[0].(*ScanStatement)
		if !ok {
			t.Fatalf("%q: expected *ScanStatement, got %T", input, program.Statements[0])
		}
		if stmt.String() != "SCAN a, b, c;" {
			t.Fatalf("%q: unexpected string form %q", input, stmt.String())
		}
	}
}

func TestAssignmentAndWhile(t *testing.T) {
	program := parseProgram(t, "x = 5 + 1\nWHILE (i < 3) BEGIN WHILE i++ END WHILE")
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	assign, ok := program.Statements[0].(*AssignmentStatement)
	if !ok || assign.String() != "x = (5 + 1);" {
		t.Fatalf("unexpected assignment %v", program.Statements[0])
	}
	loop, ok := program.Statements[1].(*WhileLoop)
	if !ok {
		t.Fatalf("expected *WhileLoop, got %T", program.Statements[1])
	}
	if loop.String() != "WHILE((i < 3))" {
		t.Fatalf("unexpected loop string %q", loop.String())
	}
	if len(loop.Body.Statements) != 1 || loop.Body.String() != "(i++)" {
		t.Fatalf("unexpected loop body %q", loop.Body.String())
	}
}

func TestCommentsAreStatements(t *testing.T) {
	program := parseProgram(t, "# first\nx # second")
	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}
	comment, ok := program.Statements[0].(*Comment)
	if !ok || comment.Text != "first" {
		t.Fatalf("unexpected first statement %#v", program.Statements[0])
	}
}

func TestCodeBlockWarnings(t *testing.T) {
	_, errs := Parse("BEGIN CODE\nINT x = 1\nEND CODE")
	if len(errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs)
	}

	_, errs = Parse("# header\nx\ny\nBEGIN CODE\nz\nEND CODE\nw")
	if len(errs) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(errs), errs)
	}
	for _, err := range errs {
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Severity != SeverityWarning || pe.Code != ErrCodeOutsideBlock {
			t.Fatalf("expected outside-block warning, got %v", err)
		}
	}
	if len(FatalErrors(errs)) != 0 {
		t.Fatalf("warnings must not be fatal")
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input string
		code  ErrorCode
		msg   string
	}{
		{"INT = 5", ErrCodeSyntax, "expected identifier, got \"=\""},
		{"INT TRUE = 1", ErrCodeReserved, "TRUE is a reserved keyword"},
		{"FALSE = 1", ErrCodeReserved, "FALSE is a reserved keyword"},
		{"s[1;", ErrCodeSyntax, "expected \"]\""},
		{"s[]", ErrCodeSyntax, "expected index expression"},
		{"DISPLAY a", ErrCodeSyntax, "expected \":\""},
		{"x = )", ErrCodeSyntax, "unexpected token \")\""},
		{"'ab'", ErrCodeLex, "character literal is too long"},
	}

	for _, tt := range tests {
		_, errs := Parse("BEGIN CODE\n" + tt.input + "\nEND CODE")
		fatal := FatalErrors(errs)
		if len(fatal) == 0 {
			t.Fatalf("%q: expected an error", tt.input)
		}
		var pe *ParseError
		if !errors.As(fatal[0], &pe) {
			t.Fatalf("%q: expected *ParseError, got %T", tt.input, fatal[0])
		}
		if pe.Code != tt.code || !strings.Contains(pe.Msg, tt.msg) {
			t.Fatalf("%q: unexpected diagnostic %s %q", tt.input, pe.Code, pe.Msg)
		}
		if pe.Pos.Line != 2 {
			t.Fatalf("%q: expected diagnostic on line 2, got %d", tt.input, pe.Pos.Line)
		}
	}
}

func TestLexErrorReportedOnce(t *testing.T) {
	_, errs := Parse("BEGIN CODE\n'ab'\nEND CODE")
	fatal := FatalErrors(errs)
	if len(fatal) != 1 {
		t.Fatalf("expected one diagnostic, got %v", fatal)
	}
	var lexErr *LexError
	if !errors.As(fatal[0], &lexErr) {
		t.Fatalf("expected diagnostic to unwrap to *LexError")
	}
}

func TestIncompleteInput(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"IF (x) BEGIN IF x", true},
		{"FUNCTION(x) { x", true},
		{"WHILE (i < 3) BEGIN", true},
		{`DISPLAY: "abc`, true},
		{"add(1,", true},
		{"x = )", false},
		{"x", false},
	}

	for _, tt := range tests {
		_, errs := Parse(tt.input)
		if got := IsIncomplete(errs); got != tt.incomplete {
			t.Fatalf("%q: expected incomplete=%v, got %v (%v)", tt.input, tt.incomplete, got, errs)
		}
	}
}

func TestParseErrorFormatting(t *testing.T) {
	_, errs := Parse("BEGIN CODE\nINT = 5\nEND CODE")
	msg := FatalErrors(errs)[0].Error()
	if !strings.HasPrefix(msg, "parse error at 2:5: expected identifier") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "2 | INT = 5") || !strings.Contains(msg, "^") {
		t.Fatalf("expected code frame in %q", msg)
	}
}
