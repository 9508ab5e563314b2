package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/mgomes/codelang/lang"
)

type lintWarning struct {
	Pos     lang.Position
	Message string
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("codelang check: script path required")
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	program, errs := lang.Parse(string(input))
	color := isatty.IsTerminal(os.Stdout.Fd())
	issues := 0
	for _, err := range errs {
		var pe *lang.ParseError
		if !errors.As(err, &pe) {
			fmt.Println(err)
			issues++
			continue
		}
		label := "error"
		if pe.Severity == lang.SeverityWarning {
			label = "warning"
		} else {
			issues++
		}
		fmt.Printf("%s:%d:%d: %s: %s\n", scriptPath, pe.Pos.Line, pe.Pos.Column, severityLabel(label, color), pe.Msg)
	}
	if len(lang.FatalErrors(errs)) == 0 {
		for _, warning := range analyzeProgram(program) {
			issues++
			fmt.Printf("%s:%d:%d: %s: %s\n", scriptPath, warning.Pos.Line, warning.Pos.Column, severityLabel("warning", color), warning.Message)
		}
	}

	if issues == 0 {
		fmt.Println("No issues found")
		return nil
	}
	return fmt.Errorf("check found %d issue(s)", issues)
}

func severityLabel(label string, color bool) string {
	if !color {
		return label
	}
	if label == "error" {
		return styleFailure.Render(label)
	}
	return styleWarning.Render(label)
}

// analyzeProgram reports statements that can never run because an earlier
// statement of the same block always returns.
func analyzeProgram(program *lang.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintStatements(program.Statements, &warnings)

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		return warnings[i].Pos.Column < warnings[j].Pos.Column
	})
	return warnings
}

func lintStatements(statements []lang.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if _, ok := stmt.(*lang.Comment); ok {
			continue
		}
		if terminated {
			*warnings = append(*warnings, lintWarning{Pos: stmt.Pos(), Message: "unreachable statement"})
			continue
		}
		if statementTerminates(stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(stmt lang.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *lang.ReturnStatement:
		lintExpression(typed.Value, warnings)
		return true
	case *lang.BlockStatement:
		return lintStatements(typed.Statements, warnings)
	case *lang.WhileLoop:
		lintExpression(typed.Condition, warnings)
		lintStatements(typed.Body.Statements, warnings)
		return false
	case *lang.ExpressionStatement:
		if ifExpr, ok := typed.Expression.(*lang.IfExpression); ok {
			return ifTerminates(ifExpr, warnings)
		}
		lintExpression(typed.Expression, warnings)
		return false
	case *lang.VarDeclaration:
		for _, binding := range typed.Bindings {
			lintExpression(binding.Value, warnings)
		}
		return false
	case *lang.AssignmentStatement:
		lintExpression(typed.Value, warnings)
		return false
	case *lang.DisplayStatement:
		for _, arg := range typed.Args {
			lintExpression(arg, warnings)
		}
		return false
	default:
		return false
	}
}

func ifTerminates(expr *lang.IfExpression, warnings *[]lintWarning) bool {
	lintExpression(expr.Condition, warnings)
	consequentTerminated := lintStatements(expr.Consequence.Statements, warnings)
	if expr.Alternative == nil {
		return false
	}
	alternateTerminated := lintStatements(expr.Alternative.Statements, warnings)
	return consequentTerminated && alternateTerminated
}

// lintExpression descends into function bodies nested in expressions.
func lintExpression(expr lang.Expression, warnings *[]lintWarning) {
	switch typed := expr.(type) {
	case *lang.FunctionLiteral:
		lintStatements(typed.Body.Statements, warnings)
	case *lang.CallExpression:
		lintExpression(typed.Function, warnings)
		for _, arg := range typed.Arguments {
			lintExpression(arg, warnings)
		}
	case *lang.IfExpression:
		ifTerminates(typed, warnings)
	case *lang.InfixExpression:
		lintExpression(typed.Left, warnings)
		lintExpression(typed.Right, warnings)
	case *lang.PrefixExpression:
		lintExpression(typed.Right, warnings)
	}
}
