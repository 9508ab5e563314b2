// Package lang implements the Codelang interpreter: a small teaching language
// with BASIC-style keywords and a Pascal-style program frame. Programs look
// like
//
//	BEGIN CODE
//	  INT total = 0, i = 1
//	  WHILE (i <= 10) BEGIN WHILE
//	    total = total + i
//	    i++
//	  END WHILE
//	  DISPLAY: "total: " & total
//	END CODE
//
// The supported constructs are:
//   - Typed declarations with INT, FLOAT, BOOL and CHAR, several per line.
//   - Integer, float, string, character and TRUE/FALSE literals.
//   - Arithmetic (+, -, *, /, %), comparison (<, >, <=, >=, ==, <>), AND/OR
//     (also && and ||), NOT/!, unary minus and ~ bitwise complement.
//   - IF/ELSE and WHILE with BEGIN ... END bodies.
//   - FUNCTION(params) { ... } closures, calls and RETURN.
//   - String indexing and slicing with x[i], x[i:j], x[:j] and x[i:].
//   - DISPLAY for output, SCAN for comma separated input, $ for a newline and
//     [c] to escape a character that would otherwise be syntax.
//
// Comments begin with # and run to the end of the line. Parse problems are
// collected as diagnostics; runtime failures are Error values that unwind the
// program and surface from Engine.Run as a *RuntimeError.
package lang
