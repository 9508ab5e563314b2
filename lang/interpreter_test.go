package lang

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestNewEngineDefaults(t *testing.T) {
	engine, err := NewEngine(Config{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if engine.config.MaxDepth != defaultMaxDepth || engine.config.LoopLimit != defaultLoopLimit {
		t.Fatalf("unexpected defaults %+v", engine.config)
	}
	if engine.logger == nil || engine.streams.Stdout == nil || engine.streams.Stdin == nil {
		t.Fatalf("expected logger and streams to be set")
	}
}

func TestNewEngineRejectsNegativeLimits(t *testing.T) {
	if _, err := NewEngine(Config{MaxDepth: -1}); err == nil {
		t.Fatalf("expected error for negative max depth")
	}
	if _, err := NewEngine(Config{LoopLimit: -5}); err == nil {
		t.Fatalf("expected error for negative loop limit")
	}
}

func TestRunProgram(t *testing.T) {
	var out bytes.Buffer
	engine := MustNewEngine(Config{Stdout: &out})
	source := `BEGIN CODE
# sum the first ten numbers
INT total = 0, i = 1
WHILE (i <= 10) BEGIN WHILE
  total = total + i
  i++
END WHILE
DISPLAY: "total: " & total
total
END CODE`

	result, err := engine.Run(context.Background(), source, engine.NewEnv())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	expectInt(t, "total", result, 55)
	if out.String() != "total: 55\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunReturnsParseErrors(t *testing.T) {
	engine := MustNewEngine(Config{Stdout: io.Discard})
	_, err := engine.Run(context.Background(), "BEGIN CODE\nINT = 1\nEND CODE", engine.NewEnv())
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestRunLogsWarnings(t *testing.T) {
	var logs bytes.Buffer
	engine := MustNewEngine(Config{
		Stdout: io.Discard,
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	})
	result, err := engine.Run(context.Background(), "1 + 1", engine.NewEnv())
	if err != nil {
		t.Fatalf("warnings must not fail the run: %v", err)
	}
	expectInt(t, "result", result, 2)
	if !strings.Contains(logs.String(), "code outside of BEGIN CODE and END CODE block") {
		t.Fatalf("expected warning in logs, got %q", logs.String())
	}
}

func TestRuntimeErrorReport(t *testing.T) {
	engine := MustNewEngine(Config{Stdout: io.Discard})
	source := "BEGIN CODE\nINT boom = FUNCTION(x) {\n  x + TRUE\n}\nboom(1)\nEND CODE"

	result, err := engine.Run(context.Background(), source, engine.NewEnv())
	if !result.IsError() {
		t.Fatalf("expected error value, got %s", result.Inspect())
	}
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if re.Message != "type mismatch: INTEGER + BOOLEAN" {
		t.Fatalf("unexpected message %q", re.Message)
	}
	if re.Pos.Line != 3 || re.Pos.Column != 5 {
		t.Fatalf("unexpected position %v", re.Pos)
	}
	if !strings.Contains(re.CodeFrame, "3 |   x + TRUE") {
		t.Fatalf("unexpected code frame %q", re.CodeFrame)
	}
	if len(re.Frames) != 1 || re.Frames[0].Function != "boom" || re.Frames[0].Pos.Line != 5 {
		t.Fatalf("unexpected frames %+v", re.Frames)
	}
	if !strings.Contains(err.Error(), "at boom (5:5)") {
		t.Fatalf("expected frame in message, got %q", err.Error())
	}
}

func TestRuntimeErrorFrameTruncation(t *testing.T) {
	frames := make([]StackFrame, 20)
	for i := range frames {
		frames[i] = StackFrame{Function: "f", Pos: Position{Line: i + 1, Column: 1}}
	}
	re := &RuntimeError{Message: "boom", Frames: frames}
	msg := re.Error()
	if !strings.Contains(msg, "... 4 frames omitted ...") {
		t.Fatalf("expected truncation marker, got %q", msg)
	}
	if strings.Count(msg, "\n  at f") != 16 {
		t.Fatalf("expected 16 rendered frames, got %q", msg)
	}
}

func TestEnvironmentPersistsAcrossRuns(t *testing.T) {
	engine := MustNewEngine(Config{Stdout: io.Discard})
	env := engine.NewEnv()
	if _, err := engine.Run(context.Background(), "INT x = 40", env); err != nil {
		t.Fatalf("first run: %v", err)
	}
	result, err := engine.Run(context.Background(), "x + 2", env)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	expectInt(t, "x + 2", result, 42)
}
