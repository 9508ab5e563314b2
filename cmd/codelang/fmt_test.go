package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const unformatted = "BEGIN CODE  \r\n\tINT x = 1\t \n\t\tDISPLAY: x\n\n\nEND CODE\n\n"

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "\n"},
		{"END CODE", "END CODE\n"},
		{"a  \r\nb\t", "a\nb\n"},
		{"\tx\n\t\ty", "  x\n    y\n"},
		{"x\n\n\n", "x\n"},
		{"  x", "  x\n"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.input); got != tt.want {
			t.Fatalf("formatSource(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeSourceFile(t, unformatted)
	err := fmtCommand([]string{"-check", path})
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "1 file(s) need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeSourceFile(t, unformatted)
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	want := "BEGIN CODE\n  INT x = 1\n    DISPLAY: x\n\n\nEND CODE\n"
	if got := string(updated); got != want {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeSourceFile(t, "BEGIN CODE \nEND CODE")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != "BEGIN CODE\nEND CODE\n" {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandPrintsCanonicalStatements(t *testing.T) {
	path := writeSourceFile(t, "BEGIN CODE\nINT   total   =  1\nEND CODE\n")
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{"-ast", path})
	})
	if err != nil {
		t.Fatalf("fmt -ast failed: %v", err)
	}
	if !strings.Contains(out, "total") || strings.Contains(out, "   ") {
		t.Fatalf("unexpected canonical output: %q", out)
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a"+sourceExt)
	second := filepath.Join(root, "nested", "b"+sourceExt)
	ignored := filepath.Join(root, "notes.txt")
	if err := os.MkdirAll(filepath.Dir(second), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	for path, content := range map[string]string{
		first:   unformatted,
		second:  "BEGIN CODE\t\nEND CODE",
		ignored: "left alone  ",
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	if err := fmtCommand([]string{"-w", root}); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if err := fmtCommand([]string{"-check", root}); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
	notes, err := os.ReadFile(ignored)
	if err != nil {
		t.Fatalf("read notes: %v", err)
	}
	if string(notes) != "left alone  " {
		t.Fatalf("non-source file was rewritten: %q", notes)
	}
}

func writeSourceFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script"+sourceExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	return path
}
