package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mgomes/codelang/lang"
)

const sourceExt = ".code"

type fmtMode int

const (
	fmtPrint fmtMode = iota
	fmtWrite
	fmtCheck
	fmtCanonical
)

func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "rewrite files in place")
	check := fs.Bool("check", false, "only report files whose layout would change")
	canonical := fs.Bool("ast", false, "print each parsed statement in canonical form")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("codelang fmt: path required")
	}

	mode := fmtPrint
	switch {
	case *canonical:
		mode = fmtCanonical
	case *check:
		mode = fmtCheck
	case *write:
		mode = fmtWrite
	}

	files, err := collectSourceFiles(fs.Args())
	if err != nil {
		return err
	}
	stale := 0
	for _, path := range files {
		changed, err := formatFile(path, mode, os.Stdout)
		if err != nil {
			return err
		}
		if changed {
			stale++
		}
	}
	if mode == fmtCheck && stale > 0 {
		return fmt.Errorf("codelang fmt: %d file(s) need formatting", stale)
	}
	return nil
}

// formatFile applies mode to one file and reports whether its layout
// differs from the formatted form.
func formatFile(path string, mode fmtMode, stdout io.Writer) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	source := string(raw)

	if mode == fmtCanonical {
		out, err := canonicalSource(source)
		if err != nil {
			return false, fmt.Errorf("parse %s: %w", path, err)
		}
		_, err = io.WriteString(stdout, out)
		return false, err
	}

	formatted := formatSource(source)
	changed := formatted != source
	switch mode {
	case fmtPrint:
		_, err = io.WriteString(stdout, formatted)
	case fmtWrite:
		if !changed {
			return false, nil
		}
		info, statErr := os.Stat(path)
		if statErr != nil {
			return false, fmt.Errorf("stat %s: %w", path, statErr)
		}
		if err = os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			err = fmt.Errorf("write %s: %w", path, err)
		}
	}
	return changed, err
}

// collectSourceFiles expands directories into the .code files beneath them.
// Explicit file arguments are kept only when they carry the extension.
func collectSourceFiles(targets []string) ([]string, error) {
	found := make(map[string]struct{})
	for _, target := range targets {
		err := filepath.WalkDir(target, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() || filepath.Ext(path) != sourceExt {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			found[abs] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", target, err)
		}
	}
	return slices.Sorted(maps.Keys(found)), nil
}

// formatSource normalises line endings, strips trailing blanks, expands
// leading tabs to two spaces and ends the file with a single newline.
func formatSource(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")

	var b strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		line = strings.TrimRight(line, " \t")
		body := strings.TrimLeft(line, "\t")
		b.WriteString(strings.Repeat("  ", len(line)-len(body)))
		b.WriteString(body)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// canonicalSource renders each top-level statement in its canonical form, one
// per line.
func canonicalSource(source string) (string, error) {
	program, errs := lang.Parse(source)
	if fatal := lang.FatalErrors(errs); len(fatal) > 0 {
		return "", lang.CombineErrors(fatal)
	}
	var b strings.Builder
	for _, stmt := range program.Statements {
		b.WriteString(stmt.String())
		b.WriteByte('\n')
	}
	return b.String(), nil
}
