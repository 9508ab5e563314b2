package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/mgomes/codelang/lang"
	"github.com/mgomes/codelang/stdlib"
)

// replSession is the evaluation state shared by both REPL front ends. Lines
// are evaluated in one persistent environment without BEGIN CODE.
type replSession struct {
	engine   *lang.Engine
	registry *stdlib.Registry
	env      *lang.Env
	captured *bytes.Buffer
	// input is the reader SCAN consumes. Piped REPL lines are read from it
	// too, so both see the same stream position.
	input    *bufio.Reader
	showNull bool
}

type replResult struct {
	output     string
	isErr      bool
	incomplete bool
}

// newREPLSession builds a session. With capture set, program output is
// buffered for the caller and SCAN sees an empty input.
func newREPLSession(cfg fileConfig, logger *slog.Logger, capture bool) (*replSession, error) {
	if !capture {
		return newStreamSession(cfg, logger, os.Stdin, os.Stdout, os.Stderr)
	}
	buf := &bytes.Buffer{}
	s, err := newStreamSession(cfg, logger, strings.NewReader(""), buf, buf)
	if err != nil {
		return nil, err
	}
	s.captured = buf
	return s, nil
}

// newStreamSession builds a session whose programs talk to the given streams.
func newStreamSession(cfg fileConfig, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) (*replSession, error) {
	engineCfg, reg, err := cfg.engineConfig(logger)
	if err != nil {
		return nil, err
	}
	s := &replSession{registry: reg, showNull: cfg.ShowNull, input: bufio.NewReader(stdin)}
	engineCfg.Stdin = s.input
	engineCfg.Stdout = stdout
	engineCfg.Stderr = stderr
	s.engine, err = lang.NewEngine(engineCfg)
	if err != nil {
		return nil, err
	}
	s.env = s.engine.NewEnv()
	return s, nil
}

func (s *replSession) evaluate(input string) replResult {
	program, errs := lang.Parse(input)
	if lang.IsIncomplete(errs) {
		return replResult{incomplete: true}
	}
	if fatal := lang.FatalErrors(errs); len(fatal) > 0 {
		return replResult{output: lang.CombineErrors(fatal).Error(), isErr: true}
	}

	result := s.engine.Eval(context.Background(), program, s.env)
	printed := s.drain()
	if result.IsError() {
		return replResult{output: joinOutput(printed, result.Inspect()), isErr: true}
	}
	if !result.IsNull() {
		s.env.Set("_", result)
	}
	return replResult{output: joinOutput(printed, s.format(result))}
}

func (s *replSession) drain() string {
	if s.captured == nil {
		return ""
	}
	out := strings.TrimRight(s.captured.String(), "\n")
	s.captured.Reset()
	return out
}

func joinOutput(printed, value string) string {
	switch {
	case printed == "":
		return value
	case value == "":
		return printed
	default:
		return printed + "\n" + value
	}
}

func (s *replSession) format(v lang.Value) string {
	if v.IsNull() {
		if s.showNull {
			return "NULL"
		}
		return ""
	}
	return v.Inspect()
}

func (s *replSession) reset() {
	s.env = s.engine.NewEnv()
}

// vars renders the session bindings as "name = value" lines.
func (s *replSession) vars() []string {
	names := s.env.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		v, _ := s.env.Get(name)
		lines = append(lines, fmt.Sprintf("%s = %s", name, v.String()))
	}
	return lines
}

// completions lists keywords, builtins and bindings starting with prefix.
func (s *replSession) completions(prefix string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(names []string) {
		for _, name := range names {
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	add(lang.Keywords())
	add(s.registry.Names())
	add(s.env.Names())
	sort.Strings(out)
	return out
}

func writeResult(w io.Writer, res replResult) {
	if res.output == "" {
		return
	}
	fmt.Fprintln(w, res.output)
}
