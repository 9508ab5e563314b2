package lang

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

const (
	defaultMaxDepth  = 20000
	defaultLoopLimit = 1_000_000
)

// Config controls evaluation limits and where program I/O goes.
type Config struct {
	// MaxDepth bounds nested evaluation so runaway recursion surfaces as an
	// error value instead of exhausting the Go stack. It counts syntax nodes,
	// not calls: one recursive call spends several levels.
	MaxDepth int
	// LoopLimit bounds the number of guard evaluations of a single WHILE.
	LoopLimit int

	Stdout io.Writer
	Stdin  io.Reader
	Stderr io.Writer

	// Builtins resolves names that are bound in no scope and were not added
	// with RegisterBuiltin.
	Builtins BuiltinRegistry
	Logger   *slog.Logger
}

// Engine evaluates programs against environments it creates.
type Engine struct {
	config   Config
	streams  *Streams
	builtins map[string]Value
	logger   *slog.Logger
}

// NewEngine fills defaults into cfg and builds an Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be positive, got %d", cfg.MaxDepth)
	}
	if cfg.LoopLimit < 0 {
		return nil, fmt.Errorf("loop limit must be positive, got %d", cfg.LoopLimit)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	if cfg.LoopLimit == 0 {
		cfg.LoopLimit = defaultLoopLimit
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		config:   cfg,
		streams:  &Streams{Stdout: cfg.Stdout, Stdin: bufio.NewReader(cfg.Stdin), Stderr: cfg.Stderr},
		builtins: make(map[string]Value),
		logger:   cfg.Logger,
	}, nil
}

// MustNewEngine is NewEngine for configurations known to be valid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// RegisterBuiltin exposes fn to programs under name. Registered builtins take
// precedence over Config.Builtins.
func (e *Engine) RegisterBuiltin(name string, fn BuiltinFunc) {
	e.builtins[name] = NewBuiltin(name, fn)
}

// LookupBuiltin resolves a builtin by name.
func (e *Engine) LookupBuiltin(name string) (Value, bool) {
	if v, ok := e.builtins[name]; ok {
		return v, true
	}
	if e.config.Builtins != nil {
		return e.config.Builtins.Lookup(name)
	}
	return Value{}, false
}

// BuiltinNames lists the builtins registered directly on the engine.
func (e *Engine) BuiltinNames() []string {
	names := make([]string, 0, len(e.builtins))
	for name := range e.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEnv returns a root scope wired to the engine's streams.
func (e *Engine) NewEnv() *Env {
	return newEnv(nil, e.streams)
}

// Eval evaluates node in env and returns the resulting value. Failures are
// returned as Error values.
func (e *Engine) Eval(ctx context.Context, node Node, env *Env) Value {
	exec := e.newExecution(ctx, "")
	return exec.eval(node, env)
}

// Run parses and evaluates source in env. Blocking parse diagnostics are
// returned as an error, warnings are logged. An Error value produced by the
// program is returned both as the value and as a *RuntimeError.
func (e *Engine) Run(ctx context.Context, source string, env *Env) (Value, error) {
	program, errs := Parse(source)
	for _, err := range errs {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Severity == SeverityWarning {
			e.logger.Warn("parse warning", "line", pe.Pos.Line, "column", pe.Pos.Column, "msg", pe.Msg)
		}
	}
	if fatal := FatalErrors(errs); len(fatal) > 0 {
		return Null, CombineErrors(fatal)
	}

	exec := e.newExecution(ctx, source)
	result := exec.eval(program, env)
	if result.IsError() {
		return result, exec.runtimeError(result)
	}
	return result, nil
}
