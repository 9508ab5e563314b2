package lang

import (
	"bufio"
	"io"
	"os"
	"sort"
)

// Streams are the host I/O channels shared by every scope of one environment
// chain. DISPLAY and print write to Stdout, SCAN reads from Stdin and input
// problems are reported on Stderr.
type Streams struct {
	Stdout io.Writer
	Stdin  *bufio.Reader
	Stderr io.Writer
}

func defaultStreams() *Streams {
	return &Streams{Stdout: os.Stdout, Stdin: bufio.NewReader(os.Stdin), Stderr: os.Stderr}
}

// Env is one lexical scope. Lookups walk outward through parent scopes;
// writes always land in the scope they are made on.
type Env struct {
	parent  *Env
	values  map[string]Value
	streams *Streams
}

// NewEnv returns a root scope wired to the process standard streams.
func NewEnv() *Env {
	return newEnv(nil, defaultStreams())
}

// NewEnclosedEnv returns a scope nested inside outer.
func NewEnclosedEnv(outer *Env) *Env {
	return newEnv(outer, outer.streams)
}

func newEnv(parent *Env, streams *Streams) *Env {
	return &Env{parent: parent, values: make(map[string]Value), streams: streams}
}

func (e *Env) Get(name string) (Value, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Set binds name in this scope, shadowing any outer binding.
func (e *Env) Set(name string, val Value) Value {
	e.values[name] = val
	return val
}

// Names lists the bindings of this scope in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the bindings of this scope.
func (e *Env) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

func (e *Env) Streams() *Streams { return e.streams }

func (e *Env) Stdout() io.Writer { return e.streams.Stdout }
func (e *Env) Stderr() io.Writer { return e.streams.Stderr }
