package lang

import (
	"fmt"
	"strings"
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is the host-side form of an Error value that escaped a run.
type RuntimeError struct {
	Message   string
	Pos       Position
	CodeFrame string
	Frames    []StackFrame
}

// maxRenderedFrames bounds the trace in Error; deeper stacks keep the
// innermost and outermost halves.
const maxRenderedFrames = 16

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteByte('\n')
		b.WriteString(re.CodeFrame)
	}

	frames := re.Frames
	var tail []StackFrame
	if len(frames) > maxRenderedFrames {
		half := maxRenderedFrames / 2
		frames, tail = re.Frames[:half], re.Frames[len(re.Frames)-half:]
	}
	for _, f := range frames {
		f.writeTo(&b)
	}
	if tail != nil {
		fmt.Fprintf(&b, "\n  ... %d frames omitted ...", len(re.Frames)-maxRenderedFrames)
		for _, f := range tail {
			f.writeTo(&b)
		}
	}
	return b.String()
}

func (f StackFrame) writeTo(b *strings.Builder) {
	b.WriteString("\n  at ")
	b.WriteString(f.Function)
	if f.Pos.Line > 0 {
		fmt.Fprintf(b, " (%d:%d)", f.Pos.Line, f.Pos.Column)
	}
}

// runtimeError converts an escaped Error value. Frames are listed innermost
// first.
func (exec *Execution) runtimeError(v Value) *RuntimeError {
	re := &RuntimeError{Message: v.ErrorMessage(), Pos: v.errorPos()}
	if re.Pos.Line > 0 && exec.source != "" {
		re.CodeFrame = formatCodeFrame(exec.source, re.Pos)
	}
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		frame := exec.callStack[i]
		re.Frames = append(re.Frames, StackFrame(frame))
	}
	return re
}
