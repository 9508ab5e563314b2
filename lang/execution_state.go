package lang

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var digitPrinter = message.NewPrinter(language.English)

// enter counts one level of nesting and fails once the depth limit is hit.
func (exec *Execution) enter(node Node) Value {
	exec.depth++
	if exec.maxDepth > 0 && exec.depth > exec.maxDepth {
		exec.depth--
		return newErrorAt(node.Pos(), "stack depth exceeded (limit %d)", exec.maxDepth)
	}
	return Null
}

func (exec *Execution) leave() {
	exec.depth--
}

func (exec *Execution) pushFrame(function string, pos Position) {
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// groupDigits renders n with thousands separators, e.g. 1,000,000.
func groupDigits(n int) string {
	return digitPrinter.Sprintf("%d", n)
}
