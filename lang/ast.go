package lang

import "strings"

// Node is implemented by every syntax tree node. String renders the canonical
// parenthesized form used by diagnostics and the formatter.
type Node interface {
	Pos() Position
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) == 0 {
		return ""
	}
	return p.Statements[0].TokenLiteral()
}

func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
	}
	return b.String()
}

type Identifier struct {
	Name  string
	token Token
}

func (e *Identifier) exprNode()            {}
func (e *Identifier) Pos() Position        { return e.token.Pos }
func (e *Identifier) TokenLiteral() string { return e.token.Literal }
func (e *Identifier) String() string       { return e.Name }

type IntegerLiteral struct {
	Value int64
	token Token
}

func (e *IntegerLiteral) exprNode()            {}
func (e *IntegerLiteral) Pos() Position        { return e.token.Pos }
func (e *IntegerLiteral) TokenLiteral() string { return e.token.Literal }
func (e *IntegerLiteral) String() string       { return e.token.Literal }

type FloatLiteral struct {
	Value float64
	token Token
}

func (e *FloatLiteral) exprNode()            {}
func (e *FloatLiteral) Pos() Position        { return e.token.Pos }
func (e *FloatLiteral) TokenLiteral() string { return e.token.Literal }
func (e *FloatLiteral) String() string       { return e.token.Literal }

type CharLiteral struct {
	Value string
	token Token
}

func (e *CharLiteral) exprNode()            {}
func (e *CharLiteral) Pos() Position        { return e.token.Pos }
func (e *CharLiteral) TokenLiteral() string { return e.token.Literal }
func (e *CharLiteral) String() string       { return e.token.Literal }

type StringLiteral struct {
	Value string
	token Token
}

func (e *StringLiteral) exprNode()            {}
func (e *StringLiteral) Pos() Position        { return e.token.Pos }
func (e *StringLiteral) TokenLiteral() string { return e.token.Literal }
func (e *StringLiteral) String() string       { return e.token.Literal }

type BooleanLiteral struct {
	Value bool
	token Token
}

func (e *BooleanLiteral) exprNode()            {}
func (e *BooleanLiteral) Pos() Position        { return e.token.Pos }
func (e *BooleanLiteral) TokenLiteral() string { return e.token.Literal }
func (e *BooleanLiteral) String() string       { return e.token.Literal }

// EscapeLiteral is the bracketed form [c] that DISPLAY uses to print
// characters which otherwise have syntactic meaning, such as [#] or [&].
type EscapeLiteral struct {
	Value string
	token Token
}

func (e *EscapeLiteral) exprNode()            {}
func (e *EscapeLiteral) Pos() Position        { return e.token.Pos }
func (e *EscapeLiteral) TokenLiteral() string { return e.token.Literal }
func (e *EscapeLiteral) String() string       { return "[" + e.Value + "]" }

type PrefixExpression struct {
	Operator string
	Right    Expression
	token    Token
}

func (e *PrefixExpression) exprNode()            {}
func (e *PrefixExpression) Pos() Position        { return e.token.Pos }
func (e *PrefixExpression) TokenLiteral() string { return e.token.Literal }
func (e *PrefixExpression) String() string {
	if e.Operator == "NOT" {
		return "(NOT " + nodeString(e.Right) + ")"
	}
	return "(" + e.Operator + nodeString(e.Right) + ")"
}

type InfixExpression struct {
	Left     Expression
	Operator string
	Right    Expression
	token    Token
}

func (e *InfixExpression) exprNode()            {}
func (e *InfixExpression) Pos() Position        { return e.token.Pos }
func (e *InfixExpression) TokenLiteral() string { return e.token.Literal }
func (e *InfixExpression) String() string {
	return "(" + nodeString(e.Left) + " " + e.Operator + " " + nodeString(e.Right) + ")"
}

type IfExpression struct {
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
	token       Token
}

func (e *IfExpression) exprNode()            {}
func (e *IfExpression) Pos() Position        { return e.token.Pos }
func (e *IfExpression) TokenLiteral() string { return e.token.Literal }
func (e *IfExpression) String() string {
	out := nodeString(e.Condition) + " " + nodeString(e.Consequence)
	if e.Alternative != nil {
		out += "ELSE " + e.Alternative.String()
	}
	return out
}

type FunctionLiteral struct {
	Parameters []*Identifier
	Body       *BlockStatement
	token      Token
}

func (e *FunctionLiteral) exprNode()            {}
func (e *FunctionLiteral) Pos() Position        { return e.token.Pos }
func (e *FunctionLiteral) TokenLiteral() string { return e.token.Literal }
func (e *FunctionLiteral) String() string {
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.String()
	}
	return e.token.Literal + "(" + strings.Join(params, ", ") + ") " + nodeString(e.Body)
}

type CallExpression struct {
	Function  Expression
	Arguments []Expression
	token     Token
}

func (e *CallExpression) exprNode()            {}
func (e *CallExpression) Pos() Position        { return e.token.Pos }
func (e *CallExpression) TokenLiteral() string { return e.token.Literal }
func (e *CallExpression) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = nodeString(a)
	}
	return nodeString(e.Function) + "(" + strings.Join(args, ", ") + ")"
}

// IndexExpression covers x[i] and the slice forms x[:j], x[i:], x[i:j] and
// x[:]. Index and End are nil when omitted.
type IndexExpression struct {
	Left     Expression
	Index    Expression
	HasColon bool
	End      Expression
	token    Token
}

func (e *IndexExpression) exprNode()            {}
func (e *IndexExpression) Pos() Position        { return e.token.Pos }
func (e *IndexExpression) TokenLiteral() string { return e.token.Literal }
func (e *IndexExpression) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(nodeString(e.Left))
	b.WriteString("[")
	if e.Index != nil {
		b.WriteString(e.Index.String())
	}
	if e.HasColon {
		b.WriteString(":")
		if e.End != nil {
			b.WriteString(e.End.String())
		}
	}
	b.WriteString("])")
	return b.String()
}

type IncrementExpression struct {
	Name   *Identifier
	Prefix bool
	token  Token
}

func (e *IncrementExpression) exprNode()            {}
func (e *IncrementExpression) Pos() Position        { return e.token.Pos }
func (e *IncrementExpression) TokenLiteral() string { return e.token.Literal }
func (e *IncrementExpression) String() string       { return stepString("++", e.Name, e.Prefix) }

type DecrementExpression struct {
	Name   *Identifier
	Prefix bool
	token  Token
}

func (e *DecrementExpression) exprNode()            {}
func (e *DecrementExpression) Pos() Position        { return e.token.Pos }
func (e *DecrementExpression) TokenLiteral() string { return e.token.Literal }
func (e *DecrementExpression) String() string       { return stepString("--", e.Name, e.Prefix) }

func stepString(op string, name *Identifier, prefix bool) string {
	if prefix {
		return "(" + op + name.String() + ")"
	}
	return "(" + name.String() + op + ")"
}

// nodeString tolerates the nil children a partially parsed tree may hold.
func nodeString(n Node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *BlockStatement:
		if v == nil {
			return ""
		}
	case *Identifier:
		if v == nil {
			return ""
		}
	}
	return n.String()
}
