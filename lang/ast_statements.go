package lang

import "strings"

// Binding is one name = value pair of a declaration.
type Binding struct {
	Name  *Identifier
	Value Expression
}

// VarDeclaration declares one or more variables of the same kind, for example
// INT a = 1, b.
type VarDeclaration struct {
	Bindings []Binding
	token    Token
}

func (s *VarDeclaration) stmtNode()            {}
func (s *VarDeclaration) Pos() Position        { return s.token.Pos }
func (s *VarDeclaration) TokenLiteral() string { return s.token.Literal }
func (s *VarDeclaration) String() string {
	parts := make([]string, len(s.Bindings))
	for i, b := range s.Bindings {
		parts[i] = nodeString(b.Name) + " = " + nodeString(b.Value)
	}
	return s.token.Literal + " " + strings.Join(parts, ", ") + ";"
}

// Kind reports the declared type keyword: INT, FLOAT, BOOL or CHAR.
func (s *VarDeclaration) Kind() string { return s.token.Literal }

type ReturnStatement struct {
	Value Expression
	token Token
}

func (s *ReturnStatement) stmtNode()            {}
func (s *ReturnStatement) Pos() Position        { return s.token.Pos }
func (s *ReturnStatement) TokenLiteral() string { return s.token.Literal }
func (s *ReturnStatement) String() string {
	return s.token.Literal + " " + nodeString(s.Value) + ";"
}

type ExpressionStatement struct {
	Expression Expression
	token      Token
}

func (s *ExpressionStatement) stmtNode()            {}
func (s *ExpressionStatement) Pos() Position        { return s.token.Pos }
func (s *ExpressionStatement) TokenLiteral() string { return s.token.Literal }
func (s *ExpressionStatement) String() string       { return nodeString(s.Expression) }

type BlockStatement struct {
	Statements []Statement
	token      Token
}

func (s *BlockStatement) stmtNode()            {}
func (s *BlockStatement) Pos() Position        { return s.token.Pos }
func (s *BlockStatement) TokenLiteral() string { return s.token.Literal }
func (s *BlockStatement) String() string {
	var b strings.Builder
	for _, stmt := range s.Statements {
		b.WriteString(stmt.String())
	}
	return b.String()
}

type DisplayStatement struct {
	Args  []Expression
	token Token
}

func (s *DisplayStatement) stmtNode()            {}
func (s *DisplayStatement) Pos() Position        { return s.token.Pos }
func (s *DisplayStatement) TokenLiteral() string { return s.token.Literal }
func (s *DisplayStatement) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = nodeString(a)
	}
	return s.token.Literal + ": " + strings.Join(args, ", ")
}

type ScanStatement struct {
	Names []*Identifier
	token Token
}

func (s *ScanStatement) stmtNode()            {}
func (s *ScanStatement) Pos() Position        { return s.token.Pos }
func (s *ScanStatement) TokenLiteral() string { return s.token.Literal }
func (s *ScanStatement) String() string {
	names := make([]string, len(s.Names))
	for i, n := range s.Names {
		names[i] = n.String()
	}
	return s.token.Literal + " " + strings.Join(names, ", ") + ";"
}

type AssignmentStatement struct {
	Name  *Identifier
	Value Expression
	token Token
}

func (s *AssignmentStatement) stmtNode()            {}
func (s *AssignmentStatement) Pos() Position        { return s.token.Pos }
func (s *AssignmentStatement) TokenLiteral() string { return s.token.Literal }
func (s *AssignmentStatement) String() string {
	return nodeString(s.Name) + " = " + nodeString(s.Value) + ";"
}

type WhileLoop struct {
	Condition Expression
	Body      *BlockStatement
	token     Token
}

func (s *WhileLoop) stmtNode()            {}
func (s *WhileLoop) Pos() Position        { return s.token.Pos }
func (s *WhileLoop) TokenLiteral() string { return s.token.Literal }
func (s *WhileLoop) String() string {
	return s.token.Literal + "(" + nodeString(s.Condition) + ")"
}

type Comment struct {
	Text  string
	token Token
}

func (s *Comment) stmtNode()            {}
func (s *Comment) Pos() Position        { return s.token.Pos }
func (s *Comment) TokenLiteral() string { return s.token.Literal }
func (s *Comment) String() string       { return s.Text }

// NewLine is the $ marker. It appears as a DISPLAY argument and may also stand
// alone as a statement.
type NewLine struct {
	token Token
}

func (s *NewLine) stmtNode()            {}
func (s *NewLine) exprNode()            {}
func (s *NewLine) Pos() Position        { return s.token.Pos }
func (s *NewLine) TokenLiteral() string { return s.token.Literal }
func (s *NewLine) String() string       { return "$" }
