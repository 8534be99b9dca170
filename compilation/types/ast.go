package types

import "fmt"

// Node is implemented by every syntax tree variant. The set of variants is closed: only types declared in this file
// implement Node, and Walk handles each of them explicitly.
type Node interface {
	// GetNodeType returns the ESTree-style name of the node variant.
	GetNodeType() string
	// GetRange returns the source range covered by the node.
	GetRange() Range

	isNode()
}

// MethodKind describes the flavour of a class method.
type MethodKind string

const (
	// MethodKindMethod represents a plain method.
	MethodKindMethod MethodKind = "method"
	// MethodKindGet represents a getter.
	MethodKindGet MethodKind = "get"
	// MethodKindSet represents a setter.
	MethodKindSet MethodKind = "set"
)

// Program is the root of a parsed module.
type Program struct {
	Body  []Node
	Range Range
}

// ExpressionStatement is a statement consisting of a single expression.
type ExpressionStatement struct {
	Expression Node
	Range      Range
}

// ClassDeclaration is a named `class` statement.
type ClassDeclaration struct {
	// ID is the class name.
	ID *Identifier
	// SuperClass is the `extends` expression, or nil.
	SuperClass Node
	// Body holds the class members.
	Body  *ClassBody
	Range Range
}

// ClassBody is the braced member list of a class. Its range starts at the opening brace.
type ClassBody struct {
	Members []Node
	Range   Range
}

// MethodDefinition is a method, getter or setter declared in a class body.
type MethodDefinition struct {
	// Key is the method name. It is an *Identifier for plain names and another variant for computed, string or
	// private (#name) keys.
	Key    Node
	Kind   MethodKind
	Static bool
	// Value is the function implementing the method.
	Value *Function
	Range Range
}

// FieldDefinition is a class field declaration.
type FieldDefinition struct {
	Key    Node
	Value  Node
	Static bool
	Range  Range
}

// Function is a function expression, arrow function or method body.
type Function struct {
	// Params holds the formal parameters. Simple parameters are *Identifier; anything else is a pattern variant.
	Params    []Node
	Body      Node
	Async     bool
	Generator bool
	Arrow     bool
	Range     Range
}

// AssignmentExpression is an assignment such as `a = b` or `a += b`.
type AssignmentExpression struct {
	Operator string
	Left     Node
	Right    Node
	Range    Range
}

// MemberExpression is a property access such as `a.b` or `a[b]`.
type MemberExpression struct {
	Object   Node
	Property Node
	Computed bool
	Range    Range
}

// CallExpression is a function call.
type CallExpression struct {
	Callee    Node
	Arguments []Node
	Range     Range
}

// Identifier is a name reference or property name.
type Identifier struct {
	Name  string
	Range Range
}

// Literal is a string, numeric, boolean, null, template or regular expression literal. Raw is the source text.
type Literal struct {
	Kind  TokenKind
	Raw   string
	Range Range
}

// ObjectPattern is an object destructuring pattern such as `{a, b}`.
type ObjectPattern struct {
	Properties []Node
	Range      Range
}

// ArrayPattern is an array destructuring pattern such as `[a, b]`.
type ArrayPattern struct {
	Elements []Node
	Range    Range
}

// RestElement is a rest pattern such as `...args`.
type RestElement struct {
	Argument Node
	Range    Range
}

// AssignmentPattern is a pattern with a default value such as `a = 1`.
type AssignmentPattern struct {
	Left  Node
	Right Node
	Range Range
}

// Opaque represents any syntax the analyzer does not model explicitly. It keeps the grammar kind and its children so
// that every reachable node can still be visited.
type Opaque struct {
	Kind     string
	Children []Node
	Range    Range
}

func (n *Program) GetNodeType() string              { return "Program" }
func (n *ExpressionStatement) GetNodeType() string  { return "ExpressionStatement" }
func (n *ClassDeclaration) GetNodeType() string     { return "ClassDeclaration" }
func (n *ClassBody) GetNodeType() string            { return "ClassBody" }
func (n *MethodDefinition) GetNodeType() string     { return "MethodDefinition" }
func (n *FieldDefinition) GetNodeType() string      { return "PropertyDefinition" }
func (n *Function) GetNodeType() string             { return "FunctionExpression" }
func (n *AssignmentExpression) GetNodeType() string { return "AssignmentExpression" }
func (n *MemberExpression) GetNodeType() string     { return "MemberExpression" }
func (n *CallExpression) GetNodeType() string       { return "CallExpression" }
func (n *Identifier) GetNodeType() string           { return "Identifier" }
func (n *Literal) GetNodeType() string              { return "Literal" }
func (n *ObjectPattern) GetNodeType() string        { return "ObjectPattern" }
func (n *ArrayPattern) GetNodeType() string         { return "ArrayPattern" }
func (n *RestElement) GetNodeType() string          { return "RestElement" }
func (n *AssignmentPattern) GetNodeType() string    { return "AssignmentPattern" }
func (n *Opaque) GetNodeType() string               { return n.Kind }

func (n *Program) GetRange() Range              { return n.Range }
func (n *ExpressionStatement) GetRange() Range  { return n.Range }
func (n *ClassDeclaration) GetRange() Range     { return n.Range }
func (n *ClassBody) GetRange() Range            { return n.Range }
func (n *MethodDefinition) GetRange() Range     { return n.Range }
func (n *FieldDefinition) GetRange() Range      { return n.Range }
func (n *Function) GetRange() Range             { return n.Range }
func (n *AssignmentExpression) GetRange() Range { return n.Range }
func (n *MemberExpression) GetRange() Range     { return n.Range }
func (n *CallExpression) GetRange() Range       { return n.Range }
func (n *Identifier) GetRange() Range           { return n.Range }
func (n *Literal) GetRange() Range              { return n.Range }
func (n *ObjectPattern) GetRange() Range        { return n.Range }
func (n *ArrayPattern) GetRange() Range         { return n.Range }
func (n *RestElement) GetRange() Range          { return n.Range }
func (n *AssignmentPattern) GetRange() Range    { return n.Range }
func (n *Opaque) GetRange() Range               { return n.Range }

func (*Program) isNode()              {}
func (*ExpressionStatement) isNode()  {}
func (*ClassDeclaration) isNode()     {}
func (*ClassBody) isNode()            {}
func (*MethodDefinition) isNode()     {}
func (*FieldDefinition) isNode()      {}
func (*Function) isNode()             {}
func (*AssignmentExpression) isNode() {}
func (*MemberExpression) isNode()     {}
func (*CallExpression) isNode()       {}
func (*Identifier) isNode()           {}
func (*Literal) isNode()              {}
func (*ObjectPattern) isNode()        {}
func (*ArrayPattern) isNode()         {}
func (*RestElement) isNode()          {}
func (*AssignmentPattern) isNode()    {}
func (*Opaque) isNode()               {}

// Visitor is invoked for each node encountered by Walk. If the returned visitor w is not nil, Walk visits each of the
// children of node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a syntax tree in depth-first, source order.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
	v.Visit(nil)
}

// inspector adapts a function to the Visitor interface.
type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node != nil && f(node) {
		return f
	}
	return nil
}

// Inspect traverses a syntax tree in depth-first order, calling f for each node. If f returns false, the children of
// that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Children returns the direct, non-nil children of a node in source order. It panics when given a variant it does
// not know about.
func Children(node Node) []Node {
	var children []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if !isNilNode(n) {
				children = append(children, n)
			}
		}
	}

	switch n := node.(type) {
	case *Program:
		add(n.Body...)
	case *ExpressionStatement:
		add(n.Expression)
	case *ClassDeclaration:
		add(n.ID, n.SuperClass, n.Body)
	case *ClassBody:
		add(n.Members...)
	case *MethodDefinition:
		add(n.Key, n.Value)
	case *FieldDefinition:
		add(n.Key, n.Value)
	case *Function:
		add(n.Params...)
		add(n.Body)
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *MemberExpression:
		add(n.Object, n.Property)
	case *CallExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *ObjectPattern:
		add(n.Properties...)
	case *ArrayPattern:
		add(n.Elements...)
	case *RestElement:
		add(n.Argument)
	case *AssignmentPattern:
		add(n.Left, n.Right)
	case *Opaque:
		add(n.Children...)
	case *Identifier, *Literal:
	default:
		panic(fmt.Sprintf("types.Children: unexpected node type %T", node))
	}
	return children
}

// isNilNode reports whether a Node interface holds nothing or a typed nil pointer.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Identifier:
		return v == nil
	case *ClassBody:
		return v == nil
	case *Function:
		return v == nil
	}
	return false
}
