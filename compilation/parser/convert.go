package parser

import (
	"github.com/iost-studio/contractkit/compilation/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// Grammar node kinds of the tree-sitter JavaScript grammar which the converter maps onto dedicated syntax tree
// variants. Everything else becomes a types.Opaque node.
const (
	jsNodeProgram                 = "program"
	jsNodeComment                 = "comment"
	jsNodeHTMLComment             = "html_comment"
	jsNodeExpressionStatement     = "expression_statement"
	jsNodeParenthesizedExpression = "parenthesized_expression"
	jsNodeClassDeclaration        = "class_declaration"
	jsNodeClassHeritage           = "class_heritage"
	jsNodeClassBody               = "class_body"
	jsNodeMethodDefinition        = "method_definition"
	jsNodeFieldDefinition         = "field_definition"
	jsNodeFormalParameters        = "formal_parameters"
	jsNodeAssignmentExpression    = "assignment_expression"
	jsNodeAugmentedAssignment     = "augmented_assignment_expression"
	jsNodeMemberExpression        = "member_expression"
	jsNodeSubscriptExpression     = "subscript_expression"
	jsNodeCallExpression          = "call_expression"
	jsNodeFunctionExpression      = "function_expression"
	jsNodeFunction                = "function"
	jsNodeGeneratorFunction       = "generator_function"
	jsNodeArrowFunction           = "arrow_function"
	jsNodeObjectPattern           = "object_pattern"
	jsNodeArrayPattern            = "array_pattern"
	jsNodeRestPattern             = "rest_pattern"
	jsNodeAssignmentPattern       = "assignment_pattern"
	jsNodeIdentifier              = "identifier"
	jsNodePropertyIdentifier      = "property_identifier"
	jsNodeShorthandProperty       = "shorthand_property_identifier"
	jsNodeShorthandPattern        = "shorthand_property_identifier_pattern"
	jsNodeStatementIdentifier     = "statement_identifier"
	jsNodeUndefined               = "undefined"
	jsNodeString                  = "string"
	jsNodeTemplateString          = "template_string"
	jsNodeTemplateSubstitution    = "template_substitution"
	jsNodeNumber                  = "number"
	jsNodeTrue                    = "true"
	jsNodeFalse                   = "false"
	jsNodeNull                    = "null"
	jsNodeRegex                   = "regex"
)

// converter turns a tree-sitter concrete syntax tree into the types syntax tree and collects the token and comment
// streams. A converter is used for a single parse.
type converter struct {
	source   []byte
	tokens   []types.Token
	comments []types.Comment
}

// text returns the source text covered by a node.
func (c *converter) text(node *sitter.Node) string {
	return string(c.source[node.StartByte():node.EndByte()])
}

// namedChildren returns the named children of a node, skipping comments which the grammar allows anywhere.
func namedChildren(node *sitter.Node) []*sitter.Node {
	children := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || isComment(child) {
			continue
		}
		children = append(children, child)
	}
	return children
}

// isComment returns a boolean indicating whether the node is a comment.
func isComment(node *sitter.Node) bool {
	return node.Type() == jsNodeComment || node.Type() == jsNodeHTMLComment
}

// hasAnonymousChild returns a boolean indicating whether a node has an unnamed child (a keyword or punctuator) of the
// given kind.
func hasAnonymousChild(node *sitter.Node, kind string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == kind {
			return true
		}
	}
	return false
}

// convertProgram converts the root node of a parse.
func (c *converter) convertProgram(root *sitter.Node) *types.Program {
	program := &types.Program{Range: nodeRange(root)}
	for _, child := range namedChildren(root) {
		program.Body = append(program.Body, c.convert(child))
	}
	return program
}

// convert converts a single grammar node and its descendants. Returns nil for a nil node.
func (c *converter) convert(node *sitter.Node) types.Node {
	if node == nil {
		return nil
	}

	switch node.Type() {
	case jsNodeExpressionStatement:
		stmt := &types.ExpressionStatement{Range: nodeRange(node)}
		if children := namedChildren(node); len(children) > 0 {
			stmt.Expression = c.convert(children[0])
		}
		return stmt

	case jsNodeParenthesizedExpression:
		// Parentheses only group, so the inner expression stands in for them
		if children := namedChildren(node); len(children) == 1 {
			return c.convert(children[0])
		}
		return c.convertOpaque(node)

	case jsNodeClassDeclaration:
		return c.convertClass(node)

	case jsNodeClassBody:
		body := &types.ClassBody{Range: nodeRange(node)}
		for _, member := range namedChildren(node) {
			body.Members = append(body.Members, c.convert(member))
		}
		return body

	case jsNodeMethodDefinition:
		return c.convertMethod(node)

	case jsNodeFieldDefinition:
		return &types.FieldDefinition{
			Key:    c.convert(node.ChildByFieldName("property")),
			Value:  c.convert(node.ChildByFieldName("value")),
			Static: hasAnonymousChild(node, "static"),
			Range:  nodeRange(node),
		}

	case jsNodeAssignmentExpression:
		return &types.AssignmentExpression{
			Operator: "=",
			Left:     c.convert(node.ChildByFieldName("left")),
			Right:    c.convert(node.ChildByFieldName("right")),
			Range:    nodeRange(node),
		}

	case jsNodeAugmentedAssignment:
		operator := "="
		if op := node.ChildByFieldName("operator"); op != nil {
			operator = op.Type()
		}
		return &types.AssignmentExpression{
			Operator: operator,
			Left:     c.convert(node.ChildByFieldName("left")),
			Right:    c.convert(node.ChildByFieldName("right")),
			Range:    nodeRange(node),
		}

	case jsNodeMemberExpression:
		return &types.MemberExpression{
			Object:   c.convert(node.ChildByFieldName("object")),
			Property: c.convert(node.ChildByFieldName("property")),
			Range:    nodeRange(node),
		}

	case jsNodeSubscriptExpression:
		return &types.MemberExpression{
			Object:   c.convert(node.ChildByFieldName("object")),
			Property: c.convert(node.ChildByFieldName("index")),
			Computed: true,
			Range:    nodeRange(node),
		}

	case jsNodeCallExpression:
		call := &types.CallExpression{
			Callee: c.convert(node.ChildByFieldName("function")),
			Range:  nodeRange(node),
		}
		if args := node.ChildByFieldName("arguments"); args != nil {
			if args.Type() == jsNodeTemplateString {
				// Tagged templates are calls whose single argument is the template
				call.Arguments = append(call.Arguments, c.convert(args))
			} else {
				for _, arg := range namedChildren(args) {
					call.Arguments = append(call.Arguments, c.convert(arg))
				}
			}
		}
		return call

	case jsNodeFunctionExpression, jsNodeFunction, jsNodeGeneratorFunction, jsNodeArrowFunction:
		return c.convertFunction(node, nodeRange(node))

	case jsNodeObjectPattern:
		pattern := &types.ObjectPattern{Range: nodeRange(node)}
		for _, property := range namedChildren(node) {
			pattern.Properties = append(pattern.Properties, c.convert(property))
		}
		return pattern

	case jsNodeArrayPattern:
		pattern := &types.ArrayPattern{Range: nodeRange(node)}
		for _, element := range namedChildren(node) {
			pattern.Elements = append(pattern.Elements, c.convert(element))
		}
		return pattern

	case jsNodeRestPattern:
		rest := &types.RestElement{Range: nodeRange(node)}
		if children := namedChildren(node); len(children) > 0 {
			rest.Argument = c.convert(children[0])
		}
		return rest

	case jsNodeAssignmentPattern:
		return &types.AssignmentPattern{
			Left:  c.convert(node.ChildByFieldName("left")),
			Right: c.convert(node.ChildByFieldName("right")),
			Range: nodeRange(node),
		}

	case jsNodeIdentifier, jsNodePropertyIdentifier, jsNodeShorthandProperty, jsNodeShorthandPattern,
		jsNodeStatementIdentifier, jsNodeUndefined:
		return &types.Identifier{Name: c.text(node), Range: nodeRange(node)}

	case jsNodeString, jsNodeTemplateString, jsNodeNumber, jsNodeTrue, jsNodeFalse, jsNodeNull, jsNodeRegex:
		return &types.Literal{Kind: literalKind(node.Type()), Raw: c.text(node), Range: nodeRange(node)}

	default:
		return c.convertOpaque(node)
	}
}

// convertOpaque converts a node without a dedicated variant, preserving its named children.
func (c *converter) convertOpaque(node *sitter.Node) *types.Opaque {
	opaque := &types.Opaque{Kind: node.Type(), Range: nodeRange(node)}
	for _, child := range namedChildren(node) {
		opaque.Children = append(opaque.Children, c.convert(child))
	}
	return opaque
}

// convertClass converts a class declaration.
func (c *converter) convertClass(node *sitter.Node) *types.ClassDeclaration {
	class := &types.ClassDeclaration{Range: nodeRange(node)}

	if name := node.ChildByFieldName("name"); name != nil {
		class.ID = &types.Identifier{Name: c.text(name), Range: nodeRange(name)}
	}

	for _, child := range namedChildren(node) {
		if child.Type() == jsNodeClassHeritage {
			if heritage := namedChildren(child); len(heritage) > 0 {
				class.SuperClass = c.convert(heritage[0])
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		if classBody, ok := c.convert(body).(*types.ClassBody); ok {
			class.Body = classBody
		}
	}
	return class
}

// convertMethod converts a class method definition.
func (c *converter) convertMethod(node *sitter.Node) *types.MethodDefinition {
	method := &types.MethodDefinition{
		Key:    c.convert(node.ChildByFieldName("name")),
		Kind:   types.MethodKindMethod,
		Static: hasAnonymousChild(node, "static"),
		Range:  nodeRange(node),
	}
	if hasAnonymousChild(node, "get") {
		method.Kind = types.MethodKindGet
	} else if hasAnonymousChild(node, "set") {
		method.Kind = types.MethodKindSet
	}

	// The function value spans from the parameter list to the end of the body
	valueRange := method.Range
	if params := node.ChildByFieldName("parameters"); params != nil {
		valueRange.Start = int(params.StartByte())
	}
	method.Value = c.convertFunction(node, valueRange)
	return method
}

// convertFunction converts the parameters and body of any function-like node.
func (c *converter) convertFunction(node *sitter.Node, r types.Range) *types.Function {
	function := &types.Function{
		Body:      c.convert(node.ChildByFieldName("body")),
		Async:     hasAnonymousChild(node, "async"),
		Generator: hasAnonymousChild(node, "*"),
		Arrow:     node.Type() == jsNodeArrowFunction,
		Range:     r,
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for _, param := range namedChildren(params) {
			function.Params = append(function.Params, c.convert(param))
		}
	} else if param := node.ChildByFieldName("parameter"); param != nil {
		// Arrow functions with a single bare parameter
		function.Params = append(function.Params, c.convert(param))
	}
	return function
}

// literalKind maps a literal grammar node kind onto the matching token kind.
func literalKind(kind string) types.TokenKind {
	switch kind {
	case jsNodeString:
		return types.TokenKindString
	case jsNodeTemplateString:
		return types.TokenKindTemplate
	case jsNodeNumber:
		return types.TokenKindNumeric
	case jsNodeTrue, jsNodeFalse:
		return types.TokenKindBoolean
	case jsNodeNull:
		return types.TokenKindNull
	default:
		return types.TokenKindRegularExpression
	}
}
