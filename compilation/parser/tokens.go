package parser

import (
	"regexp"
	"strings"

	"github.com/iost-studio/contractkit/compilation/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// jsKeywords holds the reserved words which are classified as types.TokenKindKeyword. Contextual words such as
// `get`, `set`, `static`, `async` and `of` are identifiers.
var jsKeywords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "finally": true, "for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "let": true, "new": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
	"yield": true,
}

// wordPattern matches leaves spelled like an identifier.
var wordPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// scan walks the concrete syntax tree in source order and records every token and comment.
func (c *converter) scan(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Type() {
	case jsNodeComment, jsNodeHTMLComment:
		c.addComment(node)
		return
	case jsNodeString:
		value := c.text(node)
		if len(value) >= 2 {
			value = value[1 : len(value)-1]
		}
		c.addToken(types.TokenKindString, value, node)
		return
	case jsNodeRegex:
		c.addToken(types.TokenKindRegularExpression, c.text(node), node)
		return
	case jsNodeTemplateString:
		value := c.text(node)
		if len(value) >= 2 {
			value = value[1 : len(value)-1]
		}
		c.addToken(types.TokenKindTemplate, value, node)
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); child != nil && child.Type() == jsNodeTemplateSubstitution {
				c.scan(child)
			}
		}
		return
	}

	if node.ChildCount() == 0 {
		c.addLeaf(node)
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c.scan(node.Child(i))
	}
}

// addLeaf classifies a childless node and records it as a token.
func (c *converter) addLeaf(node *sitter.Node) {
	value := c.text(node)
	if value == "" {
		// Zero width leaves are inserted by error recovery or automatic semicolon insertion
		return
	}

	switch node.Type() {
	case jsNodeNumber:
		c.addToken(types.TokenKindNumeric, value, node)
	case jsNodeTrue, jsNodeFalse:
		c.addToken(types.TokenKindBoolean, value, node)
	case jsNodeNull:
		c.addToken(types.TokenKindNull, value, node)
	case jsNodeIdentifier, jsNodePropertyIdentifier, jsNodeShorthandProperty, jsNodeShorthandPattern,
		jsNodeStatementIdentifier, jsNodeUndefined, "private_property_identifier":
		c.addToken(types.TokenKindIdentifier, value, node)
	case "this", "super":
		c.addToken(types.TokenKindKeyword, value, node)
	case "hash_bang_line":
		return
	default:
		switch {
		case jsKeywords[value]:
			c.addToken(types.TokenKindKeyword, value, node)
		case wordPattern.MatchString(value):
			c.addToken(types.TokenKindIdentifier, value, node)
		default:
			c.addToken(types.TokenKindPunctuator, value, node)
		}
	}
}

// addToken appends a token covering the node.
func (c *converter) addToken(kind types.TokenKind, value string, node *sitter.Node) {
	c.tokens = append(c.tokens, types.Token{Kind: kind, Value: value, Range: nodeRange(node)})
}

// addComment appends a comment covering the node, stripping its delimiters.
func (c *converter) addComment(node *sitter.Node) {
	raw := c.text(node)
	comment := types.Comment{Range: nodeRange(node)}

	switch {
	case strings.HasPrefix(raw, "/*"):
		comment.Block = true
		comment.Text = strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
	case strings.HasPrefix(raw, "//"):
		comment.Text = strings.TrimPrefix(raw, "//")
	case strings.HasPrefix(raw, "<!--"):
		comment.Text = strings.TrimPrefix(raw, "<!--")
	case strings.HasPrefix(raw, "-->"):
		comment.Text = strings.TrimPrefix(raw, "-->")
	default:
		comment.Text = raw
	}
	c.comments = append(c.comments, comment)
}
