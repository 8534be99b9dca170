package parser

import (
	"context"
	"strings"

	"github.com/iost-studio/contractkit/compilation/types"
	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// errorSnippetLength bounds the amount of offending source quoted in a parse error.
const errorSnippetLength = 40

// Parse parses contract source into a syntax tree with its token and comment streams attached. Every node, token
// and comment carries a [start, end) byte range into source.
// Returns an error of kind types.ErrInvalidSource if the source is blank, or types.ErrParse if it is not valid
// JavaScript.
func Parse(source string) (*types.ParseResult, error) {
	if strings.TrimSpace(source) == "" {
		return nil, types.NewContractError(types.ErrInvalidSource, nil, "no code provided")
	}

	// Every call gets its own parser, tree-sitter parsers are not safe for concurrent use.
	content := []byte(source)
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(javascript.GetLanguage())

	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, errors.Wrap(types.NewContractError(types.ErrParse, nil, "%v", err), "tree-sitter parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, content)
	}
	if err := checkModuleGrammar(root, content); err != nil {
		return nil, err
	}

	c := &converter{source: content}
	program := c.convertProgram(root)
	c.scan(root)

	return &types.ParseResult{
		Program:  program,
		Tokens:   c.tokens,
		Comments: c.comments,
	}, nil
}

// syntaxError builds a parse error pointing at the first erroneous or missing node below root.
func syntaxError(root *sitter.Node, content []byte) error {
	node := firstErrorNode(root)
	if node == nil {
		return types.NewContractError(types.ErrParse, nil, "unexpected syntax")
	}

	r := nodeRange(node)
	if node.IsMissing() {
		return types.NewContractError(types.ErrParse, &r, "missing '%s'", node.Type())
	}

	snippet := string(content[node.StartByte():node.EndByte()])
	if len(snippet) > errorSnippetLength {
		snippet = snippet[:errorSnippetLength] + "..."
	}
	return types.NewContractError(types.ErrParse, &r, "unexpected token near '%s'", strings.TrimSpace(snippet))
}

// firstErrorNode returns the first node, in source order, which is an error or a missing node.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.IsMissing() || child.HasError() {
			if found := firstErrorNode(child); found != nil {
				return found
			}
		}
	}
	return nil
}

// checkModuleGrammar rejects constructs the tree-sitter grammar accepts but strict module code does not: JSX,
// with statements and legacy octal literals.
func checkModuleGrammar(node *sitter.Node, content []byte) error {
	kind := node.Type()
	switch {
	case strings.HasPrefix(kind, "jsx_"):
		r := nodeRange(node)
		return types.NewContractError(types.ErrParse, &r, "unexpected token '<'")
	case kind == "with_statement":
		r := nodeRange(node)
		return types.NewContractError(types.ErrParse, &r, "strict mode code may not include a with statement")
	case kind == "number":
		if text := node.Content(content); isLegacyOctal(text) {
			r := nodeRange(node)
			return types.NewContractError(types.ErrParse, &r, "octal literals are not allowed in strict mode: '%s'", text)
		}
		return nil
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil {
			if err := checkModuleGrammar(child, content); err != nil {
				return err
			}
		}
	}
	return nil
}

// isLegacyOctal reports whether a numeric literal is written with a leading zero followed by a digit, like 010 or 08.
func isLegacyOctal(text string) bool {
	return len(text) > 1 && text[0] == '0' && text[1] >= '0' && text[1] <= '9'
}

// nodeRange converts the byte span of a tree-sitter node into a types.Range.
func nodeRange(node *sitter.Node) types.Range {
	return types.Range{Start: int(node.StartByte()), End: int(node.EndByte())}
}
