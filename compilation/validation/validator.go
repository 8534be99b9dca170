package validation

import (
	"github.com/iost-studio/contractkit/compilation/types"
	"golang.org/x/exp/slices"
)

// DefaultReservedNames holds the identifiers injected by the on-chain instrumentation pass. Contract source may not
// use them.
var DefaultReservedNames = []string{
	"_IOSTInstruction_counter",
	"_IOSTBinaryOp",
	"IOSTInstruction",
	"_IOSTTemplateTag",
	"_IOSTSpreadElement",
}

// ValidateTokens scans a token stream for constructs which are not permitted in contract source: identifiers or
// string/template literals equal to a reserved name, regular expression literals and try/catch. Returns an error of
// kind types.ErrConstruct for the first violation found, in source order.
func ValidateTokens(tokens []types.Token, reserved []string) error {
	for i := range tokens {
		token := &tokens[i]
		switch token.Kind {
		case types.TokenKindIdentifier, types.TokenKindString, types.TokenKindTemplate:
			if slices.Contains(reserved, token.Value) {
				return types.NewContractError(types.ErrConstruct, &token.Range,
					"use of reserved instrumentation name '%s' is not allowed", token.Value)
			}
		case types.TokenKindRegularExpression:
			return types.NewContractError(types.ErrConstruct, &token.Range,
				"use of RegularExpression is not allowed: %s", token.Value)
		case types.TokenKindKeyword:
			if token.Value == "try" || token.Value == "catch" {
				return types.NewContractError(types.ErrConstruct, &token.Range, "use of try catch is not supported")
			}
		}
	}
	return nil
}

// ValidatePatterns rejects destructuring patterns anywhere in the program. Returns an error of kind
// types.ErrConstruct pointing at the first object or array pattern found.
func ValidatePatterns(program *types.Program) error {
	var violation types.Node
	types.Inspect(program, func(node types.Node) bool {
		if violation != nil {
			return false
		}
		switch node.(type) {
		case *types.ObjectPattern, *types.ArrayPattern:
			violation = node
			return false
		}
		return true
	})

	if violation == nil {
		return nil
	}
	r := violation.GetRange()
	return types.NewContractError(types.ErrConstruct, &r, "use of ArrayPattern or ObjectPattern is not allowed")
}
