package abiutils

import (
	"regexp"
	"strings"

	"github.com/iost-studio/contractkit/compilation/types"
)

const (
	// initMethodName is the name of the mandatory contract initializer, which is excluded from the ABI.
	initMethodName = "init"
	// constructorMethodName is the name of the class constructor, which contracts may not declare.
	constructorMethodName = "constructor"
	// privateMethodPrefix marks methods which are not externally callable.
	privateMethodPrefix = "_"
)

// exportTarget describes the right hand side of the last `module.exports = ...` assignment seen.
type exportTarget struct {
	name  string
	found bool
	// rejected is set when an export assignment was found whose right hand side is not an identifier.
	rejected *types.Range
}

// ExtractABI derives the ABI of the class exported by a parsed contract module. Entries are returned in class body
// declaration order, one per public method other than init.
// Returns an error if the module has no exported class, the class cannot be resolved, declares a constructor, lacks
// an init method, or declares a public method with an unsupported parameter or doc-comment type.
func ExtractABI(result *types.ParseResult) ([]types.ABIEntry, error) {
	if result == nil || result.Program == nil || len(result.Program.Body) == 0 {
		return nil, types.NewContractError(types.ErrInvalidSource, nil, "source contains no statements")
	}

	// Resolve the exported class name
	export := findExport(result.Program)
	if !export.found {
		if export.rejected != nil {
			return nil, types.NewContractError(types.ErrNoExport, export.rejected,
				"module.exports should be assigned to an identifier")
		}
		return nil, types.NewContractError(types.ErrNoExport, nil, "you have no exported class in the contract")
	}

	// Resolve the class declaration
	class, err := findClass(result.Program, export.name)
	if err != nil {
		return nil, err
	}

	return extractClassABI(class, result.Comments)
}

// findExport scans top-level statements for `module.exports = <Identifier>`. The last such assignment wins.
func findExport(program *types.Program) exportTarget {
	var target exportTarget
	for _, stmt := range program.Body {
		exprStmt, ok := stmt.(*types.ExpressionStatement)
		if !ok {
			continue
		}
		assign, ok := exprStmt.Expression.(*types.AssignmentExpression)
		if !ok || assign.Operator != "=" || !isModuleExports(assign.Left) {
			continue
		}

		if ident, ok := assign.Right.(*types.Identifier); ok {
			target.name = ident.Name
			target.found = true
		} else if target.rejected == nil {
			r := assign.GetRange()
			target.rejected = &r
		}
	}
	return target
}

// isModuleExports returns a boolean indicating whether the node is the non-computed member access `module.exports`.
func isModuleExports(node types.Node) bool {
	member, ok := node.(*types.MemberExpression)
	if !ok || member.Computed {
		return false
	}
	object, ok := member.Object.(*types.Identifier)
	if !ok || object.Name != "module" {
		return false
	}
	property, ok := member.Property.(*types.Identifier)
	return ok && property.Name == "exports"
}

// findClass returns the single top-level class declaration with the given name.
func findClass(program *types.Program, name string) (*types.ClassDeclaration, error) {
	var match *types.ClassDeclaration
	for _, stmt := range program.Body {
		class, ok := stmt.(*types.ClassDeclaration)
		if !ok || class.ID == nil || class.ID.Name != name {
			continue
		}
		if match != nil {
			r := class.GetRange()
			return nil, types.NewContractError(types.ErrClassResolution, &r,
				"exported class '%s' is declared more than once", name)
		}
		match = class
	}

	if match == nil {
		return nil, types.NewContractError(types.ErrClassResolution, nil,
			"exported identifier '%s' does not name a class declared in the module", name)
	}
	if match.Body == nil {
		r := match.GetRange()
		return nil, types.NewContractError(types.ErrInvalidSource, &r, "class '%s' has no body", name)
	}
	return match, nil
}

// extractClassABI walks the methods of the exported class in declaration order and produces its ABI entries.
func extractClassABI(class *types.ClassDeclaration, comments []types.Comment) ([]types.ABIEntry, error) {
	entries := make([]types.ABIEntry, 0)
	initFound := false

	// cursor is the end offset of the last method processed. Doc comments for a method must start after it.
	cursor := class.Body.Range.Start
	for _, member := range class.Body.Members {
		method, ok := member.(*types.MethodDefinition)
		if !ok || method.Value == nil {
			continue
		}
		key, ok := method.Key.(*types.Identifier)
		if !ok {
			// Computed, string and private-name keys are not callable entry points
			continue
		}

		lastEnd := cursor
		cursor = method.Range.End

		switch {
		case strings.HasPrefix(key.Name, privateMethodPrefix):
			continue
		case key.Name == constructorMethodName:
			return nil, types.NewContractError(types.ErrConstructorNotAllowed, &method.Range,
				"smart contract class shouldn't contain constructor method")
		case key.Name == initMethodName:
			initFound = true
			continue
		}

		entry, err := methodABI(key.Name, method, lastEnd, comments)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if !initFound {
		return nil, types.NewContractError(types.ErrMissingInit, &class.Range,
			"class '%s' has no init method", class.ID.Name)
	}
	return entries, nil
}

// methodABI builds the ABI entry for a public method, applying any `@param` annotations found in the closest doc
// comment between lastEnd and the method start.
func methodABI(name string, method *types.MethodDefinition, lastEnd int, comments []types.Comment) (types.ABIEntry, error) {
	params := method.Value.Params
	paramNames := make([]string, len(params))
	for i, param := range params {
		ident, ok := param.(*types.Identifier)
		if !ok {
			r := param.GetRange()
			return types.ABIEntry{}, types.NewContractError(types.ErrInvalidParameter, &r,
				"invalid method parameter type. must be Identifier, got %s", param.GetNodeType())
		}
		paramNames[i] = ident.Name
	}

	entry := types.NewABIEntry(name, len(params))
	comment := closestComment(comments, lastEnd, method.Range.Start)
	if comment == nil {
		return entry, nil
	}

	for i, paramName := range paramNames {
		typeToken, ok := matchParamAnnotation(comment.Text, paramName)
		if !ok {
			continue
		}
		paramType, err := types.NormalizeParamType(typeToken)
		if err != nil {
			if contractErr, ok := err.(*types.ContractError); ok {
				contractErr.Range = &comment.Range
			}
			return types.ABIEntry{}, err
		}
		entry.Args[i] = paramType
	}
	return entry, nil
}

// closestComment returns the last comment lying strictly between the start and end offsets, or nil if there is none.
func closestComment(comments []types.Comment, start int, end int) *types.Comment {
	for i := len(comments) - 1; i >= 0; i-- {
		if comments[i].Range.Start > start && comments[i].Range.End < end {
			return &comments[i]
		}
	}
	return nil
}

// matchParamAnnotation searches comment text for `@param {type} name` or, failing that, `@param name {type}`.
// Returns the type token and a boolean indicating whether either form matched.
func matchParamAnnotation(text string, paramName string) (string, bool) {
	quoted := regexp.QuoteMeta(paramName)
	typeFirst := regexp.MustCompile(`@param\s*\{([a-zA-Z]+)\}\s*` + quoted + `(?:[^\w$]|$)`)
	if match := typeFirst.FindStringSubmatch(text); match != nil {
		return match[1], true
	}
	nameFirst := regexp.MustCompile(`@param\s*` + quoted + `\s*\{([a-zA-Z]+)\}`)
	if match := nameFirst.FindStringSubmatch(text); match != nil {
		return match[1], true
	}
	return "", false
}
