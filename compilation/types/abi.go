package types

// ParamType describes the declared type of a contract method argument.
type ParamType string

const (
	// ParamTypeString is the default type for arguments without a documentation annotation.
	ParamTypeString ParamType = "string"
	// ParamTypeNumber represents a numeric argument.
	ParamTypeNumber ParamType = "number"
	// ParamTypeBool represents a boolean argument. Annotations may spell it `bool` or `boolean`.
	ParamTypeBool ParamType = "bool"
	// ParamTypeJSON represents an argument carrying a JSON document.
	ParamTypeJSON ParamType = "json"
)

// NormalizeParamType converts the type token of a `@param` annotation into a ParamType. Returns an error of kind
// ErrUnknownParamType if the token does not name a supported type.
func NormalizeParamType(token string) (ParamType, error) {
	switch token {
	case "string":
		return ParamTypeString, nil
	case "number":
		return ParamTypeNumber, nil
	case "bool", "boolean":
		return ParamTypeBool, nil
	case "json":
		return ParamTypeJSON, nil
	default:
		return "", NewContractError(ErrUnknownParamType, nil,
			"param type must be either 'string', 'number', 'bool/boolean' or 'json', got '%s'", token)
	}
}

// AmountLimit describes a token spending limit attached to an ABI entry. Generated ABIs never carry any, but the
// field is part of the descriptor format.
type AmountLimit struct {
	Token string `json:"token"`
	Value string `json:"val"`
}

// ABIEntry describes a single externally callable contract method.
type ABIEntry struct {
	// Name is the method name.
	Name string `json:"name"`
	// Args holds the type of each positional argument.
	Args []ParamType `json:"args"`
	// AmountLimit is always empty for generated entries.
	AmountLimit []AmountLimit `json:"amount_limit"`
	// Description is always empty for generated entries.
	Description string `json:"description"`
}

// NewABIEntry creates an ABIEntry for a method with the given name and argument count. All arguments default to
// ParamTypeString.
func NewABIEntry(name string, argCount int) ABIEntry {
	args := make([]ParamType, argCount)
	for i := range args {
		args[i] = ParamTypeString
	}
	return ABIEntry{
		Name:        name,
		Args:        args,
		AmountLimit: make([]AmountLimit, 0),
		Description: "",
	}
}
