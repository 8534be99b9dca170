package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// The following errors describe the kinds of failure that can occur while processing contract source. Concrete
// errors are *ContractError values which unwrap to one of these, so callers should match with errors.Is.
var (
	// ErrParse indicates the source is not syntactically valid.
	ErrParse = errors.New("parse error")
	// ErrInvalidSource indicates the source parsed but is empty or structurally malformed.
	ErrInvalidSource = errors.New("invalid source")
	// ErrNoExport indicates no `module.exports = <Identifier>` assignment was found.
	ErrNoExport = errors.New("no exported class")
	// ErrClassResolution indicates the exported identifier does not name a class declared in the module.
	ErrClassResolution = errors.New("exported class not found")
	// ErrConstructorNotAllowed indicates the contract class declares a constructor.
	ErrConstructorNotAllowed = errors.New("constructor not allowed")
	// ErrMissingInit indicates the contract class has no init method.
	ErrMissingInit = errors.New("init not found")
	// ErrInvalidParameter indicates a public method parameter is not a plain identifier.
	ErrInvalidParameter = errors.New("invalid method parameter")
	// ErrUnknownParamType indicates a `@param` annotation names an unsupported type.
	ErrUnknownParamType = errors.New("unknown param type")
	// ErrConstruct indicates a forbidden construct (reserved names, regular expressions, try/catch) was found.
	ErrConstruct = errors.New("forbidden construct")
)

// ContractError describes a failure to process contract source.
type ContractError struct {
	// Kind is one of the Err* values declared in this package.
	Kind error
	// Message describes the failure.
	Message string
	// Range optionally points at the offending source.
	Range *Range
}

// NewContractError creates a ContractError of the given kind. The range may be nil.
func NewContractError(kind error, r *Range, format string, args ...any) *ContractError {
	return &ContractError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Range:   r,
	}
}

// Error returns the error message string, implementing the `error` interface.
func (e *ContractError) Error() string {
	if e.Range != nil {
		return fmt.Sprintf("%v: %s (at offset %d)", e.Kind, e.Message, e.Range.Start)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

// Unwrap returns the error kind so the error can be matched with errors.Is.
func (e *ContractError) Unwrap() error {
	return e.Kind
}
