package compilation

import (
	"github.com/iost-studio/contractkit/compilation/abiutils"
	"github.com/iost-studio/contractkit/compilation/parser"
	"github.com/iost-studio/contractkit/compilation/types"
	"github.com/iost-studio/contractkit/compilation/validation"
	"github.com/iost-studio/contractkit/logging"
)

// GenerateDescriptor runs the ABI generation pipeline over contract source: the source is parsed, checked for
// forbidden constructs and the ABI of its exported class is extracted and packaged as a descriptor. A nil config
// uses the default configuration.
// Returns the descriptor, or an error if any stage rejects the source. No partial descriptor is returned.
func GenerateDescriptor(source string, config *CompilationConfig) (*types.ContractDescriptor, error) {
	if config == nil {
		config = NewCompilationConfig()
	}
	logger := logging.GlobalLogger.NewSubLogger("module", logging.COMPILATION_SERVICE)

	// Parse the source
	result, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed contract source into ", len(result.Tokens), " tokens and ", len(result.Comments), " comments")

	// Reject forbidden constructs before looking at the structure
	if err = validation.ValidateTokens(result.Tokens, config.ReservedNames); err != nil {
		return nil, err
	}
	if config.ForbidDestructuring {
		if err = validation.ValidatePatterns(result.Program); err != nil {
			return nil, err
		}
	}

	// Extract the ABI and package it
	entries, err := abiutils.ExtractABI(result)
	if err != nil {
		return nil, err
	}
	descriptor := BuildDescriptor(entries, config)
	logger.Debug("Generated ABI with ", len(descriptor.ABI), " entries")
	return descriptor, nil
}

// GenerateABI runs the ABI generation pipeline over contract source and returns the descriptor in its canonical
// textual form. A nil config uses the default configuration.
func GenerateABI(source string, config *CompilationConfig) (string, error) {
	descriptor, err := GenerateDescriptor(source, config)
	if err != nil {
		return "", err
	}
	return descriptor.Marshal()
}
