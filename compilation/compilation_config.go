package compilation

import (
	"github.com/Masterminds/semver"
	"github.com/iost-studio/contractkit/compilation/validation"
	"github.com/pkg/errors"
)

const (
	// DefaultLanguage is the language tag written into generated descriptors.
	DefaultLanguage = "javascript"
	// DefaultVersion is the descriptor format version written into generated descriptors.
	DefaultVersion = "1.0.0"
)

// CompilationConfig describes the configuration options used to generate the ABI of a contract.
type CompilationConfig struct {
	// Language is the language tag written into the descriptor.
	Language string `json:"language"`

	// Version is the descriptor format version written into the descriptor. It must be a semantic version.
	Version string `json:"version"`

	// ReservedNames holds the instrumentation names which contract source may not use as identifiers or literals.
	ReservedNames []string `json:"reservedNames"`

	// ForbidDestructuring rejects object and array destructuring patterns anywhere in the source when set.
	ForbidDestructuring bool `json:"forbidDestructuring"`
}

// NewCompilationConfig returns a CompilationConfig with default values.
func NewCompilationConfig() *CompilationConfig {
	return &CompilationConfig{
		Language:            DefaultLanguage,
		Version:             DefaultVersion,
		ReservedNames:       append([]string(nil), validation.DefaultReservedNames...),
		ForbidDestructuring: false,
	}
}

// Validate checks the configuration for errors. Returns an error describing the first invalid option found.
func (c *CompilationConfig) Validate() error {
	if c.Language == "" {
		return errors.New("compilation.language must not be empty")
	}
	if _, err := semver.NewVersion(c.Version); err != nil {
		return errors.Errorf("compilation.version '%s' is not a valid semantic version: %v", c.Version, err)
	}
	if len(c.ReservedNames) == 0 {
		return errors.New("compilation.reservedNames must contain at least one name")
	}
	for _, name := range c.ReservedNames {
		if name == "" {
			return errors.New("compilation.reservedNames must not contain an empty name")
		}
	}
	return nil
}
