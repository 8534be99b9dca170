package compilation

import "github.com/iost-studio/contractkit/compilation/types"

// BuildDescriptor packages ABI entries with the language tag and version of the provided config. A nil config uses
// the default configuration.
func BuildDescriptor(entries []types.ABIEntry, config *CompilationConfig) *types.ContractDescriptor {
	if config == nil {
		config = NewCompilationConfig()
	}
	if entries == nil {
		entries = make([]types.ABIEntry, 0)
	}
	return &types.ContractDescriptor{
		Language: config.Language,
		Version:  config.Version,
		ABI:      entries,
	}
}
