package config

import (
	"github.com/iost-studio/contractkit/compilation"
	"github.com/iost-studio/contractkit/restoration"
	"github.com/rs/zerolog"
)

// GetDefaultProjectConfig obtains a default configuration for a project.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Compilation: compilation.NewCompilationConfig(),
		Restoration: restoration.DefaultConfig(),
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel,
			LogDirectory: "",
			NoColor:      false,
		},
	}
}
