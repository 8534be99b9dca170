package restoration

import (
	"github.com/pkg/errors"
)

// Config describes the instrumentation names and convergence bounds used to restore instrumented contract source.
type Config struct {
	// CounterName is the name of the instruction counter whose `incr` calls are removed.
	CounterName string `json:"counterName"`

	// TemplateTagName is the tag wrapped around template literals.
	TemplateTagName string `json:"templateTagName"`

	// SpreadName is the wrapper applied to spread arguments.
	SpreadName string `json:"spreadName"`

	// BinaryOpName is the wrapper which replaces binary operators, called as `name(left, right, 'op')`.
	BinaryOpName string `json:"binaryOpName"`

	// GreedyAfterIterations is the number of narrow passes after which the greedy fallback patterns are applied as
	// well.
	GreedyAfterIterations int `json:"greedyAfterIterations"`

	// MaxIterations is the number of passes after which restoration fails if wrapper calls remain.
	MaxIterations int `json:"maxIterations"`
}

// DefaultConfig returns a Config with the names used by the on-chain compiler and the default convergence bounds.
func DefaultConfig() Config {
	return Config{
		CounterName:           "_IOSTInstruction_counter",
		TemplateTagName:       "_IOSTTemplateTag",
		SpreadName:            "_IOSTSpreadElement",
		BinaryOpName:          "_IOSTBinaryOp",
		GreedyAfterIterations: 100,
		MaxIterations:         200,
	}
}

// Validate checks the configuration for errors. Returns an error describing the first invalid option found.
func (c Config) Validate() error {
	names := map[string]string{
		"counterName":     c.CounterName,
		"templateTagName": c.TemplateTagName,
		"spreadName":      c.SpreadName,
		"binaryOpName":    c.BinaryOpName,
	}
	seen := make(map[string]string, len(names))
	for _, key := range []string{"counterName", "templateTagName", "spreadName", "binaryOpName"} {
		name := names[key]
		if name == "" {
			return errors.Errorf("restoration.%s must not be empty", key)
		}
		if other, exists := seen[name]; exists {
			return errors.Errorf("restoration.%s and restoration.%s must be distinct, both are '%s'", other, key, name)
		}
		seen[name] = key
	}

	if c.GreedyAfterIterations <= 0 {
		return errors.Errorf("restoration.greedyAfterIterations must be positive, got %d", c.GreedyAfterIterations)
	}
	if c.MaxIterations <= c.GreedyAfterIterations {
		return errors.Errorf("restoration.maxIterations (%d) must be greater than restoration.greedyAfterIterations (%d)",
			c.MaxIterations, c.GreedyAfterIterations)
	}
	return nil
}
