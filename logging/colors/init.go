package colors

// enabled describes whether ANSI coloring is applied by Colorize.
var enabled bool

// init will ensure that ANSI coloring is enabled on Windows and Unix systems. Note that ANSI coloring is enabled by
// default on Unix system and Windows needs specific kernel calls for enablement
func init() {
	EnableColor()
}

// DisableColor turns off ANSI coloring. Every ColorFunc then returns its input unchanged.
func DisableColor() {
	enabled = false
}

// Enabled returns a boolean indicating whether ANSI coloring is currently applied.
func Enabled() bool {
	return enabled
}
