package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeHandledError indicates that there was an error which was already logged to the user, so it should not be
	// printed again at the top-level.
	ExitCodeHandledError = 6

	// ExitCodeContractRejected indicates the contract source was rejected, either by construct validation or by ABI
	// extraction, or that its instrumentation could not be undone.
	ExitCodeContractRejected = 7
)
