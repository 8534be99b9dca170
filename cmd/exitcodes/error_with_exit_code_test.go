package exitcodes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInnerErrorAndExitCode(t *testing.T) {
	inner := errors.New("rejected")

	err, code := GetInnerErrorAndExitCode(nil)
	assert.NoError(t, err)
	assert.Equal(t, ExitCodeSuccess, code)

	err, code = GetInnerErrorAndExitCode(inner)
	assert.Equal(t, inner, err)
	assert.Equal(t, ExitCodeGeneralError, code)

	err, code = GetInnerErrorAndExitCode(NewErrorWithExitCode(inner, ExitCodeContractRejected))
	assert.Equal(t, inner, err)
	assert.Equal(t, ExitCodeContractRejected, code)

	// Wrapped exit code errors are still found
	wrapped := fmt.Errorf("command failed: %w", NewErrorWithExitCode(inner, ExitCodeHandledError))
	err, code = GetInnerErrorAndExitCode(wrapped)
	assert.Equal(t, inner, err)
	assert.Equal(t, ExitCodeHandledError, code)
	assert.True(t, errors.Is(wrapped, inner))
}
