package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

func Test_StatusFromError(t *testing.T) {
	assert.Equal(t, shell.StatusCanceled, shell.StatusFromError(fmt.Errorf("load: %w", context.Canceled)))
	assert.Equal(t, shell.StatusTimeout, shell.StatusFromError(context.DeadlineExceeded))
	assert.Equal(t, shell.StatusConcurrencyConflict, shell.StatusFromError(lendingstore.ErrConcurrencyConflict))
	assert.Equal(t, shell.StatusError, shell.StatusFromError(errors.New("boom")))
}

func Test_BusinessOutcome(t *testing.T) {
	assert.Equal(t, shell.StatusIdempotent, shell.BusinessOutcome(shell.NewIdempotentResult(shell.RetryMetrics{Attempts: 1})))
	assert.Equal(t, shell.StatusSuccess, shell.BusinessOutcome(shell.NewSuccessResult(shell.RetryMetrics{Attempts: 1})))
}

func Test_HandlerResult_CarriesRetryMetrics(t *testing.T) {
	// arrange
	metrics := shell.RetryMetrics{
		Attempts:         4,
		TotalDelay:       70 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	}

	// act
	result := shell.NewErrorResult(metrics)

	// assert
	assert.Equal(t, shell.HandlerResult{
		RetryAttempts:    4,
		TotalRetryDelay:  70 * time.Millisecond,
		LastErrorType:    "concurrency_conflict",
		RetriesExhausted: true,
	}, result)
}

func Test_ToMilliseconds(t *testing.T) {
	assert.InDelta(t, 1.5, shell.ToMilliseconds(1500*time.Microsecond), 0.0001)
}
