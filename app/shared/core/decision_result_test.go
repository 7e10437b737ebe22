package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikietechie/sapp-library/app/shared/core"
)

func Test_DecisionResult_Outcomes(t *testing.T) {
	errRule := errors.New("rule violated")

	idempotent := core.IdempotentDecision[string]()
	success := core.SuccessDecision("write me")
	failure := core.ErrorDecision[string](errRule)

	assert.True(t, idempotent.IsIdempotent())
	assert.False(t, idempotent.HasWrite())
	assert.NoError(t, idempotent.HasError())

	assert.True(t, success.HasWrite())
	assert.Equal(t, "write me", success.Write)
	assert.NoError(t, success.HasError())

	assert.False(t, failure.HasWrite())
	assert.ErrorIs(t, failure.HasError(), errRule)
}
