package restockbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mikietechie/sapp-library/app/features/command/restockbook"
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

var occurredAt = time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)

func Test_Command_Action_AppliesDefaults(t *testing.T) {
	// arrange
	command := restockbook.BuildCommand(uuid.New(), 3, 1, "", "librarian", occurredAt)
	command.Notes = "<b>donated</b> by the school"

	// act
	action := command.Action()

	// assert
	assert.Equal(t, "2024-05-01", action.Prefix)
	assert.Empty(t, action.Condition, "condition has no default")
	assert.Equal(t, "donated by the school", action.Notes)
	assert.Equal(t, "librarian", action.CreatedBy)
	assert.Equal(t, "librarian", action.UpdatedBy)
}

func Test_Command_Action_KeepsExplicitPrefixAndCondition(t *testing.T) {
	command := restockbook.BuildCommand(uuid.New(), 1, 1, lendingstore.ConditionNew, "librarian", occurredAt)
	command.Prefix = "SHELF-A"
	command.Condition = lendingstore.ConditionFair

	action := command.Action()

	assert.Equal(t, "SHELF-A", action.Prefix)
	assert.Equal(t, lendingstore.ConditionFair, action.Condition)
}

func Test_Clean_RejectsZeroCopies(t *testing.T) {
	// arrange
	command := restockbook.BuildCommand(uuid.New(), 0, 1, lendingstore.ConditionNew, "librarian", occurredAt)

	// act
	err := restockbook.Clean(command)

	// assert
	assert.ErrorIs(t, err, core.ErrNumberOfBooksRequired)
}

func Test_Clean_RejectsMissingCondition(t *testing.T) {
	// arrange
	command := restockbook.BuildCommand(uuid.New(), 2, 0, "", "librarian", occurredAt)

	// act
	err := restockbook.Clean(command)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidCondition)
	assert.True(t, core.IsValidationError(err))
}

func Test_Clean_AcceptsStartingSequenceAtZero(t *testing.T) {
	command := restockbook.BuildCommand(uuid.New(), 2, 0, lendingstore.ConditionGood, "librarian", occurredAt)

	assert.NoError(t, restockbook.Clean(command))
}
