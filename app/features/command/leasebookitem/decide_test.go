package leasebookitem_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/app/features/command/leasebookitem"
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

var occurredAt = time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)

func givenPolicy(leaseDays uint) core.Policy {
	return core.PolicyFrom(lendingstore.PolicySettings{DefaultLeaseDays: leaseDays, DefaultBookingDays: 3})
}

func Test_Decide_NewLease_AppliesDefaults(t *testing.T) {
	// arrange
	command := leasebookitem.BuildCommand(uuid.New(), uuid.New(), occurredAt)

	// act
	result := leasebookitem.Decide(command, nil, givenPolicy(14))

	// assert
	require.NoError(t, result.HasError())
	require.True(t, result.HasWrite())
	assert.Equal(t, command.BookItemID, result.Write.BookItemID)
	assert.Equal(t, command.MemberID, result.Write.MemberID)
	assert.Equal(t, lendingstore.MustParseDate("2024-01-01"), result.Write.LeasedOn)
	assert.Equal(t, lendingstore.MustParseDate("2024-01-15"), result.Write.DueDate)
	assert.Equal(t, lendingstore.DefaultLeaseCondition, result.Write.Condition)
	assert.True(t, result.Write.IsOpen())
}

func Test_Decide_DueDateFollowsGivenLeasedOn(t *testing.T) {
	// arrange
	command := leasebookitem.BuildCommand(uuid.New(), uuid.New(), occurredAt)
	command.LeasedOn = lendingstore.MustParseDate("2023-12-25")

	// act
	result := leasebookitem.Decide(command, nil, givenPolicy(7))

	// assert
	require.True(t, result.HasWrite())
	assert.Equal(t, lendingstore.MustParseDate("2024-01-01"), result.Write.DueDate)
}

func Test_Decide_KeepsExplicitDueDate(t *testing.T) {
	// arrange
	command := leasebookitem.BuildCommand(uuid.New(), uuid.New(), occurredAt)
	command.DueDate = lendingstore.MustParseDate("2024-02-01")

	// act
	result := leasebookitem.Decide(command, nil, core.NoPolicy())

	// assert
	require.NoError(t, result.HasError(), "no policy is needed when the due date is given")
	assert.Equal(t, lendingstore.MustParseDate("2024-02-01"), result.Write.DueDate)
}

func Test_Decide_NeverRecomputesStoredDueDate(t *testing.T) {
	// arrange
	existing := lendingstore.Lease{
		ID:         uuid.New(),
		BookItemID: uuid.New(),
		MemberID:   uuid.New(),
		Condition:  lendingstore.ConditionGood,
		LeasedOn:   lendingstore.MustParseDate("2024-01-01"),
		DueDate:    lendingstore.MustParseDate("2024-01-15"),
	}
	command := leasebookitem.Command{
		LeaseID:    existing.ID,
		BookItemID: existing.BookItemID,
		MemberID:   existing.MemberID,
		LeasedOn:   lendingstore.MustParseDate("2024-01-05"),
		OccurredAt: occurredAt,
	}

	// act
	result := leasebookitem.Decide(command, &existing, givenPolicy(30))

	// assert
	require.True(t, result.HasWrite())
	assert.Equal(t, lendingstore.MustParseDate("2024-01-05"), result.Write.LeasedOn)
	assert.Equal(t, existing.DueDate, result.Write.DueDate)
}

func Test_Decide_UnchangedLeaseIsIdempotent(t *testing.T) {
	// arrange
	existing := lendingstore.Lease{
		ID:         uuid.New(),
		BookItemID: uuid.New(),
		MemberID:   uuid.New(),
		Condition:  lendingstore.ConditionGood,
		LeasedOn:   lendingstore.MustParseDate("2024-01-01"),
		DueDate:    lendingstore.MustParseDate("2024-01-15"),
	}
	command := leasebookitem.Command{
		LeaseID:    existing.ID,
		BookItemID: existing.BookItemID,
		MemberID:   existing.MemberID,
		OccurredAt: occurredAt.Add(48 * time.Hour),
	}

	// act
	result := leasebookitem.Decide(command, &existing, givenPolicy(14))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasWrite())
}

func Test_Decide_Errors(t *testing.T) {
	withUnknownCondition := leasebookitem.BuildCommand(uuid.New(), uuid.New(), occurredAt)
	withUnknownCondition.Condition = "Pristine"

	testCases := []struct {
		description string
		command     leasebookitem.Command
		policy      core.Policy
		wantErr     error
	}{
		{
			description: "no policy and no due date",
			command:     leasebookitem.BuildCommand(uuid.New(), uuid.New(), occurredAt),
			policy:      core.NoPolicy(),
			wantErr:     core.ErrPolicyNotConfigured,
		},
		{
			description: "unknown condition",
			command:     withUnknownCondition,
			policy:      givenPolicy(14),
			wantErr:     core.ErrInvalidCondition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := leasebookitem.Decide(tc.command, nil, tc.policy)

			// assert
			assert.ErrorIs(t, result.HasError(), tc.wantErr)
			assert.False(t, result.HasWrite())
		})
	}
}
