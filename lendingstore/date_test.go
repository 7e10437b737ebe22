package lendingstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/lendingstore"
)

func Test_Date_AddDays_CrossesMonthBoundary(t *testing.T) {
	// arrange
	leasedOn := lendingstore.NewDate(2024, time.January, 28)

	// act
	due := leasedOn.AddDays(7)

	// assert
	assert.Equal(t, "2024-02-04", due.String())
}

func Test_Date_ZeroValue_IsNull(t *testing.T) {
	var d lendingstore.Date

	value, err := d.Value()

	assert.NoError(t, err)
	assert.Nil(t, value)
	assert.True(t, d.IsZero())
	assert.Equal(t, "", d.String())
	assert.True(t, d.AddDays(3).IsZero())
}

func Test_Date_Scan(t *testing.T) {
	tests := []struct {
		name     string
		src      any
		expected string
	}{
		{name: "nil", src: nil, expected: ""},
		{name: "time", src: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), expected: "2024-03-01"},
		{name: "text", src: "2024-03-31", expected: "2024-03-31"},
		{name: "text_with_time", src: "2024-03-31T00:00:00Z", expected: "2024-03-31"},
		{name: "bytes", src: []byte("2024-01-08"), expected: "2024-01-08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d lendingstore.Date

			err := d.Scan(tt.src)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func Test_Date_Scan_RejectsUnknownType(t *testing.T) {
	var d lendingstore.Date

	assert.Error(t, d.Scan(42))
}

func Test_Date_TextRoundTrip(t *testing.T) {
	// arrange
	original := lendingstore.NewDate(2024, time.February, 29)

	// act
	text, err := original.MarshalText()
	require.NoError(t, err)

	var parsed lendingstore.Date
	err = parsed.UnmarshalText(text)

	// assert
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}

func Test_ComputeAvailability(t *testing.T) {
	assert.True(t, lendingstore.ComputeAvailability(0))
	assert.False(t, lendingstore.ComputeAvailability(1))
	assert.False(t, lendingstore.ComputeAvailability(2))
}
