package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/app/shared/shell/config"
	"github.com/mikietechie/sapp-library/app/shared/shell/presenter"
)

func givenDatabase(t *testing.T) {
	t.Helper()

	t.Setenv(config.EnvDBDriver, config.DriverSQLite)
	t.Setenv(config.EnvSQLitePath, filepath.Join(t.TempDir(), "library.db"))
	t.Setenv(config.EnvLogLevel, "error")

	run(t, "migrate")
}

// run executes the CLI with args and returns what it printed to stdout.
func run(t *testing.T, args ...string) []byte {
	t.Helper()

	var out bytes.Buffer

	c := newCLI()
	c.root.SetOut(&out)
	c.root.SetErr(io.Discard)
	c.root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))

	require.NoError(t, c.Execute(), "sapp-library %v", args)

	return out.Bytes()
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()

	var v T
	require.NoError(t, jsoniter.Unmarshal(raw, &v), string(raw))

	return v
}

func Test_CLI_LendingRoundTrip(t *testing.T) {
	// arrange
	givenDatabase(t)

	run(t, "policy", "set", "--lease-days", "7", "--booking-days", "2")
	bookType := decode[presenter.BookTypeView](t, run(t, "booktype", "add", "Paperback"))
	book := decode[presenter.BookView](t, run(t, "book", "add", "Dune", "--type", bookType.ID))
	restock := decode[presenter.RestockView](t, run(t, "restock", "--book", book.ID, "--number", "2", "--from", "1", "--prefix", "DUNE", "--condition", "New"))
	member := decode[presenter.MemberView](t, run(t, "member", "save", "--name", "Ada Reader"))

	// act
	lease := decode[presenter.LeaseView](t, run(t,
		"lease", "create", "--item", restock.Items[0].ID, "--member", member.ID, "--leased-on", "2024-01-01"))
	returned := decode[presenter.LeaseView](t, run(t, "lease", "return", lease.ID, "--on", "2024-01-03"))
	available := decode[[]presenter.BookItemView](t, run(t, "item", "list", "--filter", "available=true,book="+book.ID))
	retired := decode[presenter.BookItemView](t, run(t,
		"item", "retire", restock.Items[1].ID, "--on", "2024-02-01", "--reason", "<b>torn</b> pages"))

	// assert
	assert.Equal(t, []string{"DUNE-1", "DUNE-2"}, restock.ProducedCodes)
	assert.Equal(t, "English", book.Language)
	assert.Equal(t, "One", member.Role)
	assert.True(t, member.Active)

	assert.Equal(t, "2024-01-08", lease.DueDate)
	require.NotNil(t, lease.BookItemAvailable)
	assert.False(t, *lease.BookItemAvailable)

	assert.Equal(t, "2024-01-03", returned.Returned)
	require.NotNil(t, returned.BookItemAvailable)
	assert.True(t, *returned.BookItemAvailable)

	assert.Len(t, available, 2)

	assert.Equal(t, "2024-02-01", retired.RetiredOn)
	assert.Equal(t, "torn pages", retired.RetirementReason)
}

func Test_CLI_BookingAndStats(t *testing.T) {
	// arrange
	givenDatabase(t)

	run(t, "policy", "set")
	genre := decode[presenter.GenreView](t, run(t, "genre", "add", "Science Fiction"))
	bookType := decode[presenter.BookTypeView](t, run(t, "booktype", "add", "Hardcover"))
	book := decode[presenter.BookView](t, run(t, "book", "add", "Solaris", "--type", bookType.ID, "--genre", genre.ID))
	member := decode[presenter.MemberView](t, run(t, "member", "save", "--user-ref", "u-1", "--directory", "u-1=Stanisław Lem"))

	// act
	booking := decode[presenter.BookingView](t, run(t, "booking", "place", "--book", book.ID, "--member", member.ID))
	pending := decode[[]presenter.BookingView](t, run(t, "booking", "list", "--filter", "status=Pending"))
	stats := decode[map[string]int](t, run(t, "stats", "genres"))

	// assert
	assert.Equal(t, "Stanisław Lem", member.FullName)
	assert.Equal(t, "Pending", booking.Status)
	require.Len(t, pending, 1)
	assert.Equal(t, booking.ID, pending[0].ID)
	assert.Equal(t, map[string]int{"Science Fiction": 1, "other": 0}, stats)
}

func Test_CLI_ReportsInvalidInput(t *testing.T) {
	givenDatabase(t)

	testCases := []struct {
		description string
		args        []string
	}{
		{description: "malformed id", args: []string{"lease", "return", "not-a-uuid"}},
		{description: "unknown filter", args: []string{"member", "list", "--filter", "colour=red"}},
		{description: "policy not configured", args: []string{"policy", "show"}},
		{
			description: "restock without condition",
			args:        []string{"restock", "--book", "6f1c7a3e-2b1d-4c55-9d0e-3a8f1b2c4d5e", "--number", "1", "--from", "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c := newCLI()
			c.root.SetOut(io.Discard)
			c.root.SetErr(io.Discard)
			c.root.SetArgs(tc.args)

			assert.Error(t, c.Execute())
		})
	}
}
