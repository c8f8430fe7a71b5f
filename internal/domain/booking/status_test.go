package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
)

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusDeclined, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusDeclined, false},
		{StatusDeclined, StatusConfirmed, false},
		{StatusCompleted, StatusPending, false},
		{StatusDeclined, StatusCompleted, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s should pass", tc.from, tc.to)
		} else {
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition),
				"%s -> %s should be invalid_transition", tc.from, tc.to)
		}
	}
}

func TestTransitionMutatesBooking(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}

	assert.NoError(t, Transition(b, StatusConfirmed))
	assert.Equal(t, "confirmed", b.Status)

	assert.NoError(t, Transition(b, StatusCompleted))
	assert.Equal(t, "completed", b.Status)
}

func TestTransitionRejectsUnknownTarget(t *testing.T) {
	b := &models.Booking{Status: string(StatusPending)}
	err := Transition(b, Status("archived"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	assert.Equal(t, "pending", b.Status)
}

func TestWithinBusinessHours(t *testing.T) {
	hours := map[string]models.DayHours{
		"monday": {Open: "09:00", Close: "17:00"},
		"sunday": {Closed: true},
	}

	monday := mustParse(t, "2026-09-07 10:00")
	assert.True(t, WithinBusinessHours(hours, monday, 30))

	lateMonday := mustParse(t, "2026-09-07 16:45")
	assert.False(t, WithinBusinessHours(hours, lateMonday, 30))

	sunday := mustParse(t, "2026-09-06 10:00")
	assert.False(t, WithinBusinessHours(hours, sunday, 30))

	// No hours configured accepts anything.
	assert.True(t, WithinBusinessHours(nil, monday, 30))
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}
