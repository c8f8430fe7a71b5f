package booking

import (
	"strings"
	"time"

	"github.com/legwalet/le-barber/internal/httperr"
	"github.com/legwalet/le-barber/internal/models"
	"github.com/legwalet/le-barber/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

func Transition(b *models.Booking, to Status) error {
	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}
	b.Status = string(to)
	return nil
}

// StartsAt resolves the booking's slot in the platform timezone.
func StartsAt(b *models.Booking) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time,
		timezone.Location(timezone.DefaultTimezone))
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeValidation)
	}
	return t, nil
}

// WithinBusinessHours checks the slot against the barber's declared hours
// for that weekday. Barbers without declared hours accept any slot.
func WithinBusinessHours(hours map[string]models.DayHours, start time.Time, durationMin int) bool {
	if len(hours) == 0 {
		return true
	}

	// Hours are keyed by lowercase weekday name ("monday").
	day, ok := hours[strings.ToLower(start.Weekday().String())]
	if !ok || day.Closed || day.Open == "" || day.Close == "" {
		return false
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0, start.Location()), true
	}

	open, okOpen := parseHM(day.Open)
	close, okClose := parseHM(day.Close)
	if !okOpen || !okClose {
		return false
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)
	return !start.Before(open) && !end.After(close)
}
