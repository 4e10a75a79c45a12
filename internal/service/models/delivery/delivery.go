package delivery

import (
	"fmt"
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
)

// Window is the business-hours range within which a customer may request a
// future delivery, and how far ahead scheduling is allowed.
type Window struct {
	OpenHour     int
	CloseHour    int
	CloseMinute  int
	MaxDaysAhead int
}

// DefaultWindow is 18:00-23:59 inclusive, up to 7 days ahead.
var DefaultWindow = Window{
	OpenHour:     18,
	CloseHour:    23,
	CloseMinute:  59,
	MaxDaysAhead: 7,
}

// ValidateScheduledTime decides whether t is an acceptable scheduled delivery
// time as of now. The single place for this rule: the placement workflow and
// the slot-availability endpoint both go through it.
func (w Window) ValidateScheduledTime(now, t time.Time) error {
	if !t.After(now) {
		return apperr.New(apperr.KindValidation, "scheduled delivery time must be in the future")
	}
	if t.After(now.AddDate(0, 0, w.MaxDaysAhead)) {
		return apperr.Newf(apperr.KindValidation,
			"cannot schedule delivery more than %d days in advance", w.MaxDaysAhead)
	}

	hour, minute := t.Hour(), t.Minute()
	afterOpen := hour >= w.OpenHour
	beforeClose := hour < w.CloseHour || (hour == w.CloseHour && minute <= w.CloseMinute)
	if !afterOpen || !beforeClose {
		return apperr.Newf(apperr.KindValidation,
			"scheduled delivery time must be between %02d:00 and %02d:%02d",
			w.OpenHour, w.CloseHour, w.CloseMinute)
	}

	return nil
}

// Slots lists the schedulable time slots for the given date: hourly slots
// from open to close hour plus the closing minute, skipping slots less than
// an hour away when the date is today.
func (w Window) Slots(now time.Time, date time.Time) ([]string, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return nil, apperr.New(apperr.KindValidation, "cannot schedule delivery for past dates")
	}
	if day.After(today.AddDate(0, 0, w.MaxDaysAhead)) {
		return nil, apperr.Newf(apperr.KindValidation,
			"cannot schedule delivery more than %d days in advance", w.MaxDaysAhead)
	}

	cutoff := now.Add(time.Hour)
	slots := make([]string, 0, w.CloseHour-w.OpenHour+2)
	for hour := w.OpenHour; hour <= w.CloseHour; hour++ {
		slot := day.Add(time.Duration(hour) * time.Hour)
		if day.Equal(today) && slot.Before(cutoff) {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}

	last := day.Add(time.Duration(w.CloseHour)*time.Hour + time.Duration(w.CloseMinute)*time.Minute)
	if w.CloseMinute > 0 && !(day.Equal(today) && last.Before(cutoff)) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", w.CloseHour, w.CloseMinute))
	}

	return slots, nil
}
