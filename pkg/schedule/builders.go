package schedule

import (
	"time"

	"github.com/jdziat/cloud-schedule/pkg/core"
)

// New builds a descriptor from a validated recurrence.
func New(from, to, length uint32, r Recurrence) (core.Descriptor, error) {
	if to != 0 && from > to {
		return core.Descriptor{}, core.ErrInvalidWindow
	}
	if err := Validate(r); err != nil {
		return core.Descriptor{}, err
	}
	return core.Descriptor{From: from, To: to, Length: length, Mask: Encode(r)}, nil
}

// Once creates a schedule active for length seconds starting at from.
func Once(from, length uint32) (core.Descriptor, error) {
	return New(from, 0, length, OneShot{})
}

// Every creates a schedule repeating every count units.
func Every(from, to, length uint32, unit core.Unit, count uint32) (core.Descriptor, error) {
	return New(from, to, length, FixedDelta{Unit: unit, Count: count})
}

// WeeklyOn creates a schedule active on the given weekdays.
// The daily occurrence starts at the time of day of from.
func WeeklyOn(from, to, length uint32, days ...time.Weekday) (core.Descriptor, error) {
	return New(from, to, length, Weekly{Days: WeekdaySet(days...)})
}

// MonthlyOn creates a schedule active on one day of every month.
func MonthlyOn(from, to, length uint32, day uint8) (core.Descriptor, error) {
	return New(from, to, length, Monthly{Day: day})
}

// YearlyOn creates a schedule active on one day of the given month.
func YearlyOn(from, to, length uint32, month time.Month, day uint8) (core.Descriptor, error) {
	if month < time.January || month > time.December {
		return core.Descriptor{}, core.ErrInvalidMonth
	}
	return New(from, to, length, Yearly{Day: day, Month: uint8(month - 1)})
}
