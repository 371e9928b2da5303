package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/jdziat/cloud-schedule/pkg/core"
)

const secondsPerDay = 86400

// Recurrence is the decoded form of a schedule mask.
//
// Matches reports whether the calendar rule selects the instant now, and Delta
// is the length in seconds of one recurrence cycle.
type Recurrence interface {
	Type() core.Type
	Matches(now uint32) bool
	Delta() uint32
	String() string

	recurrence()
}

// OneShot occurs once, at the start of the window.
type OneShot struct{}

func (OneShot) Type() core.Type { return core.OneShot }
func (OneShot) Matches(uint32) bool { return true }
func (OneShot) Delta() uint32 { return core.OneShotDelta }
func (OneShot) String() string { return "once" }
func (OneShot) recurrence() {}

// FixedDelta repeats every Count units.
type FixedDelta struct {
	Unit  core.Unit
	Count uint32
}

func (FixedDelta) Type() core.Type { return core.FixedDelta }
func (FixedDelta) Matches(uint32) bool { return true }
func (FixedDelta) recurrence() {}

// Delta wraps on overflow, the same as the 32-bit wire arithmetic.
func (f FixedDelta) Delta() uint32 {
	return f.Count * f.Unit.Seconds()
}

func (f FixedDelta) String() string {
	return fmt.Sprintf("every %d %s", f.Count, f.Unit)
}

// Weekdays is a set of weekdays; bit i is time.Weekday(i).
type Weekdays uint8

// WeekdaySet builds a Weekdays from the given days.
func WeekdaySet(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			w |= 1 << uint(d)
		}
	}
	return w
}

// Has reports whether day is in the set.
func (w Weekdays) Has(day time.Weekday) bool {
	return w&(1<<uint(day)) != 0
}

func (w Weekdays) String() string {
	var names []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Has(d) {
			names = append(names, d.String()[:3])
		}
	}
	return strings.Join(names, ",")
}

// Weekly occurs on the selected weekdays.
type Weekly struct {
	Days Weekdays
}

func (Weekly) Type() core.Type { return core.Weekly }
func (Weekly) Delta() uint32 { return secondsPerDay }
func (Weekly) recurrence() {}

func (w Weekly) Matches(now uint32) bool {
	return w.Days.Has(utc(now).Weekday())
}

func (w Weekly) String() string {
	return "weekly on " + w.Days.String()
}

// Monthly occurs on one day of every month.
type Monthly struct {
	Day uint8
}

func (Monthly) Type() core.Type { return core.Monthly }
func (Monthly) Delta() uint32 { return secondsPerDay }
func (Monthly) recurrence() {}

func (m Monthly) Matches(now uint32) bool {
	return utc(now).Day() == int(m.Day)
}

func (m Monthly) String() string {
	return fmt.Sprintf("monthly on day %d", m.Day)
}

// Yearly occurs on one day of one month. Month is zero-based.
type Yearly struct {
	Day   uint8
	Month uint8
}

func (Yearly) Type() core.Type { return core.Yearly }
func (Yearly) Delta() uint32 { return secondsPerDay }
func (Yearly) recurrence() {}

func (y Yearly) Matches(now uint32) bool {
	t := utc(now)
	return t.Day() == int(y.Day) && int(t.Month())-1 == int(y.Month)
}

func (y Yearly) String() string {
	if y.Month < 12 {
		return fmt.Sprintf("yearly on %s %d", time.Month(y.Month+1), y.Day)
	}
	return fmt.Sprintf("yearly on month(%d) %d", y.Month, y.Day)
}

// Unknown carries a type code outside the defined recurrences. It never
// matches.
type Unknown struct {
	Code core.Type
}

func (u Unknown) Type() core.Type { return u.Code }
func (Unknown) Matches(uint32) bool { return false }
func (Unknown) Delta() uint32 { return core.OneShotDelta }
func (Unknown) recurrence() {}

func (u Unknown) String() string {
	return "unknown " + u.Code.String()
}

// Decode unpacks mask into its recurrence. Every mask decodes.
func Decode(mask uint32) Recurrence {
	switch t := TypeOf(mask); t {
	case core.OneShot:
		return OneShot{}
	case core.FixedDelta:
		return FixedDelta{Unit: UnitOf(mask), Count: RepetitionCount(mask)}
	case core.Weekly:
		return Weekly{Days: Weekdays(WeekdayBits(mask))}
	case core.Monthly:
		return Monthly{Day: DayOfMonth(mask)}
	case core.Yearly:
		return Yearly{Day: DayOfMonth(mask), Month: MonthIndex(mask)}
	default:
		return Unknown{Code: t}
	}
}

// Encode packs r into a mask. Fields wider than their bit range are truncated.
func Encode(r Recurrence) uint32 {
	switch v := r.(type) {
	case OneShot:
		return typeBits(core.OneShot)
	case FixedDelta:
		return unitBits(v.Unit) | typeBits(core.FixedDelta) | v.Count&core.RepetitionMask
	case Weekly:
		return typeBits(core.Weekly) | uint32(v.Days)
	case Monthly:
		return typeBits(core.Monthly) | uint32(v.Day)
	case Yearly:
		return typeBits(core.Yearly) | uint32(v.Month)<<core.MonthShift | uint32(v.Day)
	case Unknown:
		return typeBits(v.Code)
	default:
		return typeBits(core.OneShot)
	}
}

// Validate reports whether r can be encoded without losing meaning.
func Validate(r Recurrence) error {
	switch v := r.(type) {
	case OneShot:
		return nil
	case FixedDelta:
		if v.Unit > core.Days {
			return core.ErrInvalidUnit
		}
		if v.Count == 0 {
			return core.ErrZeroRepetition
		}
		if v.Count > core.RepetitionMask {
			return core.ErrRepetitionTooLong
		}
		return nil
	case Weekly:
		if v.Days&0x7F == 0 {
			return core.ErrNoWeekdays
		}
		return nil
	case Monthly:
		return validateDay(v.Day)
	case Yearly:
		if err := validateDay(v.Day); err != nil {
			return err
		}
		if v.Month > 11 {
			return core.ErrInvalidMonth
		}
		return nil
	default:
		return core.ErrUnknownRecurrence
	}
}

func validateDay(day uint8) error {
	if day < 1 || day > 31 {
		return core.ErrInvalidDay
	}
	return nil
}

func utc(now uint32) time.Time {
	return time.Unix(int64(now), 0).UTC()
}
