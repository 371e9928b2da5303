package schedule

import "github.com/jdziat/cloud-schedule/pkg/core"

// UnitOf extracts the time unit (bits 31-30).
func UnitOf(mask uint32) core.Unit {
	return core.Unit((mask & core.UnitMask) >> core.UnitShift)
}

// TypeOf extracts the recurrence type (bits 29-26).
func TypeOf(mask uint32) core.Type {
	return core.Type((mask & core.TypeMask) >> core.TypeShift)
}

// RepetitionCount extracts the fixed-delta repeat count (bits 25-0).
func RepetitionCount(mask uint32) uint32 {
	return mask & core.RepetitionMask
}

// WeekdayBits extracts the weekday bitmask; bit 0 is Sunday.
func WeekdayBits(mask uint32) uint8 {
	return uint8(mask & core.WeekdayMask)
}

// DayOfMonth extracts the day of month (bits 7-0).
func DayOfMonth(mask uint32) uint8 {
	return uint8(mask & core.DayMask)
}

// MonthIndex extracts the zero-based month (bits 15-8).
func MonthIndex(mask uint32) uint8 {
	return uint8((mask & core.MonthMask) >> core.MonthShift)
}

func typeBits(t core.Type) uint32 {
	return (uint32(t) << core.TypeShift) & core.TypeMask
}

func unitBits(u core.Unit) uint32 {
	return (uint32(u) << core.UnitShift) & core.UnitMask
}
