// Package core provides the domain models and interfaces for the cloudschedule package.
package core

import (
	"strconv"
	"time"
)

// Mask layout.
const (
	UnitMask  uint32 = 0xC0000000
	UnitShift        = 30

	TypeMask  uint32 = 0x3C000000
	TypeShift        = 26

	MonthMask  uint32 = 0x0000FF00
	MonthShift        = 8

	RepetitionMask uint32 = 0x03FFFFFF
	WeekdayMask    uint32 = 0x000000FF
	DayMask        uint32 = 0x000000FF
)

// OneShotDelta is the cycle length of a schedule that never repeats.
const OneShotDelta uint32 = 0xFFFFFFFF

// Descriptor is a schedule in its wire form: four unsigned 32-bit fields.
//
// From is inclusive and To exclusive; To == 0 means the window has no end.
// Length is the active duration of each occurrence in seconds and Mask packs
// the recurrence rule. The zero Descriptor is never active.
type Descriptor struct {
	From   uint32
	To     uint32
	Length uint32
	Mask   uint32
}

// IsZero reports whether d is the empty schedule.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// Unbounded reports whether the schedule window has no end.
func (d Descriptor) Unbounded() bool {
	return d.To == 0
}

// Unit is the time unit of a fixed-delta recurrence.
type Unit uint8

const (
	Seconds Unit = 0
	Minutes Unit = 1
	Hours   Unit = 2
	Days    Unit = 3
)

// Seconds returns the number of seconds in one unit.
func (u Unit) Seconds() uint32 {
	switch u {
	case Minutes:
		return 60
	case Hours:
		return 3600
	case Days:
		return 86400
	default:
		return 1
	}
}

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	default:
		return "unit(" + strconv.Itoa(int(u)) + ")"
	}
}

// Type is the recurrence rule of a schedule.
type Type uint8

const (
	OneShot    Type = 0
	FixedDelta Type = 1
	Weekly     Type = 2
	Monthly    Type = 3
	Yearly     Type = 4
)

func (t Type) String() string {
	switch t {
	case OneShot:
		return "one-shot"
	case FixedDelta:
		return "fixed-delta"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Clock returns the current time in epoch seconds.
type Clock func() uint32

// SystemClock reads the wall clock in UTC epoch seconds.
func SystemClock() uint32 {
	return uint32(time.Now().Unix())
}

// FixedClock returns a Clock that always reports now.
func FixedClock(now uint32) Clock {
	return func() uint32 { return now }
}
