// Package schedule decodes and evaluates packed schedule descriptors.
//
// This package includes:
//   - Mask decoders (UnitOf, TypeOf, RepetitionCount, WeekdayBits, DayOfMonth, MonthIndex)
//   - Recurrence, a tagged variant decoded from the mask, and Encode, its inverse
//   - IsActive, which decides whether a descriptor is active at an instant
//   - Builders (Once, Every, WeeklyOn, MonthlyOn, YearlyOn) for valid descriptors
//
// Calendar fields are always computed in UTC.
//
// Most users should import the root package github.com/jdziat/cloud-schedule
// which re-exports these functions.
package schedule
