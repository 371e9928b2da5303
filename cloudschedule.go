// Package cloudschedule tracks time-window schedules that are edited locally
// and mirrored to a cloud service.
//
// This is the main package users should import. It re-exports the public
// types from the pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	// Every day from 18:00 UTC, active for four hours
//	d, _ := cloudschedule.Every(from, 0, 4*3600, cloudschedule.Days, 1)
//	lights := cloudschedule.NewSchedule("porch-lights", d)
//
//	if lights.IsActive() {
//	    turnOn()
//	}
//
//	// Keep it in sync with the cloud
//	m := cloudschedule.NewMonitor(
//	    cloudschedule.WithTransport(link),
//	    cloudschedule.WithStorage(cloudschedule.NewGormStorage(db)),
//	)
//	m.Register(lights)
//	m.Start(ctx)
package cloudschedule

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/jdziat/cloud-schedule/pkg/cloud"
	"github.com/jdziat/cloud-schedule/pkg/config"
	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/monitor"
	"github.com/jdziat/cloud-schedule/pkg/property"
	"github.com/jdziat/cloud-schedule/pkg/schedule"
	"github.com/jdziat/cloud-schedule/pkg/security"
	"github.com/jdziat/cloud-schedule/pkg/storage"
)

// Type aliases
type (
	// Descriptor is the four-scalar schedule: window, occurrence length and mask.
	Descriptor = core.Descriptor

	// Unit is the time unit of a fixed-delta recurrence.
	Unit = core.Unit

	// Type is the recurrence rule encoded in a mask.
	Type = core.Type

	// Clock returns the current time in epoch seconds.
	Clock = core.Clock

	// Recurrence is a decoded mask.
	Recurrence = schedule.Recurrence

	OneShot    = schedule.OneShot
	FixedDelta = schedule.FixedDelta
	Weekly     = schedule.Weekly
	Weekdays   = schedule.Weekdays
	Monthly    = schedule.Monthly
	Yearly     = schedule.Yearly
	Unknown    = schedule.Unknown

	// Schedule is a descriptor with a local and a cloud side.
	Schedule = cloud.Schedule

	// ScheduleOption configures a Schedule.
	ScheduleOption = cloud.Option

	// Adapter converts a property value to and from scalar attributes.
	Adapter[T any] = property.Adapter[T]

	// Property is a generic dual-value property.
	Property[T comparable] = property.Property[T]

	// Monitor evaluates schedules and syncs them with the cloud.
	Monitor = monitor.Monitor

	// MonitorOption configures a Monitor.
	MonitorOption = monitor.MonitorOption

	// MonitorConfig holds monitor configuration.
	MonitorConfig = monitor.MonitorConfig

	// SyncPolicy decides how inbound cloud values meet local changes.
	SyncPolicy = monitor.SyncPolicy

	// Transport delivers encoded schedules to the cloud.
	Transport = monitor.Transport

	// TransportFunc adapts a function to Transport.
	TransportFunc = monitor.TransportFunc

	// RetryConfig controls push retries.
	RetryConfig = monitor.RetryConfig

	// Hook is called on activation changes.
	Hook = monitor.Hook

	// Storage persists tracked schedules.
	Storage = core.Storage

	// PropertyRecord is the persisted form of a schedule.
	PropertyRecord = core.PropertyRecord

	// GormStorage implements Storage using GORM.
	GormStorage = storage.GormStorage

	// Config is a parsed schedule file.
	Config = config.Config

	// Event is the interface for all monitor events.
	Event = core.Event

	ScheduleActivated   = core.ScheduleActivated
	ScheduleDeactivated = core.ScheduleDeactivated
	PropertyPushed      = core.PropertyPushed
	PropertyPulled      = core.PropertyPulled
	SyncFailed          = core.SyncFailed

	// SyncError reports a failed push.
	SyncError = core.SyncError
)

// Units
const (
	Seconds = core.Seconds
	Minutes = core.Minutes
	Hours   = core.Hours
	Days    = core.Days
)

// Sync policies
const (
	MostRecentWins = monitor.MostRecentWins
	CloudWins      = monitor.CloudWins
	DeviceWins     = monitor.DeviceWins
)

// DefaultSpec is the default monitor tick.
const DefaultSpec = monitor.DefaultSpec

// Security limits
const (
	MaxPropertyNameLength = security.MaxPropertyNameLength
	MaxPayloadSize        = security.MaxPayloadSize
)

// Error variables
var (
	ErrInvalidPropertyName = core.ErrInvalidPropertyName
	ErrPropertyNameTooLong = core.ErrPropertyNameTooLong
	ErrDuplicateProperty   = core.ErrDuplicateProperty
	ErrPropertyNotFound    = core.ErrPropertyNotFound
	ErrInvalidUnit         = core.ErrInvalidUnit
	ErrRepetitionTooLong   = core.ErrRepetitionTooLong
	ErrZeroRepetition      = core.ErrZeroRepetition
	ErrNoWeekdays          = core.ErrNoWeekdays
	ErrInvalidDay          = core.ErrInvalidDay
	ErrInvalidMonth        = core.ErrInvalidMonth
	ErrInvalidWindow       = core.ErrInvalidWindow
	ErrUnknownRecurrence   = core.ErrUnknownRecurrence
	ErrTruncatedAttributes = core.ErrTruncatedAttributes
	ErrTrailingAttributes  = core.ErrTrailingAttributes
	ErrNoTransport         = core.ErrNoTransport
	ErrPayloadTooLarge     = core.ErrPayloadTooLarge
)

// NewSchedule creates a schedule with initial applied to both sides.
func NewSchedule(name string, initial Descriptor, opts ...ScheduleOption) *Schedule {
	return cloud.NewSchedule(name, initial, opts...)
}

// WithScheduleClock sets the time source used by Schedule.IsActive.
func WithScheduleClock(clock Clock) ScheduleOption {
	return cloud.WithClock(clock)
}

// WithWallClock sets the clock used to stamp local changes.
func WithWallClock(now func() time.Time) ScheduleOption {
	return cloud.WithWallClock(now)
}

// IsActive evaluates d at now.
func IsActive(d Descriptor, now uint32) bool {
	return schedule.IsActive(d, now)
}

// Decode unpacks a mask.
func Decode(mask uint32) Recurrence {
	return schedule.Decode(mask)
}

// Encode packs a recurrence into a mask.
func Encode(r Recurrence) uint32 {
	return schedule.Encode(r)
}

// Once creates a one-shot descriptor.
func Once(from, length uint32) (Descriptor, error) {
	return schedule.Once(from, length)
}

// Every creates a descriptor repeating every count units.
func Every(from, to, length uint32, unit Unit, count uint32) (Descriptor, error) {
	return schedule.Every(from, to, length, unit, count)
}

// WeeklyOn creates a descriptor active on the given weekdays.
func WeeklyOn(from, to, length uint32, days ...time.Weekday) (Descriptor, error) {
	return schedule.WeeklyOn(from, to, length, days...)
}

// MonthlyOn creates a descriptor active on one day of every month.
func MonthlyOn(from, to, length uint32, day uint8) (Descriptor, error) {
	return schedule.MonthlyOn(from, to, length, day)
}

// YearlyOn creates a descriptor active on one day of a month every year.
func YearlyOn(from, to, length uint32, month time.Month, day uint8) (Descriptor, error) {
	return schedule.YearlyOn(from, to, length, month, day)
}

// SystemClock returns the current time in epoch seconds.
func SystemClock() uint32 {
	return core.SystemClock()
}

// FixedClock returns a clock that always reports now.
func FixedClock(now uint32) Clock {
	return core.FixedClock(now)
}

// NewMonitor creates a Monitor.
func NewMonitor(opts ...MonitorOption) *Monitor {
	return monitor.New(opts...)
}

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return storage.NewGormStorage(db)
}

// LoadConfig reads a YAML schedule file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ParsePolicy parses "most-recent", "cloud" or "device".
func ParsePolicy(s string) (SyncPolicy, error) {
	return monitor.ParsePolicy(s)
}

// ValidatePropertyName validates a schedule name.
func ValidatePropertyName(name string) error {
	return security.ValidatePropertyName(name)
}

// Monitor option functions

// WithSpec sets the cron spec driving ticks.
func WithSpec(spec string) MonitorOption {
	return monitor.WithSpec(spec)
}

// WithPolicy sets the sync policy.
func WithPolicy(p SyncPolicy) MonitorOption {
	return monitor.WithPolicy(p)
}

// WithClock sets the monitor's time source.
func WithClock(clock Clock) MonitorOption {
	return monitor.WithClock(clock)
}

// WithStorage persists schedules after every sync.
func WithStorage(s Storage) MonitorOption {
	return monitor.WithStorage(s)
}

// WithTransport sets the push transport.
func WithTransport(t Transport) MonitorOption {
	return monitor.WithTransport(t)
}

// WithRetry sets the push retry configuration.
func WithRetry(cfg RetryConfig) MonitorOption {
	return monitor.WithRetry(cfg)
}

// WithLogger sets the monitor's logger.
func WithLogger(l *slog.Logger) MonitorOption {
	return monitor.WithLogger(l)
}

// DefaultRetryConfig returns the default push retry configuration.
func DefaultRetryConfig() RetryConfig {
	return monitor.DefaultRetryConfig()
}

// Permanent marks a transport error as not worth retrying.
func Permanent(err error) error {
	return monitor.Permanent(err)
}
