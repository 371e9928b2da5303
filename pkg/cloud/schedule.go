package cloud

import (
	"time"

	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/property"
	"github.com/jdziat/cloud-schedule/pkg/schedule"
)

// Option configures a Schedule.
type Option interface {
	applySchedule(*options)
}

type optionFunc func(*options)

func (f optionFunc) applySchedule(o *options) { f(o) }

type options struct {
	clock    core.Clock
	propOpts []property.Option
}

// WithClock sets the time source used by IsActive.
func WithClock(clock core.Clock) Option {
	return optionFunc(func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	})
}

// WithWallClock sets the clock used to stamp local changes.
func WithWallClock(now func() time.Time) Option {
	return optionFunc(func(o *options) {
		o.propOpts = append(o.propOpts, property.WithWallClock(now))
	})
}

// Schedule is a tracked schedule with a local and a cloud descriptor.
type Schedule struct {
	*property.Property[core.Descriptor]
	clock core.Clock
}

// NewSchedule creates a schedule with initial applied to both sides.
func NewSchedule(name string, initial core.Descriptor, opts ...Option) *Schedule {
	o := options{clock: core.SystemClock}
	for _, opt := range opts {
		opt.applySchedule(&o)
	}
	return &Schedule{
		Property: property.New[core.Descriptor](name, initial, DescriptorAdapter{}, o.propOpts...),
		clock:    o.clock,
	}
}

// IsActive reports whether the local schedule is active now.
func (s *Schedule) IsActive() bool {
	return s.ActiveAt(s.clock())
}

// ActiveAt reports whether the local schedule is active at now.
func (s *Schedule) ActiveAt(now uint32) bool {
	return schedule.IsActive(s.Local(), now)
}

// Recurrence decodes the local mask.
func (s *Schedule) Recurrence() schedule.Recurrence {
	return schedule.Decode(s.Local().Mask)
}
