package property

import (
	"time"

	"github.com/jdziat/cloud-schedule/pkg/core"
)

// Adapter converts a value to and from its scalar attribute sequence.
type Adapter[T any] interface {
	Append(v T, w core.ScalarWriter) error
	Read(r core.ScalarReader) (T, error)
}

// Option configures a Property.
type Option interface {
	applyProperty(*config)
}

type optionFunc func(*config)

func (f optionFunc) applyProperty(c *config) { f(c) }

type config struct {
	now func() time.Time
}

// WithWallClock sets the clock used to stamp local changes.
func WithWallClock(now func() time.Time) Option {
	return optionFunc(func(c *config) {
		if now != nil {
			c.now = now
		}
	})
}

// Property is a named value with a local and a cloud side.
type Property[T comparable] struct {
	name     string
	local    T
	cloud    T
	adapter  Adapter[T]
	now      func() time.Time
	changed  time.Time
	onUpdate []func(previous, current T)
}

// New creates a property with initial applied to both sides.
func New[T comparable](name string, initial T, adapter Adapter[T], opts ...Option) *Property[T] {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt.applyProperty(&cfg)
	}
	return &Property[T]{
		name:    name,
		local:   initial,
		cloud:   initial,
		adapter: adapter,
		now:     cfg.now,
	}
}

// Name returns the property name.
func (p *Property[T]) Name() string {
	return p.name
}

// Local returns the local value.
func (p *Property[T]) Local() T {
	return p.local
}

// Cloud returns the last value known to the cloud.
func (p *Property[T]) Cloud() T {
	return p.cloud
}

// Set overwrites the local value and records the change time.
func (p *Property[T]) Set(v T) {
	p.local = v
	p.changed = p.now()
}

// LastLocalChange returns when Set was last called, or the zero time.
func (p *Property[T]) LastLocalChange() time.Time {
	return p.changed
}

// IsDivergent reports whether the local and cloud values differ.
func (p *Property[T]) IsDivergent() bool {
	return p.local != p.cloud
}

// Pull replaces the local value with the cloud value. Update hooks run when
// the local value changes.
func (p *Property[T]) Pull() {
	previous := p.local
	p.local = p.cloud
	if previous == p.local {
		return
	}
	for _, fn := range p.onUpdate {
		fn(previous, p.local)
	}
}

// Push records the local value as the cloud value.
func (p *Property[T]) Push() {
	p.cloud = p.local
}

// OnUpdate registers a callback run when Pull changes the local value.
func (p *Property[T]) OnUpdate(fn func(previous, current T)) {
	p.onUpdate = append(p.onUpdate, fn)
}

// AppendAttributes writes the local value to w.
func (p *Property[T]) AppendAttributes(w core.ScalarWriter) error {
	return p.adapter.Append(p.local, w)
}

// SetAttributes reads a value from r into the cloud side. The cloud value is
// left untouched when the read fails.
func (p *Property[T]) SetAttributes(r core.ScalarReader) error {
	v, err := p.adapter.Read(r)
	if err != nil {
		return err
	}
	p.cloud = v
	return nil
}

// SetCloud records v as the value known to the cloud.
func (p *Property[T]) SetCloud(v T) {
	p.cloud = v
}

// Load restores persisted state without running hooks.
func (p *Property[T]) Load(local, cloud T, changedAt time.Time) {
	p.local = local
	p.cloud = cloud
	p.changed = changedAt
}
