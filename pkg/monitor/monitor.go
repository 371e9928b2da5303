package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jdziat/cloud-schedule/pkg/cloud"
	"github.com/jdziat/cloud-schedule/pkg/codec"
	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/security"
)

// Hook is called when a schedule changes activation state.
type Hook func(ctx context.Context, name string, d core.Descriptor)

// Monitor evaluates registered schedules and keeps them in sync with the cloud.
type Monitor struct {
	mu        sync.RWMutex
	config    MonitorConfig
	logger    *slog.Logger
	schedules map[string]*cloud.Schedule
	active    map[string]bool

	onActivate   []Hook
	onDeactivate []Hook

	eventSubs []chan core.Event
}

// New creates a Monitor.
func New(opts ...MonitorOption) *Monitor {
	config := MonitorConfig{
		Spec:   DefaultSpec,
		Policy: MostRecentWins,
		Clock:  core.SystemClock,
		Retry:  DefaultRetryConfig(),
		Logger: slog.Default(),
	}

	for _, opt := range opts {
		opt.ApplyMonitor(&config)
	}

	return &Monitor{
		config:    config,
		logger:    config.Logger,
		schedules: make(map[string]*cloud.Schedule),
		active:    make(map[string]bool),
	}
}

// Register adds a schedule to the monitor.
func (m *Monitor) Register(s *cloud.Schedule) error {
	if err := security.ValidatePropertyName(s.Name()); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.schedules[s.Name()]; exists {
		return fmt.Errorf("%w: %s", core.ErrDuplicateProperty, s.Name())
	}
	m.schedules[s.Name()] = s
	m.active[s.Name()] = false
	return nil
}

// Unregister removes a schedule. Persisted state is left in storage.
func (m *Monitor) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.schedules[name]; !exists {
		return fmt.Errorf("%w: %s", core.ErrPropertyNotFound, name)
	}
	delete(m.schedules, name)
	delete(m.active, name)
	return nil
}

// Names returns the registered schedule names in sorted order.
func (m *Monitor) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.namesLocked()
}

func (m *Monitor) namesLocked() []string {
	names := make([]string, 0, len(m.schedules))
	for name := range m.schedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set assigns a new local descriptor. The change is pushed on the next tick.
func (m *Monitor) Set(name string, d core.Descriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.schedules[name]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrPropertyNotFound, name)
	}
	s.Set(d)
	return nil
}

// Descriptor returns the local descriptor of a schedule.
func (m *Monitor) Descriptor(name string) (core.Descriptor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schedules[name]
	if !ok {
		return core.Descriptor{}, fmt.Errorf("%w: %s", core.ErrPropertyNotFound, name)
	}
	return s.Local(), nil
}

// IsActive evaluates a schedule at the monitor's clock.
func (m *Monitor) IsActive(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schedules[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", core.ErrPropertyNotFound, name)
	}
	return s.ActiveAt(m.config.Clock()), nil
}

// IsDivergent reports whether a schedule has a local change not yet pushed.
func (m *Monitor) IsDivergent(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schedules[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", core.ErrPropertyNotFound, name)
	}
	return s.IsDivergent(), nil
}

// OnActivate registers a hook called when a schedule becomes active.
func (m *Monitor) OnActivate(fn Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onActivate = append(m.onActivate, fn)
}

// OnDeactivate registers a hook called when a schedule stops being active.
func (m *Monitor) OnDeactivate(fn Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDeactivate = append(m.onDeactivate, fn)
}

type transition struct {
	name   string
	d      core.Descriptor
	active bool
}

// Tick evaluates every schedule once, then pushes divergent schedules when a
// transport is configured.
func (m *Monitor) Tick(ctx context.Context) error {
	now := m.config.Clock()

	m.mu.Lock()
	var changes []transition
	for _, name := range m.namesLocked() {
		s := m.schedules[name]
		active := s.ActiveAt(now)
		if active == m.active[name] {
			continue
		}
		m.active[name] = active
		changes = append(changes, transition{name: name, d: s.Local(), active: active})
	}
	onActivate := make([]Hook, len(m.onActivate))
	copy(onActivate, m.onActivate)
	onDeactivate := make([]Hook, len(m.onDeactivate))
	copy(onDeactivate, m.onDeactivate)
	m.mu.Unlock()

	for _, c := range changes {
		hooks := onDeactivate
		if c.active {
			m.logger.Info("schedule activated", "name", c.name, "at", now)
			m.Emit(&core.ScheduleActivated{Name: c.name, Descriptor: c.d, At: now, Timestamp: time.Now()})
			hooks = onActivate
		} else {
			m.logger.Info("schedule deactivated", "name", c.name, "at", now)
			m.Emit(&core.ScheduleDeactivated{Name: c.name, Descriptor: c.d, At: now, Timestamp: time.Now()})
		}
		for _, fn := range hooks {
			fn(ctx, c.name, c.d)
		}
	}

	if m.config.Transport == nil {
		return nil
	}
	return m.Sync(ctx)
}

type pendingPush struct {
	name    string
	sent    core.Descriptor
	payload []byte
}

// Sync pushes every divergent schedule through the transport. Failed pushes
// keep the schedule divergent; the returned error joins one *core.SyncError
// per failure.
func (m *Monitor) Sync(ctx context.Context) error {
	if m.config.Transport == nil {
		return core.ErrNoTransport
	}

	var errs []error
	var pending []pendingPush

	m.mu.RLock()
	for _, name := range m.namesLocked() {
		s := m.schedules[name]
		if !s.IsDivergent() {
			continue
		}
		payload, err := codec.Marshal(s.AppendAttributes)
		if err != nil {
			errs = append(errs, &core.SyncError{Name: name, Err: err})
			continue
		}
		pending = append(pending, pendingPush{name: name, sent: s.Local(), payload: payload})
	}
	m.mu.RUnlock()

	for _, p := range pending {
		if err := m.push(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Monitor) push(ctx context.Context, p pendingPush) error {
	err := retryWithBackoff(ctx, m.config.Retry, func() error {
		return m.config.Transport.Send(ctx, p.name, p.payload)
	})
	if err != nil {
		m.logger.Warn("push failed", "name", p.name, "error", err)
		m.Emit(&core.SyncFailed{Name: p.name, Error: err, Timestamp: time.Now()})
		// Keep the unpushed local change across restarts.
		_ = m.persist(ctx, p.name)
		return &core.SyncError{Name: p.name, Err: err}
	}

	m.mu.Lock()
	s, ok := m.schedules[p.name]
	if ok {
		if s.Local() == p.sent {
			s.Push()
		} else {
			// Set ran during the send; the cloud holds what was sent.
			s.SetCloud(p.sent)
		}
	}
	m.mu.Unlock()
	if !ok {
		return nil
	}

	m.logger.Debug("pushed", "name", p.name)
	m.Emit(&core.PropertyPushed{Name: p.name, Descriptor: p.sent, Timestamp: time.Now()})
	if err := m.persist(ctx, p.name); err != nil {
		return &core.SyncError{Name: p.name, Err: err}
	}
	return nil
}

// Receive applies a value sent by the cloud. cloudChangedAt is when the cloud
// value was last modified and is compared with the last local change under
// MostRecentWins.
func (m *Monitor) Receive(ctx context.Context, name string, payload []byte, cloudChangedAt time.Time) error {
	if err := security.ValidatePayloadSize(payload); err != nil {
		return err
	}

	var incoming core.Descriptor
	err := codec.Unmarshal(payload, func(r core.ScalarReader) error {
		var err error
		incoming, err = cloud.DescriptorAdapter{}.Read(r)
		return err
	})

	m.mu.Lock()
	s, ok := m.schedules[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", core.ErrPropertyNotFound, name)
	}
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("cloudschedule: receive %q: %w", name, err)
	}

	pendingLocal := s.IsDivergent()
	s.SetCloud(incoming)

	previous := s.Local()
	pull := true
	if pendingLocal {
		switch m.config.Policy {
		case DeviceWins:
			pull = false
		case MostRecentWins:
			pull = cloudChangedAt.After(s.LastLocalChange())
		}
	}
	if pull {
		s.Pull()
	}
	current := s.Local()
	m.mu.Unlock()

	if pull && previous != current {
		m.logger.Info("pulled", "name", name, "policy", m.config.Policy.String())
		m.Emit(&core.PropertyPulled{Name: name, Previous: previous, Descriptor: current, Timestamp: time.Now()})
	} else if !pull {
		m.logger.Debug("kept local value", "name", name, "policy", m.config.Policy.String())
	}

	return m.persist(ctx, name)
}

// Restore loads persisted state into the registered schedules. Schedules
// without a stored record keep their current values.
func (m *Monitor) Restore(ctx context.Context) error {
	if m.config.Storage == nil {
		return nil
	}

	recs, err := m.config.Storage.List(ctx)
	if err != nil {
		return fmt.Errorf("cloudschedule: restore: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range recs {
		s, ok := m.schedules[rec.Name]
		if !ok {
			continue
		}
		var changedAt time.Time
		if rec.LocalChangedAt != nil {
			changedAt = *rec.LocalChangedAt
		}
		if s.Local() != rec.Local() {
			m.logger.Info("stored value replaces registered value", "name", rec.Name,
				"registered", s.Local(), "stored", rec.Local())
		}
		s.Load(rec.Local(), rec.Cloud(), changedAt)
		m.logger.Debug("restored", "name", rec.Name, "divergent", s.IsDivergent())
	}
	return nil
}

// persist saves the named schedule when storage is configured.
func (m *Monitor) persist(ctx context.Context, name string) error {
	if m.config.Storage == nil {
		return nil
	}

	m.mu.RLock()
	s, ok := m.schedules[name]
	if !ok {
		m.mu.RUnlock()
		return nil
	}
	rec := recordOf(s)
	m.mu.RUnlock()

	if err := m.config.Storage.Save(ctx, rec); err != nil {
		m.logger.Error("failed to persist schedule", "name", name, "error", err)
		return fmt.Errorf("cloudschedule: persist %q: %w", name, err)
	}
	return nil
}

func recordOf(s *cloud.Schedule) *core.PropertyRecord {
	rec := &core.PropertyRecord{Name: s.Name()}
	rec.SetLocal(s.Local())
	rec.SetCloud(s.Cloud())
	if ts := s.LastLocalChange(); !ts.IsZero() {
		rec.LocalChangedAt = &ts
	}
	return rec
}

// Start ticks on the configured cron spec until ctx is cancelled. The first
// tick runs immediately.
func (m *Monitor) Start(ctx context.Context) error {
	logger := cronLogger{logger: m.logger}
	c := cron.New(
		cron.WithParser(specParser),
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	tick := func() {
		if err := m.Tick(ctx); err != nil {
			m.logger.Warn("tick finished with errors", "error", err)
		}
	}
	if _, err := c.AddFunc(m.config.Spec, tick); err != nil {
		return fmt.Errorf("cloudschedule: invalid tick spec %q: %w", m.config.Spec, err)
	}

	m.logger.Info("monitor started", "spec", m.config.Spec, "policy", m.config.Policy.String())
	tick()
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	m.logger.Info("monitor stopped")
	return nil
}

// Events returns a channel that receives monitor events.
func (m *Monitor) Events() <-chan core.Event {
	ch := make(chan core.Event, 100)
	m.mu.Lock()
	m.eventSubs = append(m.eventSubs, ch)
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel created by Events().
// The channel is not closed.
func (m *Monitor) Unsubscribe(ch <-chan core.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.eventSubs {
		if sub == ch {
			m.eventSubs = append(m.eventSubs[:i], m.eventSubs[i+1:]...)
			return
		}
	}
}

// Emit sends an event to all subscribers, dropping it for full channels.
func (m *Monitor) Emit(e core.Event) {
	m.mu.RLock()
	subs := make([]chan core.Event, len(m.eventSubs))
	copy(subs, m.eventSubs)
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
		}
	}
}
