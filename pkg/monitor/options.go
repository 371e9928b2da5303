// Package monitor provides the Monitor evaluation and sync loop.
package monitor

import (
	"context"
	"log/slog"

	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/security"
)

// DefaultSpec evaluates schedules once per second.
const DefaultSpec = "@every 1s"

// Transport delivers an encoded property to the cloud.
type Transport interface {
	Send(ctx context.Context, name string, payload []byte) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, name string, payload []byte) error

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, name string, payload []byte) error {
	return f(ctx, name, payload)
}

// MonitorOption configures a Monitor.
type MonitorOption interface {
	ApplyMonitor(*MonitorConfig)
}

type monitorOptionFunc func(*MonitorConfig)

func (f monitorOptionFunc) ApplyMonitor(c *MonitorConfig) { f(c) }

// MonitorConfig holds monitor configuration.
type MonitorConfig struct {
	Spec      string
	Policy    SyncPolicy
	Clock     core.Clock
	Storage   core.Storage
	Transport Transport
	Retry     RetryConfig
	Logger    *slog.Logger
}

// WithSpec sets the cron spec driving Tick, e.g. "@every 5s" or "*/10 * * * * *".
func WithSpec(spec string) MonitorOption {
	return monitorOptionFunc(func(c *MonitorConfig) {
		c.Spec = spec
	})
}

// WithPolicy sets how inbound cloud values are reconciled with local changes.
func WithPolicy(p SyncPolicy) MonitorOption {
	return monitorOptionFunc(func(c *MonitorConfig) {
		c.Policy = p
	})
}

// WithClock sets the time source schedules are evaluated against.
func WithClock(clock core.Clock) MonitorOption {
	return monitorOptionFunc(func(c *MonitorConfig) {
		if clock != nil {
			c.Clock = clock
		}
	})
}

// WithStorage persists schedule state after every sync.
func WithStorage(s core.Storage) MonitorOption {
	return monitorOptionFunc(func(c *MonitorConfig) {
		c.Storage = s
	})
}

// WithTransport sets the transport used to push local changes.
func WithTransport(t Transport) MonitorOption {
	return monitorOptionFunc(func(c *MonitorConfig) {
		c.Transport = t
	})
}

// WithRetry sets the retry configuration for pushes.
// MaxAttempts is clamped to [1, security.MaxRetryAttempts].
func WithRetry(cfg RetryConfig) MonitorOption {
	return monitorOptionFunc(func(c *MonitorConfig) {
		cfg.MaxAttempts = security.ClampAttempts(cfg.MaxAttempts)
		c.Retry = cfg
	})
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) MonitorOption {
	return monitorOptionFunc(func(c *MonitorConfig) {
		if l != nil {
			c.Logger = l
		}
	})
}
