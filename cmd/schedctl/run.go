package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jdziat/cloud-schedule/pkg/cloud"
	"github.com/jdziat/cloud-schedule/pkg/codec"
	"github.com/jdziat/cloud-schedule/pkg/config"
	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/monitor"
	"github.com/jdziat/cloud-schedule/pkg/storage"
)

func runMonitor(args []string, stdout io.Writer) error {
	var configPath string
	var verbose bool

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.StringVarP(&configPath, "config", "c", "", "schedule file (required)")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if configPath == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := newLogger(verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := buildMonitor(ctx, cfg, log, stdout)
	if err != nil {
		return err
	}

	events := m.Events()
	defer m.Unsubscribe(events)
	go printEvents(ctx, stdout, events)

	return m.Start(ctx)
}

// buildMonitor wires storage and a transport that writes payloads to out.
func buildMonitor(ctx context.Context, cfg *config.Config, log *slog.Logger, out io.Writer) (*monitor.Monitor, error) {
	opts, err := cfg.Monitor.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		monitor.WithLogger(log),
		monitor.WithTransport(printTransport{out: out}),
	)

	if cfg.Storage.Path != "" {
		store, err := openStorage(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, monitor.WithStorage(store))
	}

	m := monitor.New(opts...)
	for _, sc := range cfg.Schedules {
		d, err := sc.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", sc.Name, err)
		}
		if err := m.Register(cloud.NewSchedule(sc.Name, d)); err != nil {
			return nil, err
		}
	}
	if err := m.Restore(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func openStorage(ctx context.Context, path string) (*storage.GormStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := storage.ConfigurePool(db, storage.WithPoolConfig(storage.EmbeddedPoolConfig())); err != nil {
		return nil, err
	}

	store := storage.NewGormStorage(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return store, nil
}

// printTransport stands in for a cloud link by printing each payload.
type printTransport struct {
	out io.Writer
}

func (t printTransport) Send(_ context.Context, name string, payload []byte) error {
	diag, err := codec.Diagnose(payload)
	if err != nil {
		return monitor.Permanent(err)
	}
	_, err = fmt.Fprintf(t.out, "push %s [%s]\n", name, diag)
	return err
}

func printEvents(ctx context.Context, out io.Writer, events <-chan core.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events:
			switch ev := e.(type) {
			case *core.ScheduleActivated:
				fmt.Fprintf(out, "%s active\n", ev.Name)
			case *core.ScheduleDeactivated:
				fmt.Fprintf(out, "%s inactive\n", ev.Name)
			case *core.PropertyPulled:
				fmt.Fprintf(out, "%s pulled\n", ev.Name)
			}
		}
	}
}
