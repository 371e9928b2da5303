package monitor

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes cron's logging to slog. Routine cron messages are
// logged at debug level.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}

var _ cron.Logger = cronLogger{}

// specParser accepts an optional seconds field and @descriptors.
var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSpec reports whether spec is a valid tick schedule.
func ValidateSpec(spec string) error {
	_, err := specParser.Parse(spec)
	return err
}
