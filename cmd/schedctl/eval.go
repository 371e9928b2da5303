package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/jdziat/cloud-schedule/pkg/config"
	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/schedule"
)

func runEval(args []string, stdout io.Writer) error {
	var configPath, at string

	fs := pflag.NewFlagSet("eval", pflag.ContinueOnError)
	fs.StringVarP(&configPath, "config", "c", "", "schedule file (required)")
	fs.StringVar(&at, "at", "", "evaluate at this RFC 3339 time instead of now")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if configPath == "" {
		return fmt.Errorf("--config is required")
	}

	now := time.Now()
	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		now = t
	}
	if now.Unix() < 0 || now.Unix() > int64(^uint32(0)) {
		return fmt.Errorf("--at: %s outside the 32-bit epoch range", now.Format(time.RFC3339))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATE\tRECURRENCE\tWINDOW")
	for _, sc := range cfg.Schedules {
		d, err := sc.Descriptor()
		if err != nil {
			return fmt.Errorf("schedule %q: %w", sc.Name, err)
		}
		state := "inactive"
		if schedule.IsActive(d, uint32(now.Unix())) {
			state = "active"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sc.Name, state, schedule.Decode(d.Mask), window(d))
	}
	return tw.Flush()
}

func window(d core.Descriptor) string {
	from := formatEpoch(d.From)
	if d.Unbounded() {
		return from + " .."
	}
	return from + " .. " + formatEpoch(d.To)
}

func formatEpoch(sec uint32) string {
	return time.Unix(int64(sec), 0).UTC().Format(time.RFC3339)
}

func formatMask(mask uint32) string {
	return "0x" + strconv.FormatUint(uint64(mask), 16)
}
