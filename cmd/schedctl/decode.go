package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/jdziat/cloud-schedule/pkg/codec"
	"github.com/jdziat/cloud-schedule/pkg/cloud"
	"github.com/jdziat/cloud-schedule/pkg/config"
	"github.com/jdziat/cloud-schedule/pkg/schedule"
)

func runDecode(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: schedctl decode MASK")
	}

	v, err := strconv.ParseUint(fs.Arg(0), 0, 32)
	if err != nil {
		return fmt.Errorf("mask %q: %w", fs.Arg(0), err)
	}
	mask := uint32(v)
	r := schedule.Decode(mask)

	fmt.Fprintf(stdout, "mask:       %s\n", formatMask(mask))
	fmt.Fprintf(stdout, "type:       %s\n", schedule.TypeOf(mask))
	fmt.Fprintf(stdout, "recurrence: %s\n", r)
	fmt.Fprintf(stdout, "delta:      %d\n", schedule.Delta(mask))
	if err := schedule.Validate(r); err != nil {
		fmt.Fprintf(stdout, "warning:    %v\n", err)
	}
	return nil
}

func runEncode(args []string, stdout io.Writer) error {
	var configPath string

	fs := pflag.NewFlagSet("encode", pflag.ContinueOnError)
	fs.StringVarP(&configPath, "config", "c", "", "schedule file (required)")
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

	for _, sc := range cfg.Schedules {
		d, err := sc.Descriptor()
		if err != nil {
			return fmt.Errorf("schedule %q: %w", sc.Name, err)
		}
		payload, err := codec.Marshal(cloud.NewSchedule(sc.Name, d).AppendAttributes)
		if err != nil {
			return fmt.Errorf("schedule %q: %w", sc.Name, err)
		}
		diag, err := codec.Diagnose(payload)
		if err != nil {
			return fmt.Errorf("schedule %q: %w", sc.Name, err)
		}
		fmt.Fprintf(stdout, "%s: %s [%s]\n", sc.Name, hex.EncodeToString(payload), diag)
	}
	return nil
}
