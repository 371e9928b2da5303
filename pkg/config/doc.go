// Package config loads schedule and monitor settings from YAML files.
//
// A file lists the schedules to track and how the monitor should run:
//
//	monitor:
//	  tick: "@every 5s"
//	  policy: most-recent
//	storage:
//	  path: ${HOME}/.local/state/schedules.db
//	schedules:
//	  - name: porch-lights
//	    from: 2026-01-05T18:00:00Z
//	    length: 4h
//	    recurrence:
//	      type: weekly
//	      days: [mon, wed, fri]
//
// Schedules may give a raw mask instead of a recurrence block.
package config
