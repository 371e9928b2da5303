// Package monitor drives tracked schedules: it evaluates them on a cron
// cadence, reports activation changes, pushes divergent local values to the
// cloud and applies values received from it.
//
// The Monitor owns the schedules registered with it and serializes every
// access to them. Once registered, a schedule should only be changed through
// Monitor.Set and Monitor.Receive.
//
// Most users should import the root package github.com/jdziat/cloud-schedule
// which re-exports these types.
package monitor
