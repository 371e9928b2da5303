package monitor

import (
	"fmt"
	"strings"
)

// SyncPolicy decides which side wins when a cloud value arrives while the
// local value has unpushed changes.
type SyncPolicy int

const (
	// MostRecentWins pulls the cloud value when it changed after the last
	// local change.
	MostRecentWins SyncPolicy = iota
	// CloudWins always pulls the cloud value.
	CloudWins
	// DeviceWins keeps the local value; the next tick pushes it.
	DeviceWins
)

func (p SyncPolicy) String() string {
	switch p {
	case MostRecentWins:
		return "most-recent"
	case CloudWins:
		return "cloud"
	case DeviceWins:
		return "device"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "most-recent", "cloud" or "device".
func ParsePolicy(s string) (SyncPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "most-recent", "most_recent", "mostrecent":
		return MostRecentWins, nil
	case "cloud", "cloud-wins":
		return CloudWins, nil
	case "device", "device-wins", "local":
		return DeviceWins, nil
	default:
		return 0, fmt.Errorf("cloudschedule: unknown sync policy %q (use most-recent, cloud or device)", s)
	}
}
