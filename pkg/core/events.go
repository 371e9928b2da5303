package core

import "time"

// Event is the interface for all monitor events.
type Event interface {
	eventMarker()
}

// ScheduleActivated is emitted when a schedule becomes active.
type ScheduleActivated struct {
	Name       string
	Descriptor Descriptor
	At         uint32
	Timestamp  time.Time
}

func (*ScheduleActivated) eventMarker() {}

// ScheduleDeactivated is emitted when a schedule stops being active.
type ScheduleDeactivated struct {
	Name       string
	Descriptor Descriptor
	At         uint32
	Timestamp  time.Time
}

func (*ScheduleDeactivated) eventMarker() {}

// PropertyPushed is emitted after a local value was sent to the cloud.
type PropertyPushed struct {
	Name       string
	Descriptor Descriptor
	Timestamp  time.Time
}

func (*PropertyPushed) eventMarker() {}

// PropertyPulled is emitted after a cloud value replaced the local one.
type PropertyPulled struct {
	Name       string
	Previous   Descriptor
	Descriptor Descriptor
	Timestamp  time.Time
}

func (*PropertyPulled) eventMarker() {}

// SyncFailed is emitted when a push gives up after retries.
type SyncFailed struct {
	Name      string
	Error     error
	Timestamp time.Time
}

func (*SyncFailed) eventMarker() {}
