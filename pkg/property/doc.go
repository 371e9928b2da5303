// Package property provides a generic local/cloud dual-value property.
//
// A Property holds the value the application works with (local) and the last
// value known to the cloud. Set marks a local change, Push reconciles the
// cloud side after a successful send and Pull adopts the cloud value. The
// wire shape of the value is supplied by an Adapter, which appends and reads
// the value as a fixed sequence of scalars.
//
// A Property is not safe for concurrent use; callers serialize access.
package property
