// Package core provides the fundamental types and interfaces for the cloudschedule package.
//
// This package contains:
//   - Descriptor, the four-field schedule value, and its mask layout
//   - Unit and Type enumerations decoded from the mask
//   - Scalar serialization capabilities used across the sync boundary
//   - PropertyRecord data model with GORM annotations and the Storage contract
//   - Event types for monitor subscribers
//   - Sentinel errors
//
// Most users should import the root package github.com/jdziat/cloud-schedule
// instead of this package directly.
package core
