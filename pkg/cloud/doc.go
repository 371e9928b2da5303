// Package cloud provides Schedule, the local/cloud tracked schedule property.
//
// Schedule composes a property.Property over core.Descriptor with the
// evaluator from package schedule. The application assigns the local value
// with Set and asks IsActive; the sync side moves values with Pull, Push,
// AppendAttributes and SetAttributes.
//
// Most users should import the root package github.com/jdziat/cloud-schedule
// instead of this package directly.
package cloud
