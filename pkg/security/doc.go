// Package security provides validation and limits for the cloudschedule package.
//
// This package includes:
//   - Validation of property names
//   - A size limit on inbound cloud payloads
//   - Clamping of retry attempts
//
// Most users should import the root package github.com/jdziat/cloud-schedule
// which re-exports these limits.
package security
