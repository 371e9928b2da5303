// Package security provides validation and limits for the cloudschedule package.
package security

import (
	"regexp"

	"github.com/jdziat/cloud-schedule/pkg/core"
)

// Limits
const (
	// MaxPropertyNameLength is the maximum length for property names
	MaxPropertyNameLength = 255

	// MaxPayloadSize is the maximum size in bytes of an inbound attribute payload
	MaxPayloadSize = 1 << 10

	// MaxRetryAttempts is the hard limit for push attempts per tick
	MaxRetryAttempts = 20
)

// validPropertyName matches alphanumeric, hyphens, underscores, and dots
var validPropertyName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-\.]*$`)

// ValidatePropertyName validates a property name
func ValidatePropertyName(name string) error {
	if name == "" {
		return core.ErrInvalidPropertyName
	}
	if len(name) > MaxPropertyNameLength {
		return core.ErrPropertyNameTooLong
	}
	if !validPropertyName.MatchString(name) {
		return core.ErrInvalidPropertyName
	}
	return nil
}

// ValidatePayloadSize rejects payloads larger than MaxPayloadSize
func ValidatePayloadSize(payload []byte) error {
	if len(payload) > MaxPayloadSize {
		return core.ErrPayloadTooLarge
	}
	return nil
}

// ClampAttempts ensures an attempt count is within [1, MaxRetryAttempts]
func ClampAttempts(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxRetryAttempts {
		return MaxRetryAttempts
	}
	return n
}
