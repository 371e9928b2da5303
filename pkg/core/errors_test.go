package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncError(t *testing.T) {
	originalErr := errors.New("connection reset")
	var err error = &SyncError{Name: "irrigation", Err: originalErr}

	var syncErr *SyncError
	assert.True(t, errors.As(err, &syncErr))
	assert.Equal(t, originalErr, syncErr.Unwrap())
	assert.True(t, errors.Is(err, originalErr))
	assert.Contains(t, err.Error(), `"irrigation"`)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestErrorVariables(t *testing.T) {
	assert.NotNil(t, ErrInvalidPropertyName)
	assert.NotNil(t, ErrPropertyNameTooLong)
	assert.NotNil(t, ErrPropertyNotFound)
	assert.NotNil(t, ErrTruncatedAttributes)

	assert.Contains(t, ErrInvalidPropertyName.Error(), "invalid property name")
	assert.Contains(t, ErrDuplicateProperty.Error(), "already registered")
	assert.Contains(t, ErrInvalidMonth.Error(), "[0, 11]")
}
