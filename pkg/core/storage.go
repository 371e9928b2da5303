package core

import "context"

// Storage defines the persistence layer for tracked schedules.
type Storage interface {
	// Migrate creates the necessary database tables.
	Migrate(ctx context.Context) error

	// Save inserts the record or replaces the one with the same name.
	Save(ctx context.Context, rec *PropertyRecord) error

	// Queries
	Get(ctx context.Context, name string) (*PropertyRecord, error)
	List(ctx context.Context) ([]*PropertyRecord, error)

	Delete(ctx context.Context, name string) error
}
