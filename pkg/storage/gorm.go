// Package storage provides storage implementations for the cloudschedule package.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jdziat/cloud-schedule/pkg/core"
	"github.com/jdziat/cloud-schedule/pkg/security"
)

// GormStorage implements Storage using GORM.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// Migrate creates the necessary tables.
func (s *GormStorage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&core.PropertyRecord{})
}

// Save inserts rec, or overwrites the record with the same name.
// The stored ID and creation time are kept on overwrite.
func (s *GormStorage) Save(ctx context.Context, rec *core.PropertyRecord) error {
	if err := security.ValidatePropertyName(rec.Name); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing core.PropertyRecord
		err := tx.Where("name = ?", rec.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if rec.ID == "" {
				rec.ID = uuid.New().String()
			}
			return tx.Create(rec).Error
		}
		if err != nil {
			return err
		}

		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		return tx.Save(rec).Error
	})
}

// Get retrieves a record by property name.
func (s *GormStorage) Get(ctx context.Context, name string) (*core.PropertyRecord, error) {
	var rec core.PropertyRecord
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns every record ordered by name.
func (s *GormStorage) List(ctx context.Context) ([]*core.PropertyRecord, error) {
	var recs []*core.PropertyRecord
	err := s.db.WithContext(ctx).Order("name ASC").Find(&recs).Error
	return recs, err
}

// Delete removes the record with the given name.
func (s *GormStorage) Delete(ctx context.Context, name string) error {
	result := s.db.WithContext(ctx).Where("name = ?", name).Delete(&core.PropertyRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrPropertyNotFound
	}
	return nil
}

var _ core.Storage = (*GormStorage)(nil)
