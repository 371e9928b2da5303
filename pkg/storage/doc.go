// Package storage provides the GORM implementation of core.Storage.
//
// GormStorage persists both sides of every tracked schedule, four unsigned
// 32-bit columns each, keyed by property name. Any GORM dialect works; the
// tests run against in-memory SQLite.
package storage
