package core

import "time"

// PropertyRecord is the persisted state of a tracked schedule: both sides of
// the dual value plus the time of the last local change.
type PropertyRecord struct {
	ID   string `gorm:"primaryKey;size:36"`
	Name string `gorm:"uniqueIndex;size:255;not null"`

	LocalFrom   uint32 `gorm:"not null;default:0"`
	LocalTo     uint32 `gorm:"not null;default:0"`
	LocalLength uint32 `gorm:"not null;default:0"`
	LocalMask   uint32 `gorm:"not null;default:0"`

	CloudFrom   uint32 `gorm:"not null;default:0"`
	CloudTo     uint32 `gorm:"not null;default:0"`
	CloudLength uint32 `gorm:"not null;default:0"`
	CloudMask   uint32 `gorm:"not null;default:0"`

	LocalChangedAt *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// Local returns the local descriptor stored in the record.
func (r *PropertyRecord) Local() Descriptor {
	return Descriptor{From: r.LocalFrom, To: r.LocalTo, Length: r.LocalLength, Mask: r.LocalMask}
}

// Cloud returns the cloud descriptor stored in the record.
func (r *PropertyRecord) Cloud() Descriptor {
	return Descriptor{From: r.CloudFrom, To: r.CloudTo, Length: r.CloudLength, Mask: r.CloudMask}
}

// SetLocal copies d into the local columns.
func (r *PropertyRecord) SetLocal(d Descriptor) {
	r.LocalFrom, r.LocalTo, r.LocalLength, r.LocalMask = d.From, d.To, d.Length, d.Mask
}

// SetCloud copies d into the cloud columns.
func (r *PropertyRecord) SetCloud(d Descriptor) {
	r.CloudFrom, r.CloudTo, r.CloudLength, r.CloudMask = d.From, d.To, d.Length, d.Mask
}
