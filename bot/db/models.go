package db

import "time"

// ResolutionModel caches one successful link resolution keyed by the
// canonical URL. Payload holds the raw resolution result as JSON.
type ResolutionModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	URL       string    `gorm:"uniqueIndex;size:2048;not null"`
	Payload   string    `gorm:"type:text;not null"`
}

// TableName keeps the table name explicit across schema changes.
func (ResolutionModel) TableName() string { return "resolutions" }
