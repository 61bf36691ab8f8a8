package models

import "time"

// Preference is one key/value pair of local console state, e.g. the theme.
type Preference struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
