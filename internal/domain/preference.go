package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Preference is a single key-value entry of the preference store
type Preference struct {
	Key       string         `gorm:"column:pref_key;type:varchar(255);primaryKey" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for Preference
func (Preference) TableName() string {
	return "preferences"
}
