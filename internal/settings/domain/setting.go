// Package domain holds the storefront configuration entities: key/value
// settings, tracking pixels, custom scripts and saved payment cards.
package domain

import (
	"context"
	"time"
)

// SettingType declares how a setting value string should be interpreted.
type SettingType string

const (
	SettingString  SettingType = "string"
	SettingNumber  SettingType = "number"
	SettingBoolean SettingType = "boolean"
	SettingJSON    SettingType = "json"
)

// StoreSetting is one key/value pair of store configuration. Key is unique;
// writes go through an upsert.
type StoreSetting struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Key         string      `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string      `gorm:"type:text" json:"value"`
	Type        SettingType `gorm:"type:enum('string','number','boolean','json');default:'string';not null" json:"type"`
	Category    string      `gorm:"size:100" json:"category"`
	Description string      `gorm:"type:text" json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (StoreSetting) TableName() string { return "store_settings" }

// UpsertSetting is the payload applied on write.
type UpsertSetting struct {
	Key         string
	Value       string
	Type        SettingType
	Category    string
	Description string
}

// SettingRepository is the persistence port for store settings.
type SettingRepository interface {
	// List returns settings, optionally narrowed to one category.
	List(ctx context.Context, category string) ([]StoreSetting, error)
	// Get returns the setting or nil when absent.
	Get(ctx context.Context, key string) (*StoreSetting, error)
	// Upsert inserts the setting or replaces value, type, category and
	// description on key conflict.
	Upsert(ctx context.Context, s UpsertSetting) error
}
