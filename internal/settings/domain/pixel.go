package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/lumacart/storefront/pkg/jsonfield"
)

// PixelPlatform names the analytics vendor a pixel belongs to.
type PixelPlatform string

const (
	PlatformFacebook         PixelPlatform = "facebook"
	PlatformGoogleAnalytics  PixelPlatform = "google_analytics"
	PlatformGoogleTagManager PixelPlatform = "google_tag_manager"
	PlatformTikTok           PixelPlatform = "tiktok"
	PlatformCustom           PixelPlatform = "custom"
)

// EventList is a JSON column of event names a pixel fires on.
type EventList []string

func (l EventList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonfield.Value(l)
}

func (l *EventList) Scan(src any) error { return jsonfield.Scan(l, src) }

// TrackingPixel is a third-party analytics tag injected into the storefront.
type TrackingPixel struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Platform  PixelPlatform `gorm:"type:enum('facebook','google_analytics','google_tag_manager','tiktok','custom');not null" json:"platform"`
	PixelID   string        `gorm:"column:pixel_id;size:255;not null" json:"pixelId"`
	IsActive  bool          `gorm:"column:is_active;default:true;not null" json:"isActive"`
	Events    EventList     `gorm:"type:json" json:"events"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (TrackingPixel) TableName() string { return "tracking_pixels" }

// PixelUpdate carries partial changes. Nil fields are untouched.
type PixelUpdate struct {
	Name     *string
	Platform *PixelPlatform
	PixelID  *string
	IsActive *bool
	Events   EventList
}

// PixelRepository is the persistence port for tracking pixels.
type PixelRepository interface {
	// List returns pixels by name ascending.
	List(ctx context.Context) ([]TrackingPixel, error)
	Create(ctx context.Context, p *TrackingPixel) error
	Update(ctx context.Context, id uint, u PixelUpdate) error
	Delete(ctx context.Context, id uint) error
}
