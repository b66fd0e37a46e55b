package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Gift is a free item granted to orders inside its value band, limited by
// stock and an optional campaign window.
type Gift struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Description   string           `gorm:"type:text" json:"description"`
	ImageURL      string           `gorm:"column:image_url;type:text" json:"imageUrl"`
	MinOrderValue decimal.Decimal  `gorm:"column:min_order_value;type:decimal(10,2);not null" json:"minOrderValue"`
	MaxOrderValue *decimal.Decimal `gorm:"column:max_order_value;type:decimal(10,2)" json:"maxOrderValue"`
	Stock         int              `gorm:"default:0;not null" json:"stock"`
	UsedCount     int              `gorm:"column:used_count;default:0;not null" json:"usedCount"`
	IsActive      bool             `gorm:"column:is_active;default:true;not null" json:"isActive"`
	StartDate     *time.Time       `gorm:"column:start_date" json:"startDate"`
	EndDate       *time.Time       `gorm:"column:end_date" json:"endDate"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (Gift) TableName() string { return "gifts" }

// GiftUpdate carries partial changes. Nil fields are untouched.
type GiftUpdate struct {
	Name          *string
	Description   *string
	ImageURL      *string
	MinOrderValue *decimal.Decimal
	MaxOrderValue *decimal.Decimal
	Stock         *int
	IsActive      *bool
	StartDate     *time.Time
	EndDate       *time.Time
}

// GiftRepository is the persistence port for gifts.
type GiftRepository interface {
	// List returns gifts newest first.
	List(ctx context.Context) ([]Gift, error)
	Create(ctx context.Context, g *Gift) error
	Update(ctx context.Context, id uint, u GiftUpdate) error
	Delete(ctx context.Context, id uint) error
}
