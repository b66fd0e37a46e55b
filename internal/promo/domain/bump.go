package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/pkg/jsonfield"
)

// DiscountType mirrors FeeType for bump discounts.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// DisplayPosition names where in the checkout flow a bump renders.
type DisplayPosition string

const (
	DisplayBeforeCheckout DisplayPosition = "before_checkout"
	DisplayAfterCheckout  DisplayPosition = "after_checkout"
	DisplayCartPage       DisplayPosition = "cart_page"
)

// ProductIDList is a JSON column of product ids that trigger a bump.
type ProductIDList []uint

func (l ProductIDList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonfield.Value(l)
}

func (l *ProductIDList) Scan(src any) error { return jsonfield.Scan(l, src) }

// OrderBump is a discounted add-on offered during checkout. Views and
// conversions track offer performance.
type OrderBump struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	Name              string           `gorm:"size:255;not null" json:"name"`
	Description       string           `gorm:"type:text" json:"description"`
	ProductID         uint             `gorm:"column:product_id;not null" json:"productId"`
	DiscountType      DiscountType     `gorm:"column:discount_type;type:enum('percentage','fixed');not null" json:"discountType"`
	DiscountValue     decimal.Decimal  `gorm:"column:discount_value;type:decimal(10,2);not null" json:"discountValue"`
	TriggerProductIDs ProductIDList    `gorm:"column:trigger_product_ids;type:json" json:"triggerProductIds"`
	TriggerMinValue   *decimal.Decimal `gorm:"column:trigger_min_value;type:decimal(10,2)" json:"triggerMinValue"`
	DisplayPosition   DisplayPosition  `gorm:"column:display_position;type:enum('before_checkout','after_checkout','cart_page');default:'before_checkout';not null" json:"displayPosition"`
	IsActive          bool             `gorm:"column:is_active;default:true;not null" json:"isActive"`
	Conversions       int              `gorm:"default:0;not null" json:"conversions"`
	Views             int              `gorm:"default:0;not null" json:"views"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (OrderBump) TableName() string { return "order_bumps" }

// OrderBumpUpdate carries partial changes. Nil fields are untouched.
type OrderBumpUpdate struct {
	Name              *string
	Description       *string
	ProductID         *uint
	DiscountType      *DiscountType
	DiscountValue     *decimal.Decimal
	TriggerProductIDs ProductIDList
	TriggerMinValue   *decimal.Decimal
	DisplayPosition   *DisplayPosition
	IsActive          *bool
}

// OrderBumpRepository is the persistence port for order bumps.
type OrderBumpRepository interface {
	// List returns bumps newest first.
	List(ctx context.Context) ([]OrderBump, error)
	Create(ctx context.Context, b *OrderBump) error
	Update(ctx context.Context, id uint, u OrderBumpUpdate) error
	Delete(ctx context.Context, id uint) error
}
