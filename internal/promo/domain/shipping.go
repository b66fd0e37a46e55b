// Package domain holds the checkout incentive entities: shipping rules,
// payment fees, order bumps and purchase gifts.
package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/pkg/jsonfield"
)

// ShippingType selects how a rule prices delivery.
type ShippingType string

const (
	ShippingFixed       ShippingType = "fixed"
	ShippingWeightBased ShippingType = "weight_based"
	ShippingPriceBased  ShippingType = "price_based"
	ShippingFree        ShippingType = "free"
)

// RegionList is a JSON column of region codes a rule applies to.
type RegionList []string

func (l RegionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonfield.Value(l)
}

func (l *RegionList) Scan(src any) error { return jsonfield.Scan(l, src) }

// ShippingRule prices delivery for orders falling inside its value or weight
// band.
type ShippingRule struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Type          ShippingType     `gorm:"type:enum('fixed','weight_based','price_based','free');not null" json:"type"`
	MinOrderValue *decimal.Decimal `gorm:"column:min_order_value;type:decimal(10,2)" json:"minOrderValue"`
	MaxOrderValue *decimal.Decimal `gorm:"column:max_order_value;type:decimal(10,2)" json:"maxOrderValue"`
	MinWeight     *decimal.Decimal `gorm:"column:min_weight;type:decimal(10,2)" json:"minWeight"`
	MaxWeight     *decimal.Decimal `gorm:"column:max_weight;type:decimal(10,2)" json:"maxWeight"`
	Price         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	EstimatedDays int              `gorm:"column:estimated_days" json:"estimatedDays"`
	Regions       RegionList       `gorm:"type:json" json:"regions"`
	IsActive      bool             `gorm:"column:is_active;default:true;not null" json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (ShippingRule) TableName() string { return "shipping_rules" }

// ShippingRuleUpdate carries partial changes. Nil fields are untouched.
type ShippingRuleUpdate struct {
	Name          *string
	Type          *ShippingType
	MinOrderValue *decimal.Decimal
	MaxOrderValue *decimal.Decimal
	MinWeight     *decimal.Decimal
	MaxWeight     *decimal.Decimal
	Price         *decimal.Decimal
	EstimatedDays *int
	Regions       RegionList
	IsActive      *bool
}

// ShippingRuleRepository is the persistence port for shipping rules.
type ShippingRuleRepository interface {
	// List returns rules by name ascending.
	List(ctx context.Context) ([]ShippingRule, error)
	Create(ctx context.Context, r *ShippingRule) error
	Update(ctx context.Context, id uint, u ShippingRuleUpdate) error
	Delete(ctx context.Context, id uint) error
}
