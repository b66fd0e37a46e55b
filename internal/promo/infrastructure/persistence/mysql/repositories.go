// Package mysql persists the checkout incentive entities. All four stores
// follow the same shape: ordered listing, insert, partial update, delete.
package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumacart/storefront/internal/promo/domain"
)

type shippingRuleRepository struct {
	db *gorm.DB
}

// NewShippingRuleRepository builds the MySQL-backed shipping rule store.
func NewShippingRuleRepository(db *gorm.DB) domain.ShippingRuleRepository {
	return &shippingRuleRepository{db: db}
}

func (r *shippingRuleRepository) List(ctx context.Context) ([]domain.ShippingRule, error) {
	var rules []domain.ShippingRule
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *shippingRuleRepository) Create(ctx context.Context, rule *domain.ShippingRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *shippingRuleRepository) Update(ctx context.Context, id uint, u domain.ShippingRuleUpdate) error {
	values := map[string]any{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.Type != nil {
		values["type"] = *u.Type
	}
	if u.MinOrderValue != nil {
		values["min_order_value"] = *u.MinOrderValue
	}
	if u.MaxOrderValue != nil {
		values["max_order_value"] = *u.MaxOrderValue
	}
	if u.MinWeight != nil {
		values["min_weight"] = *u.MinWeight
	}
	if u.MaxWeight != nil {
		values["max_weight"] = *u.MaxWeight
	}
	if u.Price != nil {
		values["price"] = *u.Price
	}
	if u.EstimatedDays != nil {
		values["estimated_days"] = *u.EstimatedDays
	}
	if u.Regions != nil {
		values["regions"] = u.Regions
	}
	if u.IsActive != nil {
		values["is_active"] = *u.IsActive
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.ShippingRule{}).Where("id = ?", id).Updates(values).Error
}

func (r *shippingRuleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ShippingRule{}).Error
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository builds the MySQL-backed fee store.
func NewFeeRepository(db *gorm.DB) domain.FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) List(ctx context.Context) ([]domain.Fee, error) {
	var fees []domain.Fee
	err := r.db.WithContext(ctx).Order("name ASC").Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}

func (r *feeRepository) Create(ctx context.Context, f *domain.Fee) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feeRepository) Update(ctx context.Context, id uint, u domain.FeeUpdate) error {
	values := map[string]any{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.Type != nil {
		values["type"] = *u.Type
	}
	if u.Value != nil {
		values["value"] = *u.Value
	}
	if u.AppliesTo != nil {
		values["applies_to"] = *u.AppliesTo
	}
	if u.IsActive != nil {
		values["is_active"] = *u.IsActive
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Fee{}).Where("id = ?", id).Updates(values).Error
}

func (r *feeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Fee{}).Error
}

type orderBumpRepository struct {
	db *gorm.DB
}

// NewOrderBumpRepository builds the MySQL-backed order bump store.
func NewOrderBumpRepository(db *gorm.DB) domain.OrderBumpRepository {
	return &orderBumpRepository{db: db}
}

func (r *orderBumpRepository) List(ctx context.Context) ([]domain.OrderBump, error) {
	var bumps []domain.OrderBump
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&bumps).Error
	if err != nil {
		return nil, err
	}
	return bumps, nil
}

func (r *orderBumpRepository) Create(ctx context.Context, b *domain.OrderBump) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *orderBumpRepository) Update(ctx context.Context, id uint, u domain.OrderBumpUpdate) error {
	values := map[string]any{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.Description != nil {
		values["description"] = *u.Description
	}
	if u.ProductID != nil {
		values["product_id"] = *u.ProductID
	}
	if u.DiscountType != nil {
		values["discount_type"] = *u.DiscountType
	}
	if u.DiscountValue != nil {
		values["discount_value"] = *u.DiscountValue
	}
	if u.TriggerProductIDs != nil {
		values["trigger_product_ids"] = u.TriggerProductIDs
	}
	if u.TriggerMinValue != nil {
		values["trigger_min_value"] = *u.TriggerMinValue
	}
	if u.DisplayPosition != nil {
		values["display_position"] = *u.DisplayPosition
	}
	if u.IsActive != nil {
		values["is_active"] = *u.IsActive
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.OrderBump{}).Where("id = ?", id).Updates(values).Error
}

func (r *orderBumpRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.OrderBump{}).Error
}

type giftRepository struct {
	db *gorm.DB
}

// NewGiftRepository builds the MySQL-backed gift store.
func NewGiftRepository(db *gorm.DB) domain.GiftRepository {
	return &giftRepository{db: db}
}

func (r *giftRepository) List(ctx context.Context) ([]domain.Gift, error) {
	var gifts []domain.Gift
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&gifts).Error
	if err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *giftRepository) Create(ctx context.Context, g *domain.Gift) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *giftRepository) Update(ctx context.Context, id uint, u domain.GiftUpdate) error {
	values := map[string]any{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.Description != nil {
		values["description"] = *u.Description
	}
	if u.ImageURL != nil {
		values["image_url"] = *u.ImageURL
	}
	if u.MinOrderValue != nil {
		values["min_order_value"] = *u.MinOrderValue
	}
	if u.MaxOrderValue != nil {
		values["max_order_value"] = *u.MaxOrderValue
	}
	if u.Stock != nil {
		values["stock"] = *u.Stock
	}
	if u.IsActive != nil {
		values["is_active"] = *u.IsActive
	}
	if u.StartDate != nil {
		values["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		values["end_date"] = *u.EndDate
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Gift{}).Where("id = ?", id).Updates(values).Error
}

func (r *giftRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Gift{}).Error
}
