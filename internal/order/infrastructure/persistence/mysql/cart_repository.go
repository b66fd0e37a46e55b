package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumacart/storefront/internal/order/domain"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository builds the MySQL-backed abandoned cart store.
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) List(ctx context.Context, opts domain.CartListOptions) ([]domain.AbandonedCart, error) {
	query := r.db.WithContext(ctx).Model(&domain.AbandonedCart{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where("customer_email LIKE ? OR customer_phone LIKE ?", pattern, pattern)
	}
	if opts.IsRecovered != nil {
		query = query.Where("is_recovered = ?", *opts.IsRecovered)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var carts []domain.AbandonedCart
	err := query.Order("created_at DESC").Limit(limit).Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *cartRepository) GetByID(ctx context.Context, id uint) (*domain.AbandonedCart, error) {
	var cart domain.AbandonedCart
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cart).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Create(ctx context.Context, c *domain.AbandonedCart) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cartRepository) Update(ctx context.Context, id uint, u domain.CartUpdate) error {
	values := map[string]any{}
	if u.IsRecovered != nil {
		values["is_recovered"] = *u.IsRecovered
	}
	if u.RecoveredOrderID != nil {
		values["recovered_order_id"] = *u.RecoveredOrderID
	}
	if u.RecoveryEmailSent != nil {
		values["recovery_email_sent"] = *u.RecoveryEmailSent
	}
	if u.RecoveryEmailSentAt != nil {
		values["recovery_email_sent_at"] = *u.RecoveryEmailSentAt
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.AbandonedCart{}).Where("id = ?", id).Updates(values).Error
}

func (r *cartRepository) CountUnrecovered(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.AbandonedCart{}).
		Where("is_recovered = ?", false).Count(&total).Error
	return total, err
}
