package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lumacart/storefront/internal/order/domain"
)

const defaultListLimit = 100

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository builds the MySQL-backed order store.
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

// Create writes the header and items in one transaction so a failed item
// insert rolls the header back.
func (r *orderRepository) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		return tx.Create(&items).Error
	})
}

func (r *orderRepository) List(ctx context.Context, opts domain.OrderListOptions) ([]domain.Order, error) {
	query := r.db.WithContext(ctx).Model(&domain.Order{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where(
			"order_number LIKE ? OR customer_name LIKE ? OR customer_email LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if opts.Status != "" {
		query = query.Where("order_status = ?", opts.Status)
	}
	if opts.PaymentStatus != "" {
		query = query.Where("payment_status = ?", opts.PaymentStatus)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var orders []domain.Order
	err := query.Order("created_at DESC").Limit(limit).Offset(opts.Offset).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ItemsByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) Update(ctx context.Context, id uint, u domain.OrderUpdate) error {
	values := map[string]any{}
	if u.OrderStatus != nil {
		values["order_status"] = *u.OrderStatus
	}
	if u.PaymentStatus != nil {
		values["payment_status"] = *u.PaymentStatus
	}
	if u.TrackingCode != nil {
		values["tracking_code"] = *u.TrackingCode
	}
	if u.Notes != nil {
		values["notes"] = *u.Notes
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(values).Error
}

func (r *orderRepository) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error
	return total, err
}

func (r *orderRepository) PaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("payment_status = ?", domain.PaymentPaid).
		Scan(&revenue).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal, nil
}
