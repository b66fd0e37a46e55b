package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumacart/storefront/internal/catalog/domain"
)

// defaultListLimit caps unbounded listings.
const defaultListLimit = 100

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds the MySQL-backed product store.
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, opts domain.ProductListOptions) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if opts.Search != "" {
		query = query.Where("name LIKE ?", "%"+opts.Search+"%")
	}
	if opts.CategoryID != 0 {
		query = query.Where("category_id = ?", opts.CategoryID)
	}
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.IsFeatured != nil {
		query = query.Where("is_featured = ?", *opts.IsFeatured)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var products []domain.Product
	err := query.Order("created_at DESC").Limit(limit).Offset(opts.Offset).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) Update(ctx context.Context, id uint, u domain.ProductUpdate) error {
	values := map[string]any{}
	if u.Name != nil {
		values["name"] = *u.Name
	}
	if u.Slug != nil {
		values["slug"] = *u.Slug
	}
	if u.Description != nil {
		values["description"] = *u.Description
	}
	if u.Price != nil {
		values["price"] = *u.Price
	}
	if u.OriginalPrice != nil {
		values["original_price"] = *u.OriginalPrice
	}
	if u.CostPrice != nil {
		values["cost_price"] = *u.CostPrice
	}
	if u.SKU != nil {
		values["sku"] = *u.SKU
	}
	if u.Barcode != nil {
		values["barcode"] = *u.Barcode
	}
	if u.Stock != nil {
		values["stock"] = *u.Stock
	}
	if u.LowStockThreshold != nil {
		values["low_stock_threshold"] = *u.LowStockThreshold
	}
	if u.CategoryID != nil {
		values["category_id"] = *u.CategoryID
	}
	if u.ImageURL != nil {
		values["image_url"] = *u.ImageURL
	}
	if u.Images != nil {
		values["images"] = u.Images
	}
	if u.Variants != nil {
		values["variants"] = u.Variants
	}
	if u.Status != nil {
		values["status"] = *u.Status
	}
	if u.IsFeatured != nil {
		values["is_featured"] = *u.IsFeatured
	}
	if u.Discount != nil {
		values["discount"] = *u.Discount
	}
	if u.Weight != nil {
		values["weight"] = *u.Weight
	}
	if u.Dimensions != nil {
		values["dimensions"] = *u.Dimensions
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(values).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}

func (r *productRepository) Top(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("sold_count DESC").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error
	return total, err
}
