package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/lumacart/storefront/internal/catalog/domain"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository builds the MySQL-backed category store.
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, opts domain.CategoryListOptions) ([]domain.Category, error) {
	query := r.db.WithContext(ctx).Model(&domain.Category{})
	if opts.Search != "" {
		query = query.Where("name LIKE ?", "%"+opts.Search+"%")
	}
	if opts.IsActive != nil {
		query = query.Where("is_active = ?", *opts.IsActive)
	}

	var categories []domain.Category
	if err := query.Order("sort_order ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) Update(ctx context.Context, id uint, u domain.CategoryUpdate) error {
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
	if u.ImageURL != nil {
		values["image_url"] = *u.ImageURL
	}
	if u.ParentID != nil {
		values["parent_id"] = *u.ParentID
	}
	if u.IsActive != nil {
		values["is_active"] = *u.IsActive
	}
	if u.SortOrder != nil {
		values["sort_order"] = *u.SortOrder
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Updates(values).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{}).Error
}
