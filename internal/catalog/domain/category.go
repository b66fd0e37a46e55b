package domain

import (
	"context"
	"time"
)

// Category groups products for browsing. Slug is unique across the store.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"imageUrl"`
	ParentID    *uint     `gorm:"column:parent_id" json:"parentId"`
	IsActive    bool      `gorm:"column:is_active;default:true;not null" json:"isActive"`
	SortOrder   int       `gorm:"column:sort_order;default:0;not null" json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

// CategoryListOptions narrows a category listing. Zero values mean no filter.
type CategoryListOptions struct {
	Search   string
	IsActive *bool
}

// CategoryUpdate carries partial changes. Nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	ParentID    *uint
	IsActive    *bool
	SortOrder   *int
}

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	// List returns categories ordered by sort order ascending.
	List(ctx context.Context, opts CategoryListOptions) ([]Category, error)
	// GetByID returns the category or nil when absent.
	GetByID(ctx context.Context, id uint) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, id uint, u CategoryUpdate) error
	Delete(ctx context.Context, id uint) error
}
