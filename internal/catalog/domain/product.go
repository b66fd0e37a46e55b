package domain

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/pkg/jsonfield"
)

// ProductStatus is the lifecycle state of a product listing.
type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductInactive   ProductStatus = "inactive"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// ImageList is a JSON column of image URLs.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonfield.Value(l)
}

func (l *ImageList) Scan(src any) error { return jsonfield.Scan(l, src) }

// Variant is one purchasable variation of a product. Price and stock
// override the product-level values when set.
type Variant struct {
	Color string           `json:"color,omitempty"`
	Size  string           `json:"size,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock *int             `json:"stock,omitempty"`
}

// VariantList is a JSON column of variants.
type VariantList []Variant

func (l VariantList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonfield.Value(l)
}

func (l *VariantList) Scan(src any) error { return jsonfield.Scan(l, src) }

// Dimensions is a JSON column of package measurements in centimetres.
type Dimensions struct {
	Length float64 `json:"length,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (d Dimensions) Value() (driver.Value, error) { return jsonfield.Value(d) }
func (d *Dimensions) Scan(src any) error          { return jsonfield.Scan(d, src) }

// Product is a store listing. Money fields are fixed-point DECIMAL(10,2).
type Product struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	Name              string           `gorm:"size:255;not null" json:"name"`
	Slug              string           `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description       string           `gorm:"type:text" json:"description"`
	Price             decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice     *decimal.Decimal `gorm:"column:original_price;type:decimal(10,2)" json:"originalPrice"`
	CostPrice         *decimal.Decimal `gorm:"column:cost_price;type:decimal(10,2)" json:"costPrice"`
	SKU               string           `gorm:"column:sku;size:100" json:"sku"`
	Barcode           string           `gorm:"size:100" json:"barcode"`
	Stock             int              `gorm:"default:0;not null" json:"stock"`
	LowStockThreshold int              `gorm:"column:low_stock_threshold;default:10" json:"lowStockThreshold"`
	CategoryID        *uint            `gorm:"column:category_id" json:"categoryId"`
	ImageURL          string           `gorm:"column:image_url;type:text" json:"imageUrl"`
	Images            ImageList        `gorm:"type:json" json:"images"`
	Variants          VariantList      `gorm:"type:json" json:"variants"`
	Rating            decimal.Decimal  `gorm:"type:decimal(2,1);default:0" json:"rating"`
	SoldCount         int              `gorm:"column:sold_count;default:0;not null" json:"soldCount"`
	Status            ProductStatus    `gorm:"type:enum('active','inactive','out_of_stock');default:'active';not null" json:"status"`
	IsFeatured        bool             `gorm:"column:is_featured;default:false;not null" json:"isFeatured"`
	Discount          int              `gorm:"default:0" json:"discount"`
	Weight            *decimal.Decimal `gorm:"type:decimal(10,2)" json:"weight"`
	Dimensions        *Dimensions      `gorm:"type:json" json:"dimensions"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// ProductListOptions narrows a product listing. Zero values mean no filter.
// Limit 0 falls back to the repository default.
type ProductListOptions struct {
	Search     string
	CategoryID uint
	Status     ProductStatus
	IsFeatured *bool
	Limit      int
	Offset     int
}

// ProductUpdate carries partial changes. Nil fields are left untouched.
type ProductUpdate struct {
	Name              *string
	Slug              *string
	Description       *string
	Price             *decimal.Decimal
	OriginalPrice     *decimal.Decimal
	CostPrice         *decimal.Decimal
	SKU               *string
	Barcode           *string
	Stock             *int
	LowStockThreshold *int
	CategoryID        *uint
	ImageURL          *string
	Images            ImageList
	Variants          VariantList
	Status            *ProductStatus
	IsFeatured        *bool
	Discount          *int
	Weight            *decimal.Decimal
	Dimensions        *Dimensions
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	// List returns products newest first, capped by the default limit when
	// none is given.
	List(ctx context.Context, opts ProductListOptions) ([]Product, error)
	// GetByID returns the product or nil when absent.
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id uint, u ProductUpdate) error
	Delete(ctx context.Context, id uint) error
	// Top returns the best sellers, most sold first.
	Top(ctx context.Context, limit int) ([]Product, error)
	Count(ctx context.Context) (int64, error)
}
