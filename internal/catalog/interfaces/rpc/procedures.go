package rpc

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lumacart/storefront/internal/catalog/application"
	"github.com/lumacart/storefront/internal/catalog/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type idInput struct {
	ID uint `json:"id" validate:"required"`
}

type listProductsInput struct {
	Search     string `json:"search"`
	CategoryID uint   `json:"categoryId"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
	IsFeatured *bool  `json:"isFeatured"`
	Limit      int    `json:"limit" validate:"omitempty,min=1,max=500"`
	Offset     int    `json:"offset" validate:"omitempty,min=0"`
}

type createProductInput struct {
	Name              string             `json:"name" validate:"required"`
	Slug              string             `json:"slug"`
	Description       string             `json:"description"`
	Price             decimal.Decimal    `json:"price" validate:"required"`
	OriginalPrice     *decimal.Decimal   `json:"originalPrice"`
	CostPrice         *decimal.Decimal   `json:"costPrice"`
	SKU               string             `json:"sku"`
	Barcode           string             `json:"barcode"`
	Stock             int                `json:"stock"`
	LowStockThreshold int                `json:"lowStockThreshold"`
	CategoryID        *uint              `json:"categoryId"`
	ImageURL          string             `json:"imageUrl"`
	Images            domain.ImageList   `json:"images"`
	Variants          domain.VariantList `json:"variants"`
	Status            string             `json:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
	IsFeatured        bool               `json:"isFeatured"`
	Discount          int                `json:"discount"`
	Weight            *decimal.Decimal   `json:"weight"`
	Dimensions        *domain.Dimensions `json:"dimensions"`
}

type updateProductInput struct {
	ID                uint               `json:"id" validate:"required"`
	Name              *string            `json:"name"`
	Slug              *string            `json:"slug"`
	Description       *string            `json:"description"`
	Price             *decimal.Decimal   `json:"price"`
	OriginalPrice     *decimal.Decimal   `json:"originalPrice"`
	CostPrice         *decimal.Decimal   `json:"costPrice"`
	SKU               *string            `json:"sku"`
	Barcode           *string            `json:"barcode"`
	Stock             *int               `json:"stock"`
	LowStockThreshold *int               `json:"lowStockThreshold"`
	CategoryID        *uint              `json:"categoryId"`
	ImageURL          *string            `json:"imageUrl"`
	Images            domain.ImageList   `json:"images"`
	Variants          domain.VariantList `json:"variants"`
	Status            *string            `json:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
	IsFeatured        *bool              `json:"isFeatured"`
	Discount          *int               `json:"discount"`
	Weight            *decimal.Decimal   `json:"weight"`
	Dimensions        *domain.Dimensions `json:"dimensions"`
}

type listCategoriesInput struct {
	Search   string `json:"search"`
	IsActive *bool  `json:"isActive"`
}

type createCategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ParentID    *uint  `json:"parentId"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

type updateCategoryInput struct {
	ID          uint    `json:"id" validate:"required"`
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	ParentID    *uint   `json:"parentId"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

// Register mounts the products and categories namespaces.
func Register(r *rpc.Router, svc *application.Service) {
	r.Namespace("products",
		rpc.Query("list", rpc.Public, func(ctx context.Context, call *rpc.Call, in listProductsInput) ([]domain.Product, error) {
			return svc.ListProducts(ctx, domain.ProductListOptions{
				Search:     in.Search,
				CategoryID: in.CategoryID,
				Status:     domain.ProductStatus(in.Status),
				IsFeatured: in.IsFeatured,
				Limit:      in.Limit,
				Offset:     in.Offset,
			}), nil
		}),
		rpc.Query("getById", rpc.Public, func(ctx context.Context, call *rpc.Call, in idInput) (*domain.Product, error) {
			return svc.GetProduct(ctx, in.ID)
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createProductInput) (*domain.Product, error) {
			product := &domain.Product{
				Name:              in.Name,
				Slug:              in.Slug,
				Description:       in.Description,
				Price:             in.Price,
				OriginalPrice:     in.OriginalPrice,
				CostPrice:         in.CostPrice,
				SKU:               in.SKU,
				Barcode:           in.Barcode,
				Stock:             in.Stock,
				LowStockThreshold: in.LowStockThreshold,
				CategoryID:        in.CategoryID,
				ImageURL:          in.ImageURL,
				Images:            in.Images,
				Variants:          in.Variants,
				Status:            domain.ProductStatus(in.Status),
				IsFeatured:        in.IsFeatured,
				Discount:          in.Discount,
				Weight:            in.Weight,
				Dimensions:        in.Dimensions,
			}
			return svc.CreateProduct(ctx, product)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateProductInput) (bool, error) {
			update := domain.ProductUpdate{
				Name:              in.Name,
				Slug:              in.Slug,
				Description:       in.Description,
				Price:             in.Price,
				OriginalPrice:     in.OriginalPrice,
				CostPrice:         in.CostPrice,
				SKU:               in.SKU,
				Barcode:           in.Barcode,
				Stock:             in.Stock,
				LowStockThreshold: in.LowStockThreshold,
				CategoryID:        in.CategoryID,
				ImageURL:          in.ImageURL,
				Images:            in.Images,
				Variants:          in.Variants,
				IsFeatured:        in.IsFeatured,
				Discount:          in.Discount,
				Weight:            in.Weight,
				Dimensions:        in.Dimensions,
			}
			if in.Status != nil {
				status := domain.ProductStatus(*in.Status)
				update.Status = &status
			}
			if err := svc.UpdateProduct(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteProduct(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)

	r.Namespace("categories",
		rpc.Query("list", rpc.Public, func(ctx context.Context, call *rpc.Call, in listCategoriesInput) ([]domain.Category, error) {
			return svc.ListCategories(ctx, domain.CategoryListOptions{
				Search:   in.Search,
				IsActive: in.IsActive,
			}), nil
		}),
		rpc.Query("getById", rpc.Public, func(ctx context.Context, call *rpc.Call, in idInput) (*domain.Category, error) {
			return svc.GetCategory(ctx, in.ID)
		}),
		rpc.Mutation("create", rpc.Admin, func(ctx context.Context, call *rpc.Call, in createCategoryInput) (*domain.Category, error) {
			category := &domain.Category{
				Name:        in.Name,
				Slug:        in.Slug,
				Description: in.Description,
				ImageURL:    in.ImageURL,
				ParentID:    in.ParentID,
				IsActive:    in.IsActive == nil || *in.IsActive,
				SortOrder:   in.SortOrder,
			}
			return svc.CreateCategory(ctx, category)
		}),
		rpc.Mutation("update", rpc.Admin, func(ctx context.Context, call *rpc.Call, in updateCategoryInput) (bool, error) {
			update := domain.CategoryUpdate{
				Name:        in.Name,
				Slug:        in.Slug,
				Description: in.Description,
				ImageURL:    in.ImageURL,
				ParentID:    in.ParentID,
				IsActive:    in.IsActive,
				SortOrder:   in.SortOrder,
			}
			if err := svc.UpdateCategory(ctx, in.ID, update); err != nil {
				return false, err
			}
			return true, nil
		}),
		rpc.Mutation("delete", rpc.Admin, func(ctx context.Context, call *rpc.Call, in idInput) (bool, error) {
			if err := svc.DeleteCategory(ctx, in.ID); err != nil {
				return false, err
			}
			return true, nil
		}),
	)
}
