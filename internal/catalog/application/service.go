package application

import (
	"context"

	"github.com/lumacart/storefront/internal/catalog/domain"
	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/pkg/db"
	"github.com/lumacart/storefront/pkg/logger"
	"github.com/lumacart/storefront/pkg/slug"
)

// Service exposes catalog reads and admin writes. Listing failures degrade to
// empty results so the storefront keeps rendering; writes always propagate.
type Service struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewService wires the catalog service.
func NewService(products domain.ProductRepository, categories domain.CategoryRepository) *Service {
	return &Service{products: products, categories: categories}
}

// ListProducts returns products matching opts, newest first.
func (s *Service) ListProducts(ctx context.Context, opts domain.ProductListOptions) []domain.Product {
	products, err := s.products.List(ctx, opts)
	if err != nil {
		logger.Error(ctx, "product listing failed", "error", err)
		return []domain.Product{}
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products
}

// GetProduct returns a product by id.
func (s *Service) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, rpc.Internal(err)
	}
	if product == nil {
		return nil, rpc.NotFound("product not found")
	}
	return product, nil
}

// CreateProduct inserts a product, deriving the slug from the name when the
// caller omitted one.
func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	if p.Status == "" {
		p.Status = domain.ProductActive
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, writeError(err, "product slug already in use")
	}
	return p, nil
}

// UpdateProduct applies a partial update.
func (s *Service) UpdateProduct(ctx context.Context, id uint, u domain.ProductUpdate) error {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return rpc.Internal(err)
	}
	if existing == nil {
		return rpc.NotFound("product not found")
	}
	if err := s.products.Update(ctx, id, u); err != nil {
		return writeError(err, "product slug already in use")
	}
	return nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

// ListCategories returns categories ordered by sort order.
func (s *Service) ListCategories(ctx context.Context, opts domain.CategoryListOptions) []domain.Category {
	categories, err := s.categories.List(ctx, opts)
	if err != nil {
		logger.Error(ctx, "category listing failed", "error", err)
		return []domain.Category{}
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories
}

// GetCategory returns a category by id.
func (s *Service) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, rpc.Internal(err)
	}
	if category == nil {
		return nil, rpc.NotFound("category not found")
	}
	return category, nil
}

// CreateCategory inserts a category, deriving the slug when omitted.
func (s *Service) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, writeError(err, "category slug already in use")
	}
	return c, nil
}

// UpdateCategory applies a partial update.
func (s *Service) UpdateCategory(ctx context.Context, id uint, u domain.CategoryUpdate) error {
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return rpc.Internal(err)
	}
	if existing == nil {
		return rpc.NotFound("category not found")
	}
	if err := s.categories.Update(ctx, id, u); err != nil {
		return writeError(err, "category slug already in use")
	}
	return nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return rpc.Internal(err)
	}
	return nil
}

func writeError(err error, conflictMsg string) error {
	if db.IsDuplicateKey(err) || db.IsForeignKeyViolation(err) {
		return rpc.Conflict(conflictMsg, err)
	}
	return rpc.Internal(err)
}
