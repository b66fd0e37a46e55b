package application

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumacart/storefront/internal/catalog/domain"
	"github.com/lumacart/storefront/internal/rpc"
)

type fakeProductRepo struct {
	products  map[uint]*domain.Product
	nextID    uint
	listErr   error
	createErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]*domain.Product{}, nextID: 1}
}

func (r *fakeProductRepo) List(ctx context.Context, opts domain.ProductListOptions) ([]domain.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = r.nextID
	r.nextID++
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, id uint, u domain.ProductUpdate) error {
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Top(ctx context.Context, limit int) ([]domain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type fakeCategoryRepo struct {
	categories map[uint]*domain.Category
	nextID     uint
	listErr    error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uint]*domain.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) List(ctx context.Context, opts domain.CategoryListOptions) ([]domain.Category, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	return r.categories[id], nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	c.ID = r.nextID
	r.nextID++
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, id uint, u domain.CategoryUpdate) error {
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uint) error {
	delete(r.categories, id)
	return nil
}

func newTestService() (*Service, *fakeProductRepo, *fakeCategoryRepo) {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo()
	return NewService(products, categories), products, categories
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc, _, _ := newTestService()

	category, err := svc.CreateCategory(context.Background(), &domain.Category{Name: "Eletrônicos", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "eletronicos", category.Slug)
}

func TestCreateCategoryKeepsExplicitSlug(t *testing.T) {
	svc, _, _ := newTestService()

	category, err := svc.CreateCategory(context.Background(), &domain.Category{Name: "Casa e Jardim", Slug: "jardim"})
	require.NoError(t, err)
	assert.Equal(t, "jardim", category.Slug)
}

func TestCreateProductDerivesSlugAndDefaultsStatus(t *testing.T) {
	svc, _, _ := newTestService()

	product, err := svc.CreateProduct(context.Background(), &domain.Product{Name: "Fone de Ouvido"})
	require.NoError(t, err)
	assert.Equal(t, "fone-de-ouvido", product.Slug)
	assert.Equal(t, domain.ProductActive, product.Status)
}

func TestCreateProductDuplicateSlugIsConflict(t *testing.T) {
	svc, products, _ := newTestService()
	products.createErr = &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

	_, err := svc.CreateProduct(context.Background(), &domain.Product{Name: "Fone"})
	require.Error(t, err)
	assert.Equal(t, rpc.CodeConflict, rpc.AsError(err).Code)
}

func TestListProductsDegradesOnStoreError(t *testing.T) {
	svc, products, _ := newTestService()
	products.listErr = errors.New("connection refused")

	result := svc.ListProducts(context.Background(), domain.ProductListOptions{})
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListCategoriesDegradesOnStoreError(t *testing.T) {
	svc, _, categories := newTestService()
	categories.listErr = errors.New("connection refused")

	result := svc.ListCategories(context.Background(), domain.CategoryListOptions{})
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestGetProductMissingIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetProduct(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, rpc.CodeNotFound, rpc.AsError(err).Code)
}

func TestUpdateProductMissingIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.UpdateProduct(context.Background(), 404, domain.ProductUpdate{})
	require.Error(t, err)
	assert.Equal(t, rpc.CodeNotFound, rpc.AsError(err).Code)
}
