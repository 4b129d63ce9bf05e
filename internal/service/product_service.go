package service

import (
	"context"
	"errors"
	"time"

	"glamify/internal/domain"
	"glamify/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogCache holds storefront listings between admin writes
type CatalogCache interface {
	Get(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Set(ctx context.Context, filter domain.ProductFilter, products []*domain.Product) error
	Invalidate(ctx context.Context) error
}

// ProductService defines the interface for catalog business logic
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Browse(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input domain.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        CatalogCache
	logger       *zap.Logger
}

// NewProductService creates a new instance of ProductService. cache may be
// nil, in which case every read goes to the repository.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache CatalogCache,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger,
	}
}

// List returns the whole catalog newest first, straight from the store
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, &domain.PersistenceError{Op: "failed to list products", Err: err}
	}
	return products, nil
}

// Browse serves storefront listings, through the cache when one is configured
func (s *productService) Browse(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if s.cache != nil {
		products, err := s.cache.Get(ctx, filter)
		if err == nil {
			return products, nil
		}
		s.logger.Debug("Catalog cache unavailable, reading from database", zap.Error(err))
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "failed to list products", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, filter, products); err != nil {
			s.logger.Warn("Failed to populate catalog cache", zap.Error(err))
		}
	}

	return products, nil
}

// Get returns a single product or domain.ErrNotFound
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "failed to get product", Err: err}
	}
	return product, nil
}

// Create validates input and stores a new product
func (s *productService) Create(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	draft, err := domain.ParseProductInput(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyDraft(product, draft)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, &domain.PersistenceError{Op: "failed to create product", Err: err}
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.Int("images", len(product.Images)),
	)

	s.invalidate(ctx)
	return product, nil
}

// Update replaces the editable fields of an existing product
func (s *productService) Update(ctx context.Context, id uuid.UUID, input domain.ProductInput) (*domain.Product, error) {
	draft, err := domain.ParseProductInput(input)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{ID: id}
	applyDraft(product, draft)

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.PersistenceError{Op: "failed to update product", Err: err}
	}

	s.logger.Info("Product updated", zap.String("product_id", id.String()))

	s.invalidate(ctx)
	return product, nil
}

// Delete removes a product
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.ErrNotFound
		}
		return &domain.PersistenceError{Op: "failed to delete product", Err: err}
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))

	s.invalidate(ctx)
	return nil
}

// ListCategories returns the distinct category labels in use
func (s *productService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "failed to list categories", Err: err}
	}
	return categories, nil
}

func (s *productService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

func applyDraft(product *domain.Product, draft domain.ProductDraft) {
	product.Name = draft.Name
	product.Description = draft.Description
	product.Price = draft.Price
	product.Stock = draft.Stock
	product.Category = draft.Category
	product.Images = draft.Images
	product.Featured = draft.Featured
}
