package service

import (
	"context"
	"sort"
	"sync"

	"glamify/internal/domain"
	"glamify/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing
type mockUserRepository struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	findErr error
	countFn func() (int64, error)
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[email]; !exists {
		return repository.ErrUserNotFound
	}
	delete(m.users, email)
	return nil
}

func (m *mockUserRepository) CountCustomers(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, user := range m.users {
		if !user.IsAdmin {
			n++
		}
	}
	return n, nil
}

type mockProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
	writeErr error
	listErr  error
	lists    int
	countFn  func() (int64, error)
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}
	stored := *product
	stored.Images = append([]string{}, product.Images...)
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}
	existing, ok := m.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.CreatedAt = existing.CreatedAt
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	found := *product
	return &found, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}

	products := []*domain.Product{}
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		found := *p
		products = append(products, &found)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), nil
}

type mockCategoryRepository struct {
	products *mockProductRepository
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.products.mu.Lock()
	defer m.products.mu.Unlock()

	counts := map[string]int{}
	for _, p := range m.products.products {
		counts[p.Category]++
	}

	categories := []*domain.Category{}
	for name, n := range counts {
		categories = append(categories, &domain.Category{Name: name, Products: n})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

type mockOrderRepository struct {
	count   int64
	countFn func() (int64, error)
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.count++
	return nil
}

func (m *mockOrderRepository) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn()
	}
	return m.count, nil
}

type mockCatalogCache struct {
	mu          sync.Mutex
	entries     map[domain.ProductFilter][]*domain.Product
	invalidated int
	getErr      error
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{entries: make(map[domain.ProductFilter][]*domain.Product)}
}

func (m *mockCatalogCache) Get(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	products, ok := m.entries[filter]
	if !ok {
		return nil, errCacheMiss
	}
	return products, nil
}

func (m *mockCatalogCache) Set(ctx context.Context, filter domain.ProductFilter, products []*domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[filter] = products
	return nil
}

func (m *mockCatalogCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[domain.ProductFilter][]*domain.Product)
	m.invalidated++
	return nil
}
