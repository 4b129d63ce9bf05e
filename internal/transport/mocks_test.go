package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"glamify/internal/cart"
	"glamify/internal/domain"
	"glamify/internal/middleware"
	"glamify/internal/repository"
	"glamify/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Mock repositories for testing
type mockUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
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

	delete(m.users, email)
	return nil
}

func (m *mockUserRepository) CountCustomers(ctx context.Context) (int64, error) {
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
	failWith error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
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

	if m.failWith != nil {
		return nil, m.failWith
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
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return 0, m.failWith
	}
	return int64(len(m.products)), nil
}

type mockCategoryRepository struct{}

func (mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	return []*domain.Category{{Name: "tiaras", Products: 1}}, nil
}

type mockOrderRepository struct {
	count int64
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.count++
	return nil
}

func (m *mockOrderRepository) Count(ctx context.Context) (int64, error) {
	return m.count, nil
}

const (
	testSecret   = "test-secret-key"
	testCookie   = "admin_session"
	testEmail    = "admin@glamifycrowns.com"
	testPassword = "Admin123!"
)

// testServer wires every handler over in-memory repositories
type testServer struct {
	router   chi.Router
	users    *mockUserRepository
	products *mockProductRepository
	orders   *mockOrderRepository
	issuer   *service.TokenIssuer
	admin    *domain.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	users := newMockUserRepository()
	products := newMockProductRepository()
	orders := &mockOrderRepository{}
	issuer := service.NewTokenIssuer(testSecret, time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.User{ID: uuid.New(), Email: testEmail, PasswordHash: string(hash), Name: "Admin", IsAdmin: true}
	require.NoError(t, users.Create(context.Background(), admin))

	authService := service.NewAuthService(users, issuer, logger)
	productService := service.NewProductService(products, mockCategoryRepository{}, nil, logger)
	statsService := service.NewStatsService(products, orders, users, logger)
	contactService := service.NewContactService(logger)

	persister, err := cart.NewFilePersister(t.TempDir())
	require.NoError(t, err)

	authMiddleware := middleware.AuthMiddleware(issuer, testCookie, logger)
	noLimit := func(next http.Handler) http.Handler { return next }

	r := chi.NewRouter()
	NewAuthHandler(authService, CookieSettings{Name: testCookie}, logger).RegisterRoutes(r, authMiddleware, noLimit)
	NewProductHandler(productService, logger).RegisterRoutes(r, authMiddleware)
	NewStatsHandler(statsService).RegisterRoutes(r, authMiddleware)
	NewContactHandler(contactService, logger).RegisterRoutes(r, noLimit)
	NewCartHandler(cart.NewStore(persister), productService, false, logger).RegisterRoutes(r)

	return &testServer{
		router:   r,
		users:    users,
		products: products,
		orders:   orders,
		issuer:   issuer,
		admin:    admin,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// adminRequest builds a request carrying a valid admin session cookie
func (s *testServer) adminRequest(t *testing.T, method, path string, body []byte) *http.Request {
	t.Helper()

	token, _, err := s.issuer.Issue(domain.PrincipalFromUser(s.admin))
	require.NoError(t, err)

	req := newJSONRequest(method, path, body)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	return req
}

func newJSONRequest(method, path string, body []byte) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytesReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
