package transport

import (
	"errors"
	"net/http"
	"time"

	"glamify/internal/cart"
	"glamify/internal/middleware"
	"glamify/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// CartCookieName holds the anonymous cart id
	CartCookieName = "cart_id"
	cartCookieTTL  = 30 * 24 * time.Hour
)

// AddCartItemRequest adds one product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// UpdateCartItemRequest sets the quantity of a line item; zero removes it
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartResponse is the cart as the storefront renders it
type CartResponse struct {
	Items     []cart.LineItem `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  float64         `json:"subtotal"`
}

// CartHandler exposes the shopping cart. Carts are anonymous and keyed by a
// cookie; prices are snapshotted when an item is added.
type CartHandler struct {
	store          *cart.Store
	productService service.ProductService
	secureCookie   bool
	logger         *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(store *cart.Store, productService service.ProductService, secureCookie bool, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		store:          store,
		productService: productService,
		secureCookie:   secureCookie,
		logger:         logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
	})
}

// GetCart returns the caller's cart, empty when there is none yet
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(r)
	if !ok {
		h.respondWithCart(w, cart.New())
		return
	}

	c, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.String("cart_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	h.respondWithCart(w, c)
}

// AddItem snapshots a product into the cart. Out of stock products cannot
// be added; stock is not checked again afterwards.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.Get(r.Context(), productID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to add item")
		return
	}

	if product.Stock == 0 {
		middleware.RespondWithError(w, http.StatusConflict, "product is out of stock")
		return
	}

	image := cart.DefaultImage
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	item := cart.LineItem{
		ID:       product.ID.String(),
		Name:     product.Name,
		Price:    product.Price,
		Image:    image,
		Quantity: req.Quantity,
	}

	h.mutate(w, r, func(c *cart.Cart) { c.AddItem(item) })
}

// UpdateItem sets the quantity of a line item
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	itemID := chi.URLParam(r, "id")
	h.mutate(w, r, func(c *cart.Cart) { c.UpdateQuantity(itemID, *req.Quantity) })
}

// RemoveItem deletes a line item; removing an absent item is not an error
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	h.mutate(w, r, func(c *cart.Cart) { c.RemoveItem(itemID) })
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(c *cart.Cart) { c.Clear() })
}

func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(*cart.Cart)) {
	id, ok := h.cartID(r)
	if !ok {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CartCookieName,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(cartCookieTTL),
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}

	c, err := h.store.Update(r.Context(), id, fn)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidCartID) {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid cart")
			return
		}
		h.logger.Error("Failed to update cart", zap.String("cart_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	h.respondWithCart(w, c)
}

// cartID reads the cart cookie. Anything that is not a uuid is ignored.
func (h *CartHandler) cartID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CartCookieName)
	if err != nil {
		return "", false
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, c *cart.Cart) {
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items:     c.Items(),
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	})
}
