package transport

import (
	"errors"
	"net/http"

	"glamify/internal/domain"
	"glamify/internal/middleware"
	"glamify/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactRequest represents the contact form payload
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactResponse is the contact form reply
type ContactResponse struct {
	OK     bool                `json:"ok"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

// ContactHandler handles contact form submissions
type ContactHandler struct {
	contactService service.ContactService
	logger         *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService service.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// RegisterRoutes registers the contact route behind limiter
func (h *ContactHandler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.With(limiter).Post("/api/contact", h.Submit)
}

// Submit accepts a contact form. Invalid fields get a 400 with the field
// errors; anything else that goes wrong is a bare {ok:false} 500.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if errors.Is(err, middleware.ErrMalformedBody) {
			h.logger.Error("Error processing contact submission", zap.Error(err))
			middleware.RespondWithJSON(w, http.StatusInternalServerError, ContactResponse{OK: false})
			return
		}

		middleware.RespondWithJSON(w, http.StatusBadRequest, ContactResponse{
			OK:     false,
			Errors: middleware.FormatValidationErrors(err),
		})
		return
	}

	err := h.contactService.Submit(r.Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.logger.Error("Error processing contact submission", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusInternalServerError, ContactResponse{OK: false})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ContactResponse{OK: true})
}
