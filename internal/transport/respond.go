package transport

import (
	"errors"
	"net/http"

	"glamify/internal/domain"
	"glamify/internal/middleware"

	"go.uber.org/zap"
)

// respondWithServiceError maps the domain error taxonomy onto HTTP replies.
// fallback is the message used for anything unexpected.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	var (
		validationErr  *domain.ValidationError
		persistenceErr *domain.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Debug("Request failed validation", zap.Error(err))
		middleware.RespondWithValidationErrors(w, validationErr.Fields)

	case errors.Is(err, domain.ErrNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")

	case errors.Is(err, domain.ErrAuthenticationFailed):
		middleware.RespondWithError(w, http.StatusUnauthorized, domain.ErrAuthenticationFailed.Error())

	case errors.As(err, &persistenceErr):
		logger.Error("Store operation failed", zap.String("op", persistenceErr.Op), zap.Error(persistenceErr.Err))
		middleware.RespondWithErrorDetails(w, http.StatusInternalServerError, persistenceErr.Op, persistenceErr.Err.Error())

	default:
		logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// respondWithDecodeError answers a DecodeAndValidate failure
func respondWithDecodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithErrorDetails(w, http.StatusBadRequest, "invalid request body", err.Error())
}
