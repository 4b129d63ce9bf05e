package transport

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"glamify/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCountsCatalogOrdersAndCustomers(t *testing.T) {
	srv := newTestServer(t)
	seedProduct(t, srv, "tiara", "tiaras", false, time.Hour)
	seedProduct(t, srv, "crown", "crowns", false, time.Minute)
	require.NoError(t, srv.orders.Create(context.Background(), &domain.Order{ID: uuid.New()}))
	require.NoError(t, srv.users.Create(context.Background(), &domain.User{ID: uuid.New(), Email: "c@example.com"}))

	w := srv.do(srv.adminRequest(t, http.MethodGet, "/api/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":2,"orders":1,"customers":1}`, w.Body.String())
}

func TestStatsFailureReportsZeros(t *testing.T) {
	srv := newTestServer(t)
	seedProduct(t, srv, "tiara", "tiaras", false, time.Hour)
	srv.products.failWith = errors.New("database is down")

	w := srv.do(srv.adminRequest(t, http.MethodGet, "/api/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"products":0,"orders":0,"customers":0}`, w.Body.String())
}

func TestStatsRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(newJSONRequest(http.MethodGet, "/api/admin/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
