package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"glamify/internal/domain"
	"glamify/internal/middleware"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func loginBody(t *testing.T, email, password string) []byte {
	t.Helper()
	body, err := json.Marshal(LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return body
}

func sessionCookie(w interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(newJSONRequest(http.MethodPost, "/api/auth/login", loginBody(t, testEmail, testPassword)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, srv.admin.ID, resp.User.ID)
	assert.Equal(t, testEmail, resp.User.Email)
	assert.True(t, resp.Expires.After(time.Now()))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, resp.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	session, err := srv.issuer.Parse(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, srv.admin.ID, session.UserID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Customer1!"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, srv.users.Create(context.Background(), &domain.User{
		ID:           uuid.New(),
		Email:        "customer@example.com",
		PasswordHash: string(hash),
		Name:         "Customer",
	}))

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", testPassword},
		{"wrong password", testEmail, "wrong"},
		{"not an admin", "customer@example.com", "Customer1!"},
		{"different case", "ADMIN@glamifycrowns.com", testPassword},
		{"empty credentials", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.do(newJSONRequest(http.MethodPost, "/api/auth/login", loginBody(t, tc.email, tc.password)))
			require.Equal(t, http.StatusUnauthorized, w.Code)

			var resp middleware.ErrorResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, domain.ErrAuthenticationFailed.Error(), resp.Error)
			assert.Nil(t, resp.Details)
			assert.Nil(t, sessionCookie(w))
		})
	}
}

func TestLoginMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(newJSONRequest(http.MethodPost, "/api/auth/login", []byte("{not json")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionReportsTokenSubject(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(srv.adminRequest(t, http.MethodGet, "/api/auth/session", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, srv.admin.ID.String(), resp.User.ID)
	assert.False(t, resp.Expires.IsZero())
}

func TestSessionRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(newJSONRequest(http.MethodGet, "/api/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := newJSONRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "garbage"})
	w = srv.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutExpiresCookie(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(newJSONRequest(http.MethodPost, "/api/auth/logout", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}
