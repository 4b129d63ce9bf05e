package transport

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactAcceptsValidSubmission(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name":"Ada","email":"ada@example.com","message":"Do you ship to Lisbon?"}`
	w := srv.do(newJSONRequest(http.MethodPost, "/api/contact", []byte(body)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestContactReportsInvalidFields(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name":"","email":"not-an-email","message":"` + strings.Repeat("x", 5001) + `"}`
	w := srv.do(newJSONRequest(http.MethodPost, "/api/contact", []byte(body)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ContactResponse
	decodeBody(t, w, &resp)
	assert.False(t, resp.OK)

	fields := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "message"}, fields)
}

func TestContactMalformedBodyIsServerError(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(newJSONRequest(http.MethodPost, "/api/contact", []byte("name=Ada")))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false}`, w.Body.String())
}
