package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-10-21")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2026-10-21T10:00:00+02:00")
	require.True(t, ok)
	assert.Equal(t, 8, d.Hour())

	_, ok = ParseDate("21/10/2026")
	assert.False(t, ok)
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, DefaultRequestTimeout, RequestTimeout(0))
	assert.Equal(t, time.Second, RequestTimeout(time.Second))
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(nil, "store_owner", "admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/deals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/deals", nil)
	req = req.WithContext(ContextWithUser(req.Context(), AuthenticatedUser{ID: "u1", Role: "consumer"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"user role is not authorized to access this route"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/deals", nil)
	req = req.WithContext(ContextWithUser(req.Context(), AuthenticatedUser{ID: "u1", Role: "store_owner"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "x", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.EqualError(t, DecodeJSON(httptest.NewRecorder(), req, &dst), "request body is empty")
}
