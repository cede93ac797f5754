package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	userID uuid.UUID
}

func (c *testClaims) GetUserID() uuid.UUID {
	return c.userID
}

type testTokenValidator map[string]uuid.UUID

func (v testTokenValidator) ValidateToken(token string) (UserIDGetter, error) {
	id, ok := v[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &testClaims{userID: id}, nil
}

func protected(t *testing.T, v TokenValidator) (http.Handler, *uuid.UUID) {
	t.Helper()
	var seen uuid.UUID
	h := AuthMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserID(r)
		require.NoError(t, err)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	h, seen := protected(t, testTokenValidator{"good": userID})

	for _, header := range []string{"Bearer good", "bearer good", "BEARER  good"} {
		req := httptest.NewRequest(http.MethodGet, "/drafts", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, header)
		assert.Equal(t, userID, *seen)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	h, _ := protected(t, testTokenValidator{"good": uuid.New(), "anon": uuid.Nil})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "missing bearer token"},
		{"wrong scheme", "Basic good", "missing bearer token"},
		{"no token", "Bearer", "missing bearer token"},
		{"extra parts", "Bearer good extra", "missing bearer token"},
		{"unknown token", "Bearer bad", "invalid token"},
		{"nil subject", "Bearer anon", "token has no subject"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/drafts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestGetUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUser)

	id := uuid.New()
	req = req.WithContext(WithUserID(context.Background(), id))
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	req = req.WithContext(context.WithValue(context.Background(), userIDKey, "not-a-uuid"))
	_, err = GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUser)
}
