package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

func TestSignup(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(t, env.router, http.MethodPost, "/auth/signup", "", map[string]any{
		"name":     "Alice",
		"email":    "Alice@Example.COM",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email, "email is stored lowercased")
	assert.NotContains(t, rec.Body.String(), "hunter22", "password must never echo back")

	// The returned token is immediately usable
	userID, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	// Same email, different case, is a conflict
	rec = doJSON(t, env.router, http.MethodPost, "/auth/signup", "", map[string]any{
		"name":     "Imposter",
		"email":    "alice@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignup_MissingFields(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"email": "a@b.c", "password": "p"}},
		{"missing email", map[string]any{"name": "A", "password": "p"}},
		{"missing password", map[string]any{"name": "A", "email": "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, env.router, http.MethodPost, "/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv()

	rec := doJSON(t, env.router, http.MethodPost, "/auth/signup", "", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Wrong password and unknown email produce identical responses
	recWrongPwd := doJSON(t, env.router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	recUnknown := doJSON(t, env.router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusUnauthorized, recWrongPwd.Code)
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, recWrongPwd.Body.String(), recUnknown.Body.String())

	rec = doJSON(t, env.router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "ALICE@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, err := env.tokens.Verify(resp.Token)
	assert.NoError(t, err)
}
