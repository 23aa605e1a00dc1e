package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_LoginStoresTokenAndAttachesIt(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"message": "login successful", "token": "tok-1"})
		case "/api/employees":
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, []any{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", NewSession(NewMemoryTokenStore()))
	res, err := c.Login(context.Background(), "admin@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.True(t, c.Session().Authenticated())

	list, err := c.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_UnauthorizedClearsTokenAndFiresCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token has expired"})
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("stale"))

	redirected := 0
	c := New(srv.URL, NewSession(store, WithOnUnauthorized(func() { redirected++ })))

	_, err := c.GetEmployee(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "token has expired", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))

	assert.Equal(t, 1, redirected)
	assert.False(t, c.Session().Authenticated())
}

func TestClient_OtherErrorsKeepToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "employee not found"})
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok"))
	c := New(srv.URL, NewSession(store, WithOnUnauthorized(func() { t.Fatal("callback must not fire") })))

	_, err := c.DeleteEmployee(context.Background(), "missing")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.EqualError(t, err, "api: 404 employee not found")
	assert.True(t, c.Session().Authenticated())
}

func TestClient_NoTokenSendsBareRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no authorization token provided"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.ListEmployees(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Me(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc.def.ghi"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewFileTokenStore(path)
	token, err = reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, reopened.Clear())
	require.NoError(t, reopened.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
