package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/cache"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
)

func TestNewApp_HealthCheck(t *testing.T) {
	catalog := services.NewCatalogService(
		repositories.NewMemoryProductRepository(),
		repositories.NewMemoryCategoryRepository(),
		cache.New(time.Minute),
		nil,
	)
	app := newApp(catalog, "test-token", "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestNewApp_AdminGate(t *testing.T) {
	catalog := services.NewCatalogService(
		repositories.NewMemoryProductRepository(),
		repositories.NewMemoryCategoryRepository(),
		cache.New(time.Minute),
		nil,
	)
	app := newApp(catalog, "test-token", "")

	// Reads are open.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Writes are not.
	body := strings.NewReader(`{"id": "shoes", "name": "Shoes"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories/add", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body = strings.NewReader(`{"id": "shoes", "name": "Shoes"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/categories/add", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := openStore("oracle", "")
	assert.Error(t, err)
}

func TestOpenStore_Memory(t *testing.T) {
	productRepo, categoryRepo, err := openStore("memory", "")
	require.NoError(t, err)
	assert.NotNil(t, productRepo)
	assert.NotNil(t, categoryRepo)
}
