package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/middleware"
)

func newProtectedApp(token, hash string) *fiber.App {
	app := fiber.New()
	app.Post("/admin", middleware.AdminRequired(token, hash), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func do(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAdminRequired_PlainToken(t *testing.T) {
	app := newProtectedApp("secret", "")

	assert.Equal(t, http.StatusUnauthorized, do(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, do(t, app, "secret"))
	assert.Equal(t, http.StatusUnauthorized, do(t, app, "Basic secret"))
	assert.Equal(t, http.StatusUnauthorized, do(t, app, "Bearer wrong"))
	assert.Equal(t, http.StatusOK, do(t, app, "Bearer secret"))
}

func TestAdminRequired_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	app := newProtectedApp("", string(hash))

	assert.Equal(t, http.StatusUnauthorized, do(t, app, "Bearer wrong"))
	assert.Equal(t, http.StatusOK, do(t, app, "Bearer secret"))
}

// With no credential configured, everything is rejected rather than
// everything admitted.
func TestAdminRequired_NoCredentialConfigured(t *testing.T) {
	app := newProtectedApp("", "")

	assert.Equal(t, http.StatusUnauthorized, do(t, app, "Bearer anything"))
	assert.Equal(t, http.StatusUnauthorized, do(t, app, "Bearer "))
}
