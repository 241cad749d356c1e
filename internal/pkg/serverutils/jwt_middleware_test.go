package serverutils_test

import (
	"net/http/httptest"
	"testing"

	"tg-assist-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/guarded", serverutils.JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"admin_id": ctx.Locals("admin_id")})
	})
	return app
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJwtMiddlewareMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newGuardedApp()

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newGuardedApp()

	token := signToken(t, jwt.MapClaims{"sub": "u1", "role": "admin"}, "some-other-secret")
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareNonAdminRole(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newGuardedApp()

	token := signToken(t, jwt.MapClaims{"sub": "u1", "role": "viewer"}, testSecret)
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJwtMiddlewareAdminPasses(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newGuardedApp()

	token := signToken(t, jwt.MapClaims{"sub": "u1", "role": "admin"}, testSecret)
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
