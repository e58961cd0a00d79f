package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(JwtProtected(&config.Jwt{Secret: secret}))
	app.Get("/", func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(token.Claims.(jwt.MapClaims)["user_id"].(string))
	})
	return app
}

func sign(t *testing.T, key string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestJwtProtected(t *testing.T) {
	t.Parallel()
	app := newApp()

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", fiber.StatusUnauthorized},
		{"garbage token", "not-a-jwt", fiber.StatusUnauthorized},
		{"wrong key", sign(t, "other-secret", time.Now().Add(time.Hour)), fiber.StatusUnauthorized},
		{"expired", sign(t, secret, time.Now().Add(-time.Hour)), fiber.StatusUnauthorized},
		{"valid", sign(t, secret, time.Now().Add(time.Hour)), fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, tt.token)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status != fiber.StatusOK {
				assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
			}
		})
	}
}

func TestJwtError_Titles(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Get("/malformed", func(c *fiber.Ctx) error {
		return jwtError(c, jwtware.ErrJWTMissingOrMalformed)
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return jwtError(c, errors.New("token is expired"))
	})

	for _, path := range []string{"/malformed", "/invalid"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestServiceOnly(t *testing.T) {
	t.Parallel()
	app := fiber.New()
	app.Use(JwtProtected(&config.Jwt{Secret: secret}), ServiceOnly())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	signClaims := func(claims jwt.MapClaims) string {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"user token", signClaims(jwt.MapClaims{"user_id": "u-1"}), fiber.StatusForbidden},
		{"service false", signClaims(jwt.MapClaims{"sub": "x", "service": false}), fiber.StatusForbidden},
		{"service token", signClaims(jwt.MapClaims{"sub": "transactions", "service": true}), fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, app, tt.token)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
