// Package middleware holds fiber middleware shared by both services.
package middleware

import (
	"errors"

	"github.com/amirasaad/fintech-ledger/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtProtected verifies the bearer token and stores the parsed *jwt.Token
// under the "user" local.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(cfg.Secret),
		},
		ContextKey:   "user",
		ErrorHandler: jwtError,
	})
}

// ServiceOnly admits only tokens issued for service-to-service calls. It must
// run after JwtProtected.
func ServiceOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if service, _ := claims["service"].(bool); service {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"type":     "about:blank",
			"title":    "Forbidden",
			"status":   fiber.StatusForbidden,
			"detail":   "endpoint is reserved for service tokens",
			"instance": c.OriginalURL(),
		}, "application/problem+json")
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	title := "Invalid or expired JWT"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		title = "Missing or malformed JWT"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   fiber.StatusUnauthorized,
		"detail":   err.Error(),
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}
