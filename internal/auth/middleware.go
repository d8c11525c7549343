package auth

import (
	"fmt"
	"strings"

	"freshmart-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const ctxClaimsKey = "auth_claims"

func Middleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not parse token claims")
		}

		c.Locals(ctxClaimsKey, claims)

		return c.Next()
	}
}

// ClaimsFromCtx is the single accessor for the authenticated principal.
// Handlers receive the claims explicitly instead of reading loose
// request-local values.
func ClaimsFromCtx(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals(ctxClaimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authentication context")
	}
	return claims, nil
}
