package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tron-wallet/tron_wallet/internal/auth"
)

const userIDLocal = "user_id"

// TokenVerifier resolves a bearer token to its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

var _ TokenVerifier = (*auth.Tokens)(nil)

// JWTAuth validates bearer access tokens and stores the subject in
// c.Locals("user_id").
func JWTAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if len(authz) < len("Bearer ") || !strings.EqualFold(authz[:len("Bearer ")], "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		if tokenStr == "" {
			return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
		}

		sub, err := tokens.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return fiber.NewError(http.StatusUnauthorized, "Token has expired")
			}
			return fiber.NewError(http.StatusUnauthorized, "Invalid token")
		}

		c.Locals(userIDLocal, sub)
		return c.Next()
	}
}
