package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

const claimsKey = "auth_claims"

// Middleware validates bearer tokens. Validation is a pure computation over
// the token itself; the store is never consulted, so role changes and
// deactivation take effect only when the token expires.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the bearer-token middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewAuthenticationError("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewAuthenticationError("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewAuthenticationError("invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// RequireRole ensures the caller's token carries the required role, with
// admin passing any requirement.
func RequireRole(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewAuthenticationError("authentication required")
		}
		if err := Authorize(claims.Role, role); err != nil {
			return err
		}
		return c.Next()
	}
}

// ClaimsFromContext retrieves the authenticated caller's claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
