package middleware

import (
	"context"
	"errors"
	"strings"

	"papatacos/internal/core/domain"
	"papatacos/internal/core/services"
	"papatacos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionKey is the fiber.Locals key holding the *domain.Session
const SessionKey = "session"

// SessionResolver turns an access token into a live session
type SessionResolver interface {
	ResolveSession(ctx context.Context, accessToken string) (*domain.Session, error)
}

// AuthMiddleware rejects requests without a live session before any handler runs
func AuthMiddleware(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Cookie first, then Authorization header
		accessToken := extractAccessToken(c)

		// 2. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Veuillez vous connecter")
		}

		// 3. Validate token and token version
		session, err := resolver.ResolveSession(c.Context(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return response.Unauthorized(c, "Session expirée, veuillez vous reconnecter")
			case errors.Is(err, services.ErrTokenRevoked):
				return response.Unauthorized(c, "Session terminée, veuillez vous reconnecter")
			case errors.Is(err, services.ErrInvalidToken):
				return response.Unauthorized(c, "Session invalide")
			default:
				return response.InternalServerError(c, "Erreur du serveur, veuillez réessayer")
			}
		}

		// 4. Thread the session to handlers
		c.Locals(SessionKey, session)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil {
			return response.Unauthorized(c, "Veuillez vous connecter")
		}

		for _, allowedRole := range allowedRoles {
			if session.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Accès réservé au propriétaire")
	}
}

// OwnerOnly middleware allows only the owner role
func OwnerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleOwner)
}

// GetSession returns the session set by AuthMiddleware, or nil
func GetSession(c *fiber.Ctx) *domain.Session {
	session, _ := c.Locals(SessionKey).(*domain.Session)
	return session
}

func extractAccessToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
