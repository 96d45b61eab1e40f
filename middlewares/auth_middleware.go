package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/responses"
	"github.com/vasanthreddy12/e-commerce/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	localUserID = "userId"
	localRole   = "role"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	ParseToken(token string) (services.Claims, error)
}

// Protect requires a valid bearer token and stores the caller's id and role in
// Locals for the handlers.
func Protect(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Extract the token from the Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return responses.Send(c, fiber.StatusUnauthorized, "No auth token, access denied", nil)
		}

		// Check if the Authorization header starts with "Bearer "
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || tokenString == "" {
			return responses.Send(c, fiber.StatusUnauthorized, "Invalid authorization header format", nil)
		}

		claims, err := parser.ParseToken(tokenString)
		if err != nil {
			return responses.Send(c, fiber.StatusUnauthorized, "Token verification failed, access denied", nil)
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

// AdminOnly must run after Protect.
func AdminOnly(c *fiber.Ctx) error {
	if Role(c) != models.RoleAdmin {
		return responses.Error(c, services.ErrForbidden)
	}
	return c.Next()
}

// UserID is the authenticated caller, or the zero id outside Protect.
func UserID(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals(localUserID).(primitive.ObjectID)
	return id
}

func Role(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(localRole).(models.Role)
	return role
}
