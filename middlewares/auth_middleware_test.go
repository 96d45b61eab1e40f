package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubParser map[string]services.Claims

func (p stubParser) ParseToken(token string) (services.Claims, error) {
	claims, ok := p[token]
	if !ok {
		return services.Claims{}, services.ErrUnauthorized
	}
	return claims, nil
}

func TestProtectAndAdminOnly(t *testing.T) {
	customer := primitive.NewObjectID()
	parser := stubParser{
		"customer-token": {UserID: customer, Role: models.RoleCustomer},
		"admin-token":    {UserID: primitive.NewObjectID(), Role: models.RoleAdmin},
	}

	app := fiber.New()
	app.Get("/me", Protect(parser), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c).Hex())
	})
	app.Get("/admin", Protect(parser), AdminOnly, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := []struct {
		path   string
		header string
		status int
	}{
		{"/me", "", fiber.StatusUnauthorized},
		{"/me", "Token customer-token", fiber.StatusUnauthorized},
		{"/me", "Bearer unknown", fiber.StatusUnauthorized},
		{"/me", "Bearer customer-token", fiber.StatusOK},
		{"/admin", "Bearer customer-token", fiber.StatusForbidden},
		{"/admin", "Bearer admin-token", fiber.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(fiber.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set(fiber.HeaderAuthorization, tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %q", tc.path, tc.header)
	}
}
