package responses

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasanthreddy12/e-commerce/requests"
	"github.com/vasanthreddy12/e-commerce/services"
)

func render(t *testing.T, err error) (int, Response) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return Error(c, err) })

	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, testErr)
	body, _ := io.ReadAll(resp.Body)

	var out Response
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{services.ErrEmptyCart, 400, "Cart is empty"},
		{fmt.Errorf("%w: product 1", services.ErrInsufficientStock), 400, "Insufficient stock"},
		{services.ErrPaymentVerificationFailed, 400, "Payment verification failed"},
		{services.ErrOrderNotFound, 404, "Order not found"},
		{services.ErrUnauthorized, 401, "Not authorized"},
		{services.ErrForbidden, 403, "Admin access required"},
		{fmt.Errorf("%w: insert order: boom", services.ErrServerFault), 500, "Server Error"},
		{errors.New("unexpected"), 500, "Server Error"},
		{fiber.ErrMethodNotAllowed, 405, "Method Not Allowed"},
	}
	for _, tc := range cases {
		status, out := render(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.status, out.Status)
		assert.Equal(t, tc.message, out.Message)
		assert.Nil(t, out.Result)
	}
}

func TestValidationErrorListsFields(t *testing.T) {
	err := &requests.ValidationError{Fields: []requests.FieldError{{Field: "email", Message: "is required"}}}
	status, out := render(t, err)
	assert.Equal(t, 400, status)
	require.NotNil(t, out.Result)
	assert.Contains(t, (*out.Result)["errors"], map[string]interface{}{"field": "email", "message": "is required"})
}
