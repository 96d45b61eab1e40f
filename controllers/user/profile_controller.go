package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/vasanthreddy12/e-commerce/middlewares"
	"github.com/vasanthreddy12/e-commerce/requests"
	"github.com/vasanthreddy12/e-commerce/responses"
)

func (h *UserController) GetUserProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	user, err := h.auth.Profile(ctx, middlewares.UserID(c))
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Successfully fetched user profile", fiber.Map{"data": user})
}

func (h *UserController) UpdateUserProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	//Parse request body
	var reqBody requests.UpdateProfileRequest
	if err := requests.Parse(c, &reqBody); err != nil {
		return responses.Error(c, err)
	}

	user, err := h.auth.UpdateProfile(ctx, middlewares.UserID(c), reqBody.Name)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Profile updated successfully", fiber.Map{"data": user})
}
