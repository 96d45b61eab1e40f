package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vasanthreddy12/e-commerce/requests"
	"github.com/vasanthreddy12/e-commerce/responses"
	"github.com/vasanthreddy12/e-commerce/services"
)

type UserController struct {
	auth    *services.AuthService
	timeout time.Duration
}

func New(auth *services.AuthService, timeout time.Duration) *UserController {
	return &UserController{auth: auth, timeout: timeout}
}

// UserSignUp
func (h *UserController) UserSignUp(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var reqBody requests.RegisterRequest
	if err := requests.Parse(c, &reqBody); err != nil {
		return responses.Error(c, err)
	}

	session, err := h.auth.Register(ctx, reqBody.Name, reqBody.Email, reqBody.Password)
	if err != nil {
		return responses.Error(c, err)
	}

	//Return the created user
	return responses.Created(c, "User created successfully", fiber.Map{
		"data":  session.User,
		"token": session.Token,
	})
}

func (h *UserController) UserSignIn(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var reqBody requests.LoginRequest
	if err := requests.Parse(c, &reqBody); err != nil {
		return responses.Error(c, err)
	}

	session, err := h.auth.Login(ctx, reqBody.Email, reqBody.Password)
	if err != nil {
		return responses.Error(c, err)
	}

	return responses.OK(c, "User signed in successfully", fiber.Map{
		"data":  session.User,
		"token": session.Token,
	})
}

// UserSignOut is stateless: tokens are not tracked server side, the client
// drops its copy.
func (h *UserController) UserSignOut(c *fiber.Ctx) error {
	return responses.OK(c, "User signed out successfully", nil)
}
