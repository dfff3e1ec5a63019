package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/middleware"
	"public-vision-be/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Name == "" {
		return middleware.BadRequest("Name is required")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if err == user.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.NewPassword) < 8 {
		return middleware.BadRequest("New password must be at least 8 characters")
	}

	if err := h.userService.ChangePassword(c.Context(), userID, input); err != nil {
		if err == user.ErrInvalidPassword {
			return middleware.BadRequest("Current password is incorrect")
		}
		if err == user.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}
