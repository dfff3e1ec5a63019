package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/middleware"
	"public-vision-be/internal/service/duplicate"
)

type DuplicateHandler struct {
	duplicateService duplicate.Service
}

func NewDuplicateHandler(duplicateService duplicate.Service) *DuplicateHandler {
	return &DuplicateHandler{duplicateService: duplicateService}
}

func (h *DuplicateHandler) GetDuplicates(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	set, err := h.duplicateService.GetDuplicates(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(set)
}

func (h *DuplicateHandler) MarkAsDuplicate(c *fiber.Ctx) error {
	duplicateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input struct {
		OriginalID uuid.UUID `json:"original_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.OriginalID == uuid.Nil {
		return middleware.BadRequest("original_id is required")
	}

	original, err := h.duplicateService.MarkAsDuplicate(c.Context(), duplicateID, input.OriginalID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Complaint marked as duplicate",
		"original": original,
	})
}

func (h *DuplicateHandler) Merge(c *fiber.Ctx) error {
	originalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.MergeDuplicatesInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.DuplicateIDs) == 0 {
		return middleware.BadRequest("duplicate_ids must not be empty")
	}

	set, err := h.duplicateService.Merge(c.Context(), originalID, input.DuplicateIDs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(set)
}
