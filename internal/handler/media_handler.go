package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"public-vision-be/internal/middleware"
	"public-vision-be/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// GetImage streams the image bytes out of object storage. The bucket is
// private, so this is the only way clients see complaint photos.
func (h *MediaHandler) GetImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid image ID")
	}

	image, reader, err := h.mediaService.Fetch(c.Context(), id)
	if err != nil {
		if err == media.ErrImageNotFound {
			return middleware.NotFound("Image not found")
		}
		return err
	}
	// The stream is consumed after this handler returns; fasthttp closes it
	// once the response body is written, so it must not be closed here.

	c.Set("Content-Type", image.ContentType)
	c.Set("Cache-Control", "private, max-age=3600")
	return c.SendStream(reader, int(image.FileSize))
}

func (h *MediaHandler) ListByComplaint(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	images, err := h.mediaService.ListByComplaint(c.Context(), complaintID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(images)
}
