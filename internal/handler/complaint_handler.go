package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/middleware"
	"public-vision-be/internal/service/complaint"
)

const maxImageSize = 10 * 1024 * 1024

type ComplaintHandler struct {
	complaintService complaint.Service
}

func NewComplaintHandler(complaintService complaint.Service) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// Create accepts multipart form data so the complaint fields and its photos
// arrive in one request.
func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.Title) < 3 || input.Description == "" || input.Category == "" {
		return middleware.BadRequest("Title, description and category are required")
	}
	if input.LocationLat < -90 || input.LocationLat > 90 || input.LocationLng < -180 || input.LocationLng > 180 {
		return middleware.BadRequest("Coordinates out of range")
	}

	var images []complaint.ImageUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["images"] {
			if file.Size > maxImageSize {
				return middleware.BadRequest("Each image must be less than 10MB")
			}

			contentType := file.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			reader, err := file.Open()
			if err != nil {
				return middleware.BadRequest("Failed to read uploaded file")
			}
			defer reader.Close()

			images = append(images, complaint.ImageUpload{
				Filename:    file.Filename,
				ContentType: contentType,
				FileSize:    file.Size,
				Reader:      reader,
			})
		}
	}

	detail, err := h.complaintService.Create(c.Context(), userID, input, images)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (h *ComplaintHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	detail, err := h.complaintService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

// List dispatches on optional query filters. Only one filter applies at a
// time; unfiltered listing supports sorting by any allow-listed column.
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	if category := c.Query("category"); category != "" {
		result, err := h.complaintService.ListByCategory(c.Context(), category, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := domain.ParseStatus(statusStr)
		if err != nil {
			return err
		}
		result, err := h.complaintService.ListByStatus(c.Context(), status, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	if minStr := c.Query("min_rating"); minStr != "" {
		minRating, err := strconv.Atoi(minStr)
		if err != nil {
			return middleware.BadRequest("Invalid min_rating")
		}
		maxRating := c.QueryInt("max_rating", 5)
		result, err := h.complaintService.ListByRatingRange(c.Context(), minRating, maxRating, params)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(result)
	}

	sort := domain.SortParams{
		SortBy:    c.Query("sort_by"),
		Direction: c.Query("direction"),
	}

	result, err := h.complaintService.List(c.Context(), params, sort)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ComplaintHandler) MyComplaints(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.complaintService.ListByUser(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ComplaintHandler) UpdateStatus(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Status == "" || input.Comment == "" {
		return middleware.BadRequest("Status and comment are required")
	}

	updated, err := h.complaintService.UpdateStatus(c.Context(), actorID, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ComplaintHandler) Assign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input struct {
		StaffID uuid.UUID `json:"staff_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.StaffID == uuid.Nil {
		return middleware.BadRequest("staff_id is required")
	}

	updated, err := h.complaintService.Assign(c.Context(), id, input.StaffID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ComplaintHandler) AddComment(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Comment == "" {
		return middleware.BadRequest("Comment is required")
	}

	update, err := h.complaintService.AddComment(c.Context(), actorID, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(update)
}

func (h *ComplaintHandler) AddFeedback(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.FeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.complaintService.AddFeedback(c.Context(), ownerID, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ComplaintHandler) Reopen(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid complaint ID")
	}

	var input domain.ReopenInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Reason == "" {
		return middleware.BadRequest("Reason is required")
	}

	updated, err := h.complaintService.Reopen(c.Context(), ownerID, id, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ComplaintHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.complaintService.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *ComplaintHandler) MapData(c *fiber.Ctx) error {
	filter := domain.MapFilter{}

	if v := c.Query("min_lat"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return middleware.BadRequest("Invalid min_lat")
		}
		filter.MinLat = &f
	}
	if v := c.Query("max_lat"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return middleware.BadRequest("Invalid max_lat")
		}
		filter.MaxLat = &f
	}
	if v := c.Query("min_lng"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return middleware.BadRequest("Invalid min_lng")
		}
		filter.MinLng = &f
	}
	if v := c.Query("max_lng"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return middleware.BadRequest("Invalid max_lng")
		}
		filter.MaxLng = &f
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("status"); v != "" {
		status, err := domain.ParseStatus(v)
		if err != nil {
			return err
		}
		filter.Status = &status
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return middleware.BadRequest("Invalid start_date, expected RFC3339")
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return middleware.BadRequest("Invalid end_date, expected RFC3339")
		}
		filter.EndDate = &t
	}

	points, err := h.complaintService.MapData(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(points)
}
