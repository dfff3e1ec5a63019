package handler

import (
	"github.com/gofiber/fiber/v2"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/realtime"
	"public-vision-be/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Complaint    *ComplaintHandler
	Duplicate    *DuplicateHandler
	Notification *NotificationHandler
	Media        *MediaHandler
	Stream       *StreamHandler
}

func NewHandlers(services *service.Services, hub *realtime.Hub) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Complaint:    NewComplaintHandler(services.Complaint),
		Duplicate:    NewDuplicateHandler(services.Duplicate),
		Notification: NewNotificationHandler(services.Notification),
		Media:        NewMediaHandler(services.Media),
		Stream:       NewStreamHandler(hub, services.Notification),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
