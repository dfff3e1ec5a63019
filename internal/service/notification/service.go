package notification

import (
	"context"
	"log"

	"github.com/google/uuid"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/realtime"
	"public-vision-be/internal/repository"
)

// Pusher delivers an event to a connected user. Delivery is best effort and
// the return value only says whether the user had a live connection.
type Pusher interface {
	Push(userID uuid.UUID, event realtime.Event) bool
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, complaintID *uuid.UUID, message string, notifType domain.NotificationType) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	NotifyAdmins(ctx context.Context, complaintID *uuid.UUID, message string, notifType domain.NotificationType)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	pusher    Pusher
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, pusher Pusher) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		pusher:    pusher,
	}
}

// Create persists the notification, then pushes it to the user if connected.
// The push never fails the call: the row is the durable record.
func (s *service) Create(ctx context.Context, userID uuid.UUID, complaintID *uuid.UUID, message string, notifType domain.NotificationType) (*domain.Notification, error) {
	notif := &domain.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		ComplaintID: complaintID,
		Message:     message,
		Type:        notifType,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	s.pusher.Push(userID, realtime.Event{
		Event: realtime.EventNotification,
		Data:  notif,
	})

	return notif, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notif == nil {
		return domain.NotFoundError("notification %s not found", notificationID)
	}
	if notif.UserID != userID {
		return domain.ForbiddenError("notification belongs to another user")
	}

	return s.notifRepo.MarkAsRead(ctx, notificationID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

// NotifyAdmins fans a notification out to every admin. Individual failures
// are logged and skipped so one bad row never blocks the rest.
func (s *service) NotifyAdmins(ctx context.Context, complaintID *uuid.UUID, message string, notifType domain.NotificationType) {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		log.Printf("failed to list admins for notification: %v", err)
		return
	}

	for _, admin := range admins {
		if _, err := s.Create(ctx, admin.ID, complaintID, message, notifType); err != nil {
			log.Printf("failed to notify admin %s: %v", admin.ID, err)
		}
	}
}
