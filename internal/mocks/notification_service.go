package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/realtime"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, userID uuid.UUID, complaintID *uuid.UUID, message string, notifType domain.NotificationType) (*domain.Notification, error) {
	args := m.Called(ctx, userID, complaintID, message, notifType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) NotifyAdmins(ctx context.Context, complaintID *uuid.UUID, message string, notifType domain.NotificationType) {
	m.Called(ctx, complaintID, message, notifType)
}

type Pusher struct {
	mock.Mock
}

func (m *Pusher) Push(userID uuid.UUID, event realtime.Event) bool {
	args := m.Called(userID, event)
	return args.Bool(0)
}
