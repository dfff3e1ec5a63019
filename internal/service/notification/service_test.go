package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/domain"
	"public-vision-be/internal/mocks"
	"public-vision-be/internal/realtime"
	"public-vision-be/internal/service/notification"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists Then Pushes", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockPusher := new(mocks.Pusher)
		svc := notification.NewService(mockRepo, new(mocks.UserRepository), mockPusher)

		userID := uuid.New()
		complaintID := uuid.New()

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == userID && n.Message == "hello" && n.Type == domain.NotifInfo
		})).Return(nil).Once()
		mockPusher.On("Push", userID, mock.MatchedBy(func(e realtime.Event) bool {
			return e.Event == realtime.EventNotification
		})).Return(true).Once()

		notif, err := svc.Create(ctx, userID, &complaintID, "hello", domain.NotifInfo)

		assert.NoError(t, err)
		assert.Equal(t, userID, notif.UserID)
		mockRepo.AssertExpectations(t)
		mockPusher.AssertExpectations(t)
	})

	t.Run("Push Failure Does Not Fail Call", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockPusher := new(mocks.Pusher)
		svc := notification.NewService(mockRepo, new(mocks.UserRepository), mockPusher)

		userID := uuid.New()

		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockPusher.On("Push", userID, mock.Anything).Return(false).Once()

		notif, err := svc.Create(ctx, userID, nil, "offline user", domain.NotifInfo)

		assert.NoError(t, err)
		assert.NotNil(t, notif)
	})

	t.Run("Persist Failure Skips Push", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockPusher := new(mocks.Pusher)
		svc := notification.NewService(mockRepo, new(mocks.UserRepository), mockPusher)

		mockRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

		_, err := svc.Create(ctx, uuid.New(), nil, "x", domain.NotifInfo)

		assert.Error(t, err)
		mockPusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
	})
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner Can Mark Read", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.UserRepository), new(mocks.Pusher))

		userID := uuid.New()
		notif := &domain.Notification{ID: uuid.New(), UserID: userID}

		mockRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()
		mockRepo.On("MarkAsRead", ctx, notif.ID).Return(nil).Once()

		assert.NoError(t, svc.MarkAsRead(ctx, userID, notif.ID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Other User Forbidden", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.UserRepository), new(mocks.Pusher))

		notif := &domain.Notification{ID: uuid.New(), UserID: uuid.New()}

		mockRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()

		err := svc.MarkAsRead(ctx, uuid.New(), notif.ID)

		assert.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
		mockRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
	})

	t.Run("Missing Notification", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.UserRepository), new(mocks.Pusher))

		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.MarkAsRead(ctx, uuid.New(), id)

		assert.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestNotifyAdmins(t *testing.T) {
	ctx := context.Background()

	t.Run("Fans Out To Every Admin", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockPusher := new(mocks.Pusher)
		svc := notification.NewService(mockRepo, mockUserRepo, mockPusher)

		admins := []domain.User{{ID: uuid.New()}, {ID: uuid.New()}}
		complaintID := uuid.New()

		mockUserRepo.On("ListByRole", ctx, domain.RoleAdmin).Return(admins, nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Times(2)
		mockPusher.On("Push", mock.Anything, mock.Anything).Return(true).Times(2)

		svc.NotifyAdmins(ctx, &complaintID, "heads up", domain.NotifInfo)

		mockRepo.AssertExpectations(t)
	})

	t.Run("One Failure Does Not Stop The Rest", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockPusher := new(mocks.Pusher)
		svc := notification.NewService(mockRepo, mockUserRepo, mockPusher)

		first := domain.User{ID: uuid.New()}
		second := domain.User{ID: uuid.New()}

		mockUserRepo.On("ListByRole", ctx, domain.RoleAdmin).Return([]domain.User{first, second}, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool { return n.UserID == first.ID })).
			Return(assert.AnError).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool { return n.UserID == second.ID })).
			Return(nil).Once()
		mockPusher.On("Push", second.ID, mock.Anything).Return(true).Once()

		svc.NotifyAdmins(ctx, nil, "heads up", domain.NotifInfo)

		mockRepo.AssertExpectations(t)
	})
}
