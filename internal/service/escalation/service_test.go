package escalation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/config"
	"public-vision-be/internal/domain"
	"public-vision-be/internal/mocks"
	"public-vision-be/internal/service/escalation"
)

func testConfig() *config.Config {
	return &config.Config{
		SLAWindow:               72 * time.Hour,
		EscalationSweepInterval: time.Hour,
		EscalationLeaseTTL:      10 * time.Minute,
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("Escalates Overdue Complaints", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockNotif := new(mocks.NotificationService)
		mockLeaser := new(mocks.Leaser)
		svc := escalation.NewService(mockRepo, mockUserRepo, mockNotif, nil, mockLeaser, testConfig())

		assignee := uuid.New()
		overdue := domain.Complaint{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			Title:      "Blocked drain",
			Status:     domain.StatusInProgress,
			AssignedTo: &assignee,
			DueDate:    time.Now().Add(-time.Hour),
		}

		mockLeaser.On("Acquire", ctx, mock.AnythingOfType("string"), 10*time.Minute).Return(true, nil).Once()
		mockRepo.On("ListOverdue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Complaint{overdue}, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Complaint) bool {
			return c.ID == overdue.ID && c.Escalated && c.Status == domain.StatusEscalated
		})).Return(nil).Once()
		mockNotif.On("Create", ctx, overdue.UserID, &overdue.ID, mock.AnythingOfType("string"), domain.NotifStatusChange).
			Return(&domain.Notification{}, nil).Once()
		mockNotif.On("Create", ctx, assignee, &overdue.ID, mock.AnythingOfType("string"), domain.NotifAssignment).
			Return(&domain.Notification{}, nil).Once()
		mockNotif.On("NotifyAdmins", ctx, &overdue.ID, mock.AnythingOfType("string"), domain.NotifInfo).Return().Once()

		count, err := svc.Sweep(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		mockRepo.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})

	t.Run("Skips When Lease Not Acquired", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockLeaser := new(mocks.Leaser)
		svc := escalation.NewService(mockRepo, new(mocks.UserRepository), new(mocks.NotificationService), nil, mockLeaser, testConfig())

		mockLeaser.On("Acquire", ctx, mock.AnythingOfType("string"), 10*time.Minute).Return(false, nil).Once()

		count, err := svc.Sweep(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, count)
		mockRepo.AssertNotCalled(t, "ListOverdue", mock.Anything, mock.Anything)
	})

	t.Run("Continues Past Update Failure", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockNotif := new(mocks.NotificationService)
		mockLeaser := new(mocks.Leaser)
		svc := escalation.NewService(mockRepo, new(mocks.UserRepository), mockNotif, nil, mockLeaser, testConfig())

		bad := domain.Complaint{ID: uuid.New(), UserID: uuid.New(), Status: domain.StatusSubmitted, DueDate: time.Now().Add(-2 * time.Hour)}
		good := domain.Complaint{ID: uuid.New(), UserID: uuid.New(), Status: domain.StatusSubmitted, DueDate: time.Now().Add(-time.Hour)}

		mockLeaser.On("Acquire", ctx, mock.AnythingOfType("string"), 10*time.Minute).Return(true, nil).Once()
		mockRepo.On("ListOverdue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Complaint{bad, good}, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Complaint) bool { return c.ID == bad.ID })).
			Return(assert.AnError).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Complaint) bool { return c.ID == good.ID })).
			Return(nil).Once()
		mockNotif.On("Create", ctx, good.UserID, &good.ID, mock.AnythingOfType("string"), domain.NotifStatusChange).
			Return(&domain.Notification{}, nil).Once()
		mockNotif.On("NotifyAdmins", ctx, &good.ID, mock.AnythingOfType("string"), domain.NotifInfo).Return().Once()

		count, err := svc.Sweep(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, count)
		mockRepo.AssertExpectations(t)
	})
}
