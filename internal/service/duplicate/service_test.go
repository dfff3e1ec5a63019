package duplicate_test

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
	"public-vision-be/internal/service/duplicate"
)

func testConfig() *config.Config {
	return &config.Config{
		DuplicateDistanceKm:  0.2,
		DuplicateWindowHours: 48,
	}
}

func TestCheckForDuplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("Links To Earliest Match", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockNotif := new(mocks.NotificationService)
		svc := duplicate.NewService(mockRepo, mockNotif, testConfig())

		earliest := &domain.Complaint{ID: uuid.New(), Title: "Pothole on Main St", LocationLat: -6.2001, LocationLng: 106.8001, CreatedAt: time.Now().Add(-24 * time.Hour)}
		later := domain.Complaint{ID: uuid.New(), LocationLat: -6.2002, LocationLng: 106.8002, CreatedAt: time.Now().Add(-2 * time.Hour)}
		fresh := &domain.Complaint{ID: uuid.New(), UserID: uuid.New(), Title: "Pothole again", Category: "ROAD", LocationLat: -6.2, LocationLng: 106.8}

		mockRepo.On("FindPotentialDuplicates", ctx, "ROAD", -6.2, 106.8, 0.2, mock.AnythingOfType("time.Time")).
			Return([]domain.Complaint{*earliest, later}, nil).Once()
		mockRepo.On("GetByID", ctx, fresh.ID).Return(fresh, nil).Once()
		mockRepo.On("GetByID", ctx, earliest.ID).Return(earliest, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Complaint) bool {
			return c.ID == fresh.ID && c.IsDuplicate && c.OriginalComplaintID != nil && *c.OriginalComplaintID == earliest.ID
		})).Return(nil).Once()
		mockNotif.On("Create", ctx, fresh.UserID, &earliest.ID, mock.AnythingOfType("string"), domain.NotifStatusChange).
			Return(&domain.Notification{}, nil).Once()
		mockNotif.On("NotifyAdmins", ctx, &earliest.ID, mock.AnythingOfType("string"), domain.NotifInfo).Return().Once()

		original, err := svc.CheckForDuplicate(ctx, fresh)

		assert.NoError(t, err)
		assert.NotNil(t, original)
		assert.Equal(t, earliest.ID, original.ID)
		mockRepo.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})

	t.Run("No Match Returns Nil", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockNotif := new(mocks.NotificationService)
		svc := duplicate.NewService(mockRepo, mockNotif, testConfig())

		fresh := &domain.Complaint{ID: uuid.New(), Category: "ROAD", LocationLat: -6.2, LocationLng: 106.8}

		mockRepo.On("FindPotentialDuplicates", ctx, "ROAD", -6.2, 106.8, 0.2, mock.AnythingOfType("time.Time")).
			Return([]domain.Complaint{}, nil).Once()

		original, err := svc.CheckForDuplicate(ctx, fresh)

		assert.NoError(t, err)
		assert.Nil(t, original)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Skips Candidate Outside Radius", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockNotif := new(mocks.NotificationService)
		svc := duplicate.NewService(mockRepo, mockNotif, testConfig())

		farAway := domain.Complaint{ID: uuid.New(), LocationLat: -6.21, LocationLng: 106.81}
		fresh := &domain.Complaint{ID: uuid.New(), Category: "ROAD", LocationLat: -6.2, LocationLng: 106.8}

		mockRepo.On("FindPotentialDuplicates", ctx, "ROAD", -6.2, 106.8, 0.2, mock.AnythingOfType("time.Time")).
			Return([]domain.Complaint{farAway}, nil).Once()

		original, err := svc.CheckForDuplicate(ctx, fresh)

		assert.NoError(t, err)
		assert.Nil(t, original)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Skips Itself", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockNotif := new(mocks.NotificationService)
		svc := duplicate.NewService(mockRepo, mockNotif, testConfig())

		fresh := &domain.Complaint{ID: uuid.New(), Category: "ROAD", LocationLat: -6.2, LocationLng: 106.8}

		mockRepo.On("FindPotentialDuplicates", ctx, "ROAD", -6.2, 106.8, 0.2, mock.AnythingOfType("time.Time")).
			Return([]domain.Complaint{*fresh}, nil).Once()

		original, err := svc.CheckForDuplicate(ctx, fresh)

		assert.NoError(t, err)
		assert.Nil(t, original)
		mockRepo.AssertExpectations(t)
	})
}

func TestMarkAsDuplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("Self Link Rejected", func(t *testing.T) {
		svc := duplicate.NewService(new(mocks.ComplaintRepository), new(mocks.NotificationService), testConfig())

		id := uuid.New()
		_, err := svc.MarkAsDuplicate(ctx, id, id)

		assert.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})

	t.Run("Missing Original", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		svc := duplicate.NewService(mockRepo, new(mocks.NotificationService), testConfig())

		dup := &domain.Complaint{ID: uuid.New()}
		originalID := uuid.New()

		mockRepo.On("GetByID", ctx, dup.ID).Return(dup, nil).Once()
		mockRepo.On("GetByID", ctx, originalID).Return(nil, nil).Once()

		_, err := svc.MarkAsDuplicate(ctx, dup.ID, originalID)

		assert.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("Original Is Itself A Duplicate", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		svc := duplicate.NewService(mockRepo, new(mocks.NotificationService), testConfig())

		dup := &domain.Complaint{ID: uuid.New()}
		original := &domain.Complaint{ID: uuid.New(), IsDuplicate: true}

		mockRepo.On("GetByID", ctx, dup.ID).Return(dup, nil).Once()
		mockRepo.On("GetByID", ctx, original.ID).Return(original, nil).Once()

		_, err := svc.MarkAsDuplicate(ctx, dup.ID, original.ID)

		assert.Error(t, err)
		assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
	})
}

func TestMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("Skips Already Linked And Canonical", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		mockNotif := new(mocks.NotificationService)
		svc := duplicate.NewService(mockRepo, mockNotif, testConfig())

		original := &domain.Complaint{ID: uuid.New(), Title: "Broken street light"}
		linkedID := original.ID
		alreadyLinked := &domain.Complaint{ID: uuid.New(), IsDuplicate: true, OriginalComplaintID: &linkedID}
		fresh := &domain.Complaint{ID: uuid.New(), UserID: uuid.New(), Title: "Street light out"}

		mockRepo.On("GetByID", ctx, original.ID).Return(original, nil)
		mockRepo.On("GetByID", ctx, alreadyLinked.ID).Return(alreadyLinked, nil).Once()
		mockRepo.On("GetByID", ctx, fresh.ID).Return(fresh, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Complaint) bool {
			return c.ID == fresh.ID && c.IsDuplicate
		})).Return(nil).Once()
		mockRepo.On("ListDuplicatesOf", ctx, original.ID).
			Return([]domain.Complaint{*alreadyLinked, *fresh}, nil).Once()
		mockNotif.On("Create", ctx, fresh.UserID, &original.ID, mock.AnythingOfType("string"), domain.NotifStatusChange).
			Return(&domain.Notification{}, nil).Once()
		mockNotif.On("NotifyAdmins", ctx, &original.ID, mock.AnythingOfType("string"), domain.NotifInfo).Return().Once()

		set, err := svc.Merge(ctx, original.ID, []uuid.UUID{original.ID, alreadyLinked.ID, fresh.ID})

		assert.NoError(t, err)
		assert.Len(t, set.Duplicates, 2)
		mockRepo.AssertExpectations(t)
		mockNotif.AssertExpectations(t)
	})

	t.Run("Missing Candidate Aborts", func(t *testing.T) {
		mockRepo := new(mocks.ComplaintRepository)
		svc := duplicate.NewService(mockRepo, new(mocks.NotificationService), testConfig())

		original := &domain.Complaint{ID: uuid.New()}
		missingID := uuid.New()

		mockRepo.On("GetByID", ctx, original.ID).Return(original, nil).Once()
		mockRepo.On("GetByID", ctx, missingID).Return(nil, nil).Once()

		_, err := svc.Merge(ctx, original.ID, []uuid.UUID{missingID})

		assert.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}
