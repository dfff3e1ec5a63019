package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/domain"
)

type ComplaintRepository struct {
	mock.Mock
}

func (m *ComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *ComplaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

func (m *ComplaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *ComplaintRepository) List(ctx context.Context, params domain.PaginationParams, sort domain.SortParams) ([]domain.Complaint, int64, error) {
	args := m.Called(ctx, params, sort)
	return args.Get(0).([]domain.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *ComplaintRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *ComplaintRepository) ListByCategory(ctx context.Context, category string, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	args := m.Called(ctx, category, params)
	return args.Get(0).([]domain.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *ComplaintRepository) ListByStatus(ctx context.Context, status domain.ComplaintStatus, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	args := m.Called(ctx, status, params)
	return args.Get(0).([]domain.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *ComplaintRepository) ListByRatingRange(ctx context.Context, minRating, maxRating int, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	args := m.Called(ctx, minRating, maxRating, params)
	return args.Get(0).([]domain.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *ComplaintRepository) ListForMap(ctx context.Context, filter domain.MapFilter) ([]domain.ComplaintMapPoint, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ComplaintMapPoint), args.Error(1)
}

func (m *ComplaintRepository) FindPotentialDuplicates(ctx context.Context, category string, lat, lng, distanceKm float64, cutoff time.Time) ([]domain.Complaint, error) {
	args := m.Called(ctx, category, lat, lng, distanceKm, cutoff)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *ComplaintRepository) ListDuplicatesOf(ctx context.Context, originalID uuid.UUID) ([]domain.Complaint, error) {
	args := m.Called(ctx, originalID)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *ComplaintRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Complaint, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}

func (m *ComplaintRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ComplaintRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *ComplaintRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *ComplaintRepository) TopAreas(ctx context.Context, limit int) ([]domain.AreaCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AreaCount), args.Error(1)
}
