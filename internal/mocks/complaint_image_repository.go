package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/domain"
)

type ComplaintImageRepository struct {
	mock.Mock
}

func (m *ComplaintImageRepository) Create(ctx context.Context, image *domain.ComplaintImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *ComplaintImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintImage), args.Error(1)
}

func (m *ComplaintImageRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintImage, error) {
	args := m.Called(ctx, complaintID)
	return args.Get(0).([]domain.ComplaintImage), args.Error(1)
}
