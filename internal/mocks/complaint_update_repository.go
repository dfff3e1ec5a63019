package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/domain"
)

type ComplaintUpdateRepository struct {
	mock.Mock
}

func (m *ComplaintUpdateRepository) Create(ctx context.Context, update *domain.ComplaintUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *ComplaintUpdateRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintUpdate, error) {
	args := m.Called(ctx, complaintID)
	return args.Get(0).([]domain.ComplaintUpdate), args.Error(1)
}
