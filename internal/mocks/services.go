package mocks

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"public-vision-be/internal/domain"
)

type MediaService struct {
	mock.Mock
}

func (m *MediaService) Upload(ctx context.Context, complaintID uuid.UUID, filename, contentType string, fileSize int64, reader io.Reader) (*domain.ComplaintImage, error) {
	args := m.Called(ctx, complaintID, filename, contentType, fileSize, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplaintImage), args.Error(1)
}

func (m *MediaService) Fetch(ctx context.Context, imageID uuid.UUID) (*domain.ComplaintImage, io.ReadCloser, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ComplaintImage), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *MediaService) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintImage, error) {
	args := m.Called(ctx, complaintID)
	return args.Get(0).([]domain.ComplaintImage), args.Error(1)
}

type GeocodeService struct {
	mock.Mock
}

func (m *GeocodeService) ReverseGeocode(ctx context.Context, lat, lng float64) (*string, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEscalationEmail(ctx context.Context, toEmail, name, complaintTitle string, complaintID string) error {
	args := m.Called(ctx, toEmail, name, complaintTitle, complaintID)
	return args.Error(0)
}

func (m *EmailService) SendResolutionEmail(ctx context.Context, toEmail, name, complaintTitle string) error {
	args := m.Called(ctx, toEmail, name, complaintTitle)
	return args.Error(0)
}

type DuplicateChecker struct {
	mock.Mock
}

func (m *DuplicateChecker) CheckForDuplicate(ctx context.Context, complaint *domain.Complaint) (*domain.Complaint, error) {
	args := m.Called(ctx, complaint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

type Leaser struct {
	mock.Mock
}

func (m *Leaser) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}
