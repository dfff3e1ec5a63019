package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"public-vision-be/internal/config"
	"public-vision-be/internal/domain"
	"public-vision-be/internal/repository"
)

var ErrImageNotFound = errors.New("image not found")

type Service interface {
	Upload(ctx context.Context, complaintID uuid.UUID, filename, contentType string, fileSize int64, reader io.Reader) (*domain.ComplaintImage, error)
	Fetch(ctx context.Context, imageID uuid.UUID) (*domain.ComplaintImage, io.ReadCloser, error)
	ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintImage, error)
}

type service struct {
	imageRepo   repository.ComplaintImageRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(imageRepo repository.ComplaintImageRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		imageRepo:   imageRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

// Upload stores the bytes in object storage first, then the metadata row.
// If the row insert fails the object is removed again so storage and
// database stay consistent.
func (s *service) Upload(ctx context.Context, complaintID uuid.UUID, filename, contentType string, fileSize int64, reader io.Reader) (*domain.ComplaintImage, error) {
	imageID := uuid.New()
	storagePath := fmt.Sprintf("complaints/%s/%s/%s", time.Now().Format("2006/01"), complaintID.String(), imageID.String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	image := &domain.ComplaintImage{
		ID:          imageID,
		ComplaintID: complaintID,
		Filename:    filename,
		ContentType: contentType,
		FileSize:    fileSize,
		StoragePath: storagePath,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	image.URL = s.imageURL(image.ID)
	return image, nil
}

// Fetch returns the image metadata and a reader over its bytes. The bucket
// is private, so bytes are always served through the API.
func (s *service) Fetch(ctx context.Context, imageID uuid.UUID) (*domain.ComplaintImage, io.ReadCloser, error) {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return nil, nil, err
	}
	if image == nil {
		return nil, nil, ErrImageNotFound
	}

	object, err := s.minioClient.GetObject(ctx, s.cfg.MinIOBucket, image.StoragePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch from MinIO: %w", err)
	}

	return image, object, nil
}

func (s *service) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintImage, error) {
	images, err := s.imageRepo.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	for i := range images {
		images[i].URL = s.imageURL(images[i].ID)
	}
	return images, nil
}

func (s *service) imageURL(imageID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/images/%s", imageID)
}
