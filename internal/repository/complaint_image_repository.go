package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"public-vision-be/internal/domain"
)

type ComplaintImageRepository interface {
	Create(ctx context.Context, image *domain.ComplaintImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintImage, error)
	ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintImage, error)
}

type complaintImageRepository struct {
	db *sqlx.DB
}

func NewComplaintImageRepository(db *sqlx.DB) ComplaintImageRepository {
	return &complaintImageRepository{db: db}
}

func (r *complaintImageRepository) Create(ctx context.Context, image *domain.ComplaintImage) error {
	query := `
		INSERT INTO complaint_images (image_id, complaint_id, filename, content_type, file_size, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		image.ID, image.ComplaintID, image.Filename, image.ContentType, image.FileSize, image.StoragePath,
	).Scan(&image.CreatedAt)
}

func (r *complaintImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ComplaintImage, error) {
	var image domain.ComplaintImage
	query := `SELECT * FROM complaint_images WHERE image_id = $1`

	err := r.db.GetContext(ctx, &image, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *complaintImageRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintImage, error) {
	var images []domain.ComplaintImage
	query := `
		SELECT * FROM complaint_images
		WHERE complaint_id = $1
		ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &images, query, complaintID)
	return images, err
}
