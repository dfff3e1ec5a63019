package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"public-vision-be/internal/domain"
)

type ComplaintUpdateRepository interface {
	Create(ctx context.Context, update *domain.ComplaintUpdate) error
	ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintUpdate, error)
}

type complaintUpdateRepository struct {
	db *sqlx.DB
}

func NewComplaintUpdateRepository(db *sqlx.DB) ComplaintUpdateRepository {
	return &complaintUpdateRepository{db: db}
}

func (r *complaintUpdateRepository) Create(ctx context.Context, update *domain.ComplaintUpdate) error {
	query := `
		INSERT INTO complaint_updates (update_id, complaint_id, updated_by, status, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		update.ID, update.ComplaintID, update.UpdatedBy, update.Status, update.Comment,
	).Scan(&update.CreatedAt)
}

func (r *complaintUpdateRepository) ListByComplaint(ctx context.Context, complaintID uuid.UUID) ([]domain.ComplaintUpdate, error) {
	var updates []domain.ComplaintUpdate
	query := `
		SELECT * FROM complaint_updates
		WHERE complaint_id = $1
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &updates, query, complaintID)
	return updates, err
}
