package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"public-vision-be/internal/domain"
)

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error)
	Update(ctx context.Context, complaint *domain.Complaint) error
	List(ctx context.Context, params domain.PaginationParams, sort domain.SortParams) ([]domain.Complaint, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Complaint, int64, error)
	ListByCategory(ctx context.Context, category string, params domain.PaginationParams) ([]domain.Complaint, int64, error)
	ListByStatus(ctx context.Context, status domain.ComplaintStatus, params domain.PaginationParams) ([]domain.Complaint, int64, error)
	ListByRatingRange(ctx context.Context, minRating, maxRating int, params domain.PaginationParams) ([]domain.Complaint, int64, error)
	ListForMap(ctx context.Context, filter domain.MapFilter) ([]domain.ComplaintMapPoint, error)
	FindPotentialDuplicates(ctx context.Context, category string, lat, lng, distanceKm float64, cutoff time.Time) ([]domain.Complaint, error)
	ListDuplicatesOf(ctx context.Context, originalID uuid.UUID) ([]domain.Complaint, error)
	ListOverdue(ctx context.Context, now time.Time) ([]domain.Complaint, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	TopAreas(ctx context.Context, limit int) ([]domain.AreaCount, error)
}

type complaintRepository struct {
	db *sqlx.DB
}

func NewComplaintRepository(db *sqlx.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	query := `
		INSERT INTO complaints (
			complaint_id, user_id, title, description, category,
			location_lat, location_lng, address, status, assigned_to,
			created_at, updated_at, due_date, escalated, is_duplicate,
			original_complaint_id, rating, feedback, reopened, reopen_reason
		) VALUES (
			:complaint_id, :user_id, :title, :description, :category,
			:location_lat, :location_lng, :address, :status, :assigned_to,
			:created_at, :updated_at, :due_date, :escalated, :is_duplicate,
			:original_complaint_id, :rating, :feedback, :reopened, :reopen_reason
		)`

	_, err := r.db.NamedExecContext(ctx, query, complaint)
	return err
}

func (r *complaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Complaint, error) {
	var complaint domain.Complaint
	query := `SELECT * FROM complaints WHERE complaint_id = $1`

	err := r.db.GetContext(ctx, &complaint, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	query := `
		UPDATE complaints SET
			title = :title, description = :description, category = :category,
			location_lat = :location_lat, location_lng = :location_lng, address = :address,
			status = :status, assigned_to = :assigned_to, updated_at = :updated_at,
			due_date = :due_date, escalated = :escalated, is_duplicate = :is_duplicate,
			original_complaint_id = :original_complaint_id, rating = :rating,
			feedback = :feedback, reopened = :reopened, reopen_reason = :reopen_reason
		WHERE complaint_id = :complaint_id`

	_, err := r.db.NamedExecContext(ctx, query, complaint)
	return err
}

func (r *complaintRepository) List(ctx context.Context, params domain.PaginationParams, sort domain.SortParams) ([]domain.Complaint, int64, error) {
	params.Validate()
	sort.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM complaints`); err != nil {
		return nil, 0, err
	}

	var complaints []domain.Complaint
	query := fmt.Sprintf(`SELECT * FROM complaints ORDER BY %s LIMIT $1 OFFSET $2`, sort.OrderClause())
	err := r.db.SelectContext(ctx, &complaints, query, params.PageSize, params.Offset())
	return complaints, total, err
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM complaints WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var complaints []domain.Complaint
	query := `
		SELECT * FROM complaints
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &complaints, query, userID, params.PageSize, params.Offset())
	return complaints, total, err
}

func (r *complaintRepository) ListByCategory(ctx context.Context, category string, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM complaints WHERE category = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, category); err != nil {
		return nil, 0, err
	}

	var complaints []domain.Complaint
	query := `
		SELECT * FROM complaints
		WHERE category = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &complaints, query, category, params.PageSize, params.Offset())
	return complaints, total, err
}

func (r *complaintRepository) ListByStatus(ctx context.Context, status domain.ComplaintStatus, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM complaints WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, status); err != nil {
		return nil, 0, err
	}

	var complaints []domain.Complaint
	query := `
		SELECT * FROM complaints
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &complaints, query, status, params.PageSize, params.Offset())
	return complaints, total, err
}

func (r *complaintRepository) ListByRatingRange(ctx context.Context, minRating, maxRating int, params domain.PaginationParams) ([]domain.Complaint, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM complaints WHERE rating BETWEEN $1 AND $2 AND status = $3`
	if err := r.db.GetContext(ctx, &total, countQuery, minRating, maxRating, domain.StatusResolved); err != nil {
		return nil, 0, err
	}

	var complaints []domain.Complaint
	query := `
		SELECT * FROM complaints
		WHERE rating BETWEEN $1 AND $2 AND status = $3
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	err := r.db.SelectContext(ctx, &complaints, query, minRating, maxRating, domain.StatusResolved, params.PageSize, params.Offset())
	return complaints, total, err
}

func (r *complaintRepository) ListForMap(ctx context.Context, filter domain.MapFilter) ([]domain.ComplaintMapPoint, error) {
	var points []domain.ComplaintMapPoint
	query := `
		SELECT complaint_id, title, category, status, location_lat, location_lng, created_at
		FROM complaints
		WHERE ($1::float8 IS NULL OR location_lat >= $1)
		  AND ($2::float8 IS NULL OR location_lat <= $2)
		  AND ($3::float8 IS NULL OR location_lng >= $3)
		  AND ($4::float8 IS NULL OR location_lng <= $4)
		  AND ($5::text IS NULL OR category = $5)
		  AND ($6::text IS NULL OR status = $6)
		  AND ($7::timestamptz IS NULL OR created_at >= $7)
		  AND ($8::timestamptz IS NULL OR created_at <= $8)
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &points, query,
		filter.MinLat, filter.MaxLat, filter.MinLng, filter.MaxLng,
		filter.Category, filter.Status, filter.StartDate, filter.EndDate)
	return points, err
}

// FindPotentialDuplicates runs the haversine distance check in SQL so only
// rows inside the radius come back, ordered oldest first: the earliest match
// is the canonical complaint.
func (r *complaintRepository) FindPotentialDuplicates(ctx context.Context, category string, lat, lng, distanceKm float64, cutoff time.Time) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	query := `
		SELECT * FROM complaints
		WHERE category = $1
		  AND created_at > $2
		  AND is_duplicate = false
		  AND (6371 * acos(
			cos(radians($3)) * cos(radians(location_lat)) *
			cos(radians(location_lng) - radians($4)) +
			sin(radians($3)) * sin(radians(location_lat))
		  )) < $5
		ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &complaints, query, category, cutoff, lat, lng, distanceKm)
	return complaints, err
}

func (r *complaintRepository) ListDuplicatesOf(ctx context.Context, originalID uuid.UUID) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	query := `
		SELECT * FROM complaints
		WHERE original_complaint_id = $1
		ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &complaints, query, originalID)
	return complaints, err
}

func (r *complaintRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	query := `
		SELECT * FROM complaints
		WHERE status <> $1 AND escalated = false AND due_date < $2
		ORDER BY due_date ASC`

	err := r.db.SelectContext(ctx, &complaints, query, domain.StatusResolved, now)
	return complaints, err
}

func (r *complaintRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM complaints`)
	return count, err
}

type groupCount struct {
	Key   string `db:"key"`
	Count int64  `db:"count"`
}

func (r *complaintRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	query := `SELECT status AS key, COUNT(*) AS count FROM complaints GROUP BY status`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *complaintRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []groupCount
	query := `SELECT category AS key, COUNT(*) AS count FROM complaints GROUP BY category`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

func (r *complaintRepository) TopAreas(ctx context.Context, limit int) ([]domain.AreaCount, error) {
	var areas []domain.AreaCount
	query := `
		SELECT ROUND(location_lat::numeric, 3)::float8 AS lat_grid,
		       ROUND(location_lng::numeric, 3)::float8 AS lng_grid,
		       COUNT(*) AS count
		FROM complaints
		GROUP BY lat_grid, lng_grid
		ORDER BY count DESC
		LIMIT $1`

	err := r.db.SelectContext(ctx, &areas, query, limit)
	return areas, err
}
