package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ComplaintStatus string

const (
	StatusSubmitted  ComplaintStatus = "SUBMITTED"
	StatusInProgress ComplaintStatus = "IN_PROGRESS"
	StatusResolved   ComplaintStatus = "RESOLVED"
	StatusEscalated  ComplaintStatus = "ESCALATED"
)

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved, StatusEscalated:
		return true
	default:
		return false
	}
}

// ParseStatus validates a status string, case-insensitively.
func ParseStatus(s string) (ComplaintStatus, error) {
	status := ComplaintStatus(strings.ToUpper(s))
	if !status.IsValid() {
		return "", InvalidInputError("invalid status: %s", s)
	}
	return status, nil
}

type Complaint struct {
	ID                  uuid.UUID       `json:"id" db:"complaint_id"`
	UserID              uuid.UUID       `json:"user_id" db:"user_id"`
	Title               string          `json:"title" db:"title"`
	Description         string          `json:"description" db:"description"`
	Category            string          `json:"category" db:"category"`
	LocationLat         float64         `json:"location_lat" db:"location_lat"`
	LocationLng         float64         `json:"location_lng" db:"location_lng"`
	Address             *string         `json:"address,omitempty" db:"address"`
	Status              ComplaintStatus `json:"status" db:"status"`
	AssignedTo          *uuid.UUID      `json:"assigned_to,omitempty" db:"assigned_to"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
	DueDate             time.Time       `json:"due_date" db:"due_date"`
	Escalated           bool            `json:"escalated" db:"escalated"`
	IsDuplicate         bool            `json:"is_duplicate" db:"is_duplicate"`
	OriginalComplaintID *uuid.UUID      `json:"original_complaint_id,omitempty" db:"original_complaint_id"`
	Rating              *int            `json:"rating,omitempty" db:"rating"`
	Feedback            *string         `json:"feedback,omitempty" db:"feedback"`
	Reopened            bool            `json:"reopened" db:"reopened"`
	ReopenReason        *string         `json:"reopen_reason,omitempty" db:"reopen_reason"`
}

// ComplaintUpdate is the append-only audit trail: one row per status change
// or comment, never updated or deleted.
type ComplaintUpdate struct {
	ID          uuid.UUID        `json:"id" db:"update_id"`
	ComplaintID uuid.UUID        `json:"complaint_id" db:"complaint_id"`
	UpdatedBy   uuid.UUID        `json:"updated_by" db:"updated_by"`
	Status      *ComplaintStatus `json:"status,omitempty" db:"status"`
	Comment     string           `json:"comment" db:"comment"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// ComplaintImage holds image metadata; the bytes live in object storage
// under StoragePath.
type ComplaintImage struct {
	ID          uuid.UUID `json:"id" db:"image_id"`
	ComplaintID uuid.UUID `json:"complaint_id" db:"complaint_id"`
	Filename    string    `json:"filename" db:"filename"`
	ContentType string    `json:"content_type" db:"content_type"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	StoragePath string    `json:"-" db:"storage_path"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	URL string `json:"url,omitempty" db:"-"`
}

type CreateComplaintInput struct {
	Title       string  `json:"title" form:"title" validate:"required,min=3"`
	Description string  `json:"description" form:"description" validate:"required"`
	Category    string  `json:"category" form:"category" validate:"required"`
	LocationLat float64 `json:"location_lat" form:"location_lat" validate:"required"`
	LocationLng float64 `json:"location_lng" form:"location_lng" validate:"required"`
	Address     *string `json:"address,omitempty" form:"address"`
}

type UpdateStatusInput struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

type CommentInput struct {
	Comment string `json:"comment" validate:"required"`
}

type FeedbackInput struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

type ReopenInput struct {
	Reason string `json:"reason" validate:"required"`
}

type MergeDuplicatesInput struct {
	DuplicateIDs []uuid.UUID `json:"duplicate_ids" validate:"required,min=1"`
}

// DuplicateSet pairs a canonical complaint with everything linked to it.
type DuplicateSet struct {
	Original   *Complaint  `json:"original"`
	Duplicates []Complaint `json:"duplicates"`
}

// MapFilter narrows the map-data query; nil fields are ignored.
type MapFilter struct {
	MinLat    *float64
	MaxLat    *float64
	MinLng    *float64
	MaxLng    *float64
	Category  *string
	Status    *ComplaintStatus
	StartDate *time.Time
	EndDate   *time.Time
}

type ComplaintMapPoint struct {
	ID          uuid.UUID       `json:"id" db:"complaint_id"`
	Title       string          `json:"title" db:"title"`
	Category    string          `json:"category" db:"category"`
	Status      ComplaintStatus `json:"status" db:"status"`
	LocationLat float64         `json:"location_lat" db:"location_lat"`
	LocationLng float64         `json:"location_lng" db:"location_lng"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// AreaCount is one cell of the hotspot grid: coordinates rounded to three
// decimals (~110 m) with the number of complaints in that cell.
type AreaCount struct {
	Lat   float64 `json:"lat" db:"lat_grid"`
	Lng   float64 `json:"lng" db:"lng_grid"`
	Count int64   `json:"count" db:"count"`
}

type Statistics struct {
	TotalComplaints int64            `json:"total_complaints"`
	ByStatus        map[string]int64 `json:"complaints_by_status"`
	ByCategory      map[string]int64 `json:"complaints_by_category"`
	TopAreas        []AreaCount      `json:"top_areas"`
}
