package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"notification_id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	ComplaintID *uuid.UUID       `json:"complaint_id,omitempty" db:"complaint_id"`
	Message     string           `json:"message" db:"message"`
	Type        NotificationType `json:"type" db:"type"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	SentAt      time.Time        `json:"sent_at" db:"sent_at"`
}

type NotificationType string

const (
	NotifInfo         NotificationType = "INFO"
	NotifStatusChange NotificationType = "STATUS_CHANGE"
	NotifComment      NotificationType = "COMMENT"
	NotifAssignment   NotificationType = "ASSIGNMENT"
)
