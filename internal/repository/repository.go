package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User            UserRepository
	Complaint       ComplaintRepository
	ComplaintUpdate ComplaintUpdateRepository
	ComplaintImage  ComplaintImageRepository
	Notification    NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:            NewUserRepository(db),
		Complaint:       NewComplaintRepository(db),
		ComplaintUpdate: NewComplaintUpdateRepository(db),
		ComplaintImage:  NewComplaintImageRepository(db),
		Notification:    NewNotificationRepository(db),
	}
}
