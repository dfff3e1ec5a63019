package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"public-vision-be/internal/config"
	"public-vision-be/internal/realtime"
	"public-vision-be/internal/repository"
	"public-vision-be/internal/service/auth"
	"public-vision-be/internal/service/complaint"
	"public-vision-be/internal/service/duplicate"
	"public-vision-be/internal/service/email"
	"public-vision-be/internal/service/escalation"
	"public-vision-be/internal/service/geocode"
	"public-vision-be/internal/service/media"
	"public-vision-be/internal/service/notification"
	"public-vision-be/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Complaint    complaint.Service
	Duplicate    duplicate.Service
	Escalation   escalation.Service
	Media        media.Service
	Notification notification.Service
	Email        email.Service
	Geocode      geocode.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, hub *realtime.Hub, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, cfg)
	userService := user.NewService(repos.User)
	geocodeService := geocode.NewService(cfg)
	mediaService := media.NewService(repos.ComplaintImage, minioClient, cfg)
	notificationService := notification.NewService(repos.Notification, repos.User, hub)
	duplicateService := duplicate.NewService(repos.Complaint, notificationService, cfg)

	complaintService := complaint.NewService(
		repos.Complaint,
		repos.ComplaintUpdate,
		repos.User,
		mediaService,
		notificationService,
		geocodeService,
		duplicateService,
		emailService,
		redisClient,
		cfg,
	)

	escalationService := escalation.NewService(
		repos.Complaint,
		repos.User,
		notificationService,
		emailService,
		escalation.NewRedisLeaser(redisClient),
		cfg,
	)

	return &Services{
		Auth:         authService,
		User:         userService,
		Complaint:    complaintService,
		Duplicate:    duplicateService,
		Escalation:   escalationService,
		Media:        mediaService,
		Notification: notificationService,
		Email:        emailService,
		Geocode:      geocodeService,
	}
}
