package complaint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"public-vision-be/internal/config"
	"public-vision-be/internal/domain"
	"public-vision-be/internal/repository"
	"public-vision-be/internal/service/email"
	"public-vision-be/internal/service/geocode"
	"public-vision-be/internal/service/media"
	"public-vision-be/internal/service/notification"
)

const (
	statsCacheKey = "statistics:overview"
	statsCacheTTL = 5 * time.Minute
)

// ImageUpload carries one multipart file from the handler into the service.
type ImageUpload struct {
	Filename    string
	ContentType string
	FileSize    int64
	Reader      io.Reader
}

// Detail is a complaint with its audit trail and image metadata attached.
type Detail struct {
	domain.Complaint
	Images  []domain.ComplaintImage  `json:"images"`
	Updates []domain.ComplaintUpdate `json:"updates"`
}

// DuplicateChecker runs duplicate detection for a freshly created complaint.
type DuplicateChecker interface {
	CheckForDuplicate(ctx context.Context, complaint *domain.Complaint) (*domain.Complaint, error)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateComplaintInput, images []ImageUpload) (*Detail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Detail, error)
	List(ctx context.Context, params domain.PaginationParams, sort domain.SortParams) (domain.PaginatedResponse[domain.Complaint], error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error)
	ListByCategory(ctx context.Context, category string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error)
	ListByStatus(ctx context.Context, status domain.ComplaintStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error)
	ListByRatingRange(ctx context.Context, minRating, maxRating int, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error)
	UpdateStatus(ctx context.Context, actorID, complaintID uuid.UUID, input domain.UpdateStatusInput) (*domain.Complaint, error)
	Assign(ctx context.Context, complaintID, staffID uuid.UUID) (*domain.Complaint, error)
	AddComment(ctx context.Context, actorID, complaintID uuid.UUID, input domain.CommentInput) (*domain.ComplaintUpdate, error)
	AddFeedback(ctx context.Context, ownerID, complaintID uuid.UUID, input domain.FeedbackInput) (*domain.Complaint, error)
	Reopen(ctx context.Context, ownerID, complaintID uuid.UUID, input domain.ReopenInput) (*domain.Complaint, error)
	Statistics(ctx context.Context) (*domain.Statistics, error)
	MapData(ctx context.Context, filter domain.MapFilter) ([]domain.ComplaintMapPoint, error)
}

type service struct {
	complaintRepo repository.ComplaintRepository
	updateRepo    repository.ComplaintUpdateRepository
	userRepo      repository.UserRepository
	mediaService  media.Service
	notifService  notification.Service
	geocodeSvc    geocode.Service
	dupChecker    DuplicateChecker
	emailService  email.Service
	redis         *redis.Client
	cfg           *config.Config
}

func NewService(
	complaintRepo repository.ComplaintRepository,
	updateRepo repository.ComplaintUpdateRepository,
	userRepo repository.UserRepository,
	mediaService media.Service,
	notifService notification.Service,
	geocodeSvc geocode.Service,
	dupChecker DuplicateChecker,
	emailService email.Service,
	redisClient *redis.Client,
	cfg *config.Config,
) Service {
	return &service{
		complaintRepo: complaintRepo,
		updateRepo:    updateRepo,
		userRepo:      userRepo,
		mediaService:  mediaService,
		notifService:  notifService,
		geocodeSvc:    geocodeSvc,
		dupChecker:    dupChecker,
		emailService:  emailService,
		redis:         redisClient,
		cfg:           cfg,
	}
}

// Create persists a new complaint in SUBMITTED state with a due date one SLA
// window out. The address is reverse-geocoded when the caller left it empty,
// images go to object storage, and duplicate detection runs last so a match
// can immediately link the new complaint to the earliest open one.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateComplaintInput, images []ImageUpload) (*Detail, error) {
	now := time.Now()

	address := input.Address
	if address == nil {
		resolved, err := s.geocodeSvc.ReverseGeocode(ctx, input.LocationLat, input.LocationLng)
		if err != nil {
			log.Printf("reverse geocode failed for (%f, %f): %v", input.LocationLat, input.LocationLng, err)
		} else {
			address = resolved
		}
	}

	complaint := &domain.Complaint{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		LocationLat: input.LocationLat,
		LocationLng: input.LocationLng,
		Address:     address,
		Status:      domain.StatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     now.Add(s.cfg.SLAWindow),
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	// Audit row goes in before the uploads so the trail exists even when an
	// upload aborts the request.
	status := complaint.Status
	created := &domain.ComplaintUpdate{
		ID:          uuid.New(),
		ComplaintID: complaint.ID,
		UpdatedBy:   userID,
		Status:      &status,
		Comment:     "Complaint submitted",
	}
	if err := s.updateRepo.Create(ctx, created); err != nil {
		log.Printf("failed to record initial update for %s: %v", complaint.ID, err)
	}

	stored := make([]domain.ComplaintImage, 0, len(images))
	for _, img := range images {
		image, err := s.mediaService.Upload(ctx, complaint.ID, img.Filename, img.ContentType, img.FileSize, img.Reader)
		if err != nil {
			return nil, err
		}
		stored = append(stored, *image)
	}

	if _, err := s.dupChecker.CheckForDuplicate(ctx, complaint); err != nil {
		log.Printf("duplicate check failed for complaint %s: %v", complaint.ID, err)
	}

	s.notifService.NotifyAdmins(ctx, &complaint.ID,
		fmt.Sprintf("New complaint submitted: %s", complaint.Title), domain.NotifInfo)

	s.invalidateStats(ctx)

	return &Detail{Complaint: *complaint, Images: stored, Updates: []domain.ComplaintUpdate{*created}}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Detail, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, domain.NotFoundError("complaint %s not found", id)
	}

	images, err := s.mediaService.ListByComplaint(ctx, id)
	if err != nil {
		return nil, err
	}

	updates, err := s.updateRepo.ListByComplaint(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Complaint: *complaint, Images: images, Updates: updates}, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams, sort domain.SortParams) (domain.PaginatedResponse[domain.Complaint], error) {
	complaints, total, err := s.complaintRepo.List(ctx, params, sort)
	if err != nil {
		return domain.PaginatedResponse[domain.Complaint]{}, err
	}
	return domain.NewPaginatedResponse(complaints, params.Page, params.PageSize, total), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error) {
	complaints, total, err := s.complaintRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Complaint]{}, err
	}
	return domain.NewPaginatedResponse(complaints, params.Page, params.PageSize, total), nil
}

func (s *service) ListByCategory(ctx context.Context, category string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error) {
	complaints, total, err := s.complaintRepo.ListByCategory(ctx, category, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Complaint]{}, err
	}
	return domain.NewPaginatedResponse(complaints, params.Page, params.PageSize, total), nil
}

func (s *service) ListByStatus(ctx context.Context, status domain.ComplaintStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error) {
	complaints, total, err := s.complaintRepo.ListByStatus(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Complaint]{}, err
	}
	return domain.NewPaginatedResponse(complaints, params.Page, params.PageSize, total), nil
}

func (s *service) ListByRatingRange(ctx context.Context, minRating, maxRating int, params domain.PaginationParams) (domain.PaginatedResponse[domain.Complaint], error) {
	if minRating < 1 || maxRating > 5 || minRating > maxRating {
		return domain.PaginatedResponse[domain.Complaint]{}, domain.InvalidInputError("rating range must be within 1..5")
	}
	complaints, total, err := s.complaintRepo.ListByRatingRange(ctx, minRating, maxRating, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Complaint]{}, err
	}
	return domain.NewPaginatedResponse(complaints, params.Page, params.PageSize, total), nil
}

// UpdateStatus records the transition in the audit trail, moves the
// complaint, and notifies the submitter.
func (s *service) UpdateStatus(ctx context.Context, actorID, complaintID uuid.UUID, input domain.UpdateStatusInput) (*domain.Complaint, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, domain.NotFoundError("complaint %s not found", complaintID)
	}

	update := &domain.ComplaintUpdate{
		ID:          uuid.New(),
		ComplaintID: complaintID,
		UpdatedBy:   actorID,
		Status:      &status,
		Comment:     input.Comment,
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		return nil, err
	}

	complaint.Status = status
	// The escalated flag only holds while the status is ESCALATED.
	if status != domain.StatusEscalated {
		complaint.Escalated = false
	}
	complaint.UpdatedAt = time.Now()
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	if _, err := s.notifService.Create(ctx, complaint.UserID, &complaint.ID,
		fmt.Sprintf("Your complaint %q is now %s", complaint.Title, status), domain.NotifStatusChange); err != nil {
		log.Printf("failed to notify complaint owner %s: %v", complaint.UserID, err)
	}

	if complaint.AssignedTo != nil && *complaint.AssignedTo != actorID {
		if _, err := s.notifService.Create(ctx, *complaint.AssignedTo, &complaint.ID,
			fmt.Sprintf("Complaint %q assigned to you is now %s", complaint.Title, status), domain.NotifStatusChange); err != nil {
			log.Printf("failed to notify assignee %s: %v", *complaint.AssignedTo, err)
		}
	}

	if status == domain.StatusResolved && s.emailService != nil {
		if owner, err := s.userRepo.GetByID(ctx, complaint.UserID); err == nil && owner != nil {
			go func(toEmail, name, title string) {
				if err := s.emailService.SendResolutionEmail(context.Background(), toEmail, name, title); err != nil {
					log.Printf("failed to send resolution email to %s: %v", toEmail, err)
				}
			}(owner.Email, owner.Name, complaint.Title)
		}
	}

	s.invalidateStats(ctx)

	return complaint, nil
}

func (s *service) Assign(ctx context.Context, complaintID, staffID uuid.UUID) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, domain.NotFoundError("complaint %s not found", complaintID)
	}

	staff, err := s.userRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.NotFoundError("user %s not found", staffID)
	}
	if !staff.HasRole(domain.RoleStaff) {
		return nil, domain.InvalidInputError("user %s is not staff", staffID)
	}

	complaint.AssignedTo = &staffID
	complaint.UpdatedAt = time.Now()
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	if _, err := s.notifService.Create(ctx, staffID, &complaint.ID,
		fmt.Sprintf("You were assigned complaint %q", complaint.Title), domain.NotifAssignment); err != nil {
		log.Printf("failed to notify assignee %s: %v", staffID, err)
	}

	return complaint, nil
}

func (s *service) AddComment(ctx context.Context, actorID, complaintID uuid.UUID, input domain.CommentInput) (*domain.ComplaintUpdate, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, domain.NotFoundError("complaint %s not found", complaintID)
	}

	update := &domain.ComplaintUpdate{
		ID:          uuid.New(),
		ComplaintID: complaintID,
		UpdatedBy:   actorID,
		Comment:     input.Comment,
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		return nil, err
	}

	if actorID != complaint.UserID {
		if _, err := s.notifService.Create(ctx, complaint.UserID, &complaint.ID,
			fmt.Sprintf("New comment on your complaint %q", complaint.Title), domain.NotifComment); err != nil {
			log.Printf("failed to notify complaint owner %s: %v", complaint.UserID, err)
		}
	}

	if complaint.AssignedTo != nil && *complaint.AssignedTo != actorID {
		if _, err := s.notifService.Create(ctx, *complaint.AssignedTo, &complaint.ID,
			fmt.Sprintf("New comment on complaint %q", complaint.Title), domain.NotifComment); err != nil {
			log.Printf("failed to notify assignee %s: %v", *complaint.AssignedTo, err)
		}
	}

	return update, nil
}

// AddFeedback lets the submitter rate a resolved complaint exactly where the
// workflow allows it: only the owner, only after resolution.
func (s *service) AddFeedback(ctx context.Context, ownerID, complaintID uuid.UUID, input domain.FeedbackInput) (*domain.Complaint, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.InvalidInputError("rating must be between 1 and 5")
	}

	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, domain.NotFoundError("complaint %s not found", complaintID)
	}
	if complaint.UserID != ownerID {
		return nil, domain.ForbiddenError("only the submitter can rate this complaint")
	}
	if complaint.Status != domain.StatusResolved {
		return nil, domain.InvalidStateError("complaint must be resolved before it can be rated")
	}

	complaint.Rating = &input.Rating
	if input.Feedback != "" {
		complaint.Feedback = &input.Feedback
	}
	complaint.UpdatedAt = time.Now()

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Reopen moves a resolved complaint back to IN_PROGRESS. Allowed only for
// the submitter, and only while the rating is absent or at most 2: a good
// rating means the resolution stands.
func (s *service) Reopen(ctx context.Context, ownerID, complaintID uuid.UUID, input domain.ReopenInput) (*domain.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, domain.NotFoundError("complaint %s not found", complaintID)
	}
	if complaint.UserID != ownerID {
		return nil, domain.ForbiddenError("only the submitter can reopen this complaint")
	}
	if complaint.Status != domain.StatusResolved {
		return nil, domain.InvalidStateError("only resolved complaints can be reopened")
	}
	if complaint.Rating != nil && *complaint.Rating > 2 {
		return nil, domain.InvalidStateError("complaints rated above 2 cannot be reopened")
	}

	complaint.Status = domain.StatusInProgress
	complaint.Reopened = true
	complaint.ReopenReason = &input.Reason
	complaint.UpdatedAt = time.Now()

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}

	status := domain.StatusInProgress
	update := &domain.ComplaintUpdate{
		ID:          uuid.New(),
		ComplaintID: complaintID,
		UpdatedBy:   ownerID,
		Status:      &status,
		Comment:     fmt.Sprintf("Reopened: %s", input.Reason),
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		log.Printf("failed to record reopen update for %s: %v", complaintID, err)
	}

	s.notifService.NotifyAdmins(ctx, &complaint.ID,
		fmt.Sprintf("Complaint %q was reopened by the submitter", complaint.Title), domain.NotifInfo)

	s.invalidateStats(ctx)

	return complaint, nil
}

// Statistics aggregates counts and the hotspot grid, cached in Redis for a
// few minutes since the dashboard polls it.
func (s *service) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.Statistics
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	total, err := s.complaintRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.complaintRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.complaintRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	topAreas, err := s.complaintRepo.TopAreas(ctx, 10)
	if err != nil {
		return nil, err
	}

	stats := &domain.Statistics{
		TotalComplaints: total,
		ByStatus:        byStatus,
		ByCategory:      byCategory,
		TopAreas:        topAreas,
	}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.redis.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}

	return stats, nil
}

func (s *service) MapData(ctx context.Context, filter domain.MapFilter) ([]domain.ComplaintMapPoint, error) {
	return s.complaintRepo.ListForMap(ctx, filter)
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.redis != nil {
		s.redis.Del(ctx, statsCacheKey)
	}
}
