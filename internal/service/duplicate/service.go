// Package duplicate links complaints that report the same issue: same
// category, filed within a short window, within a couple hundred meters of
// each other. The earliest matching complaint is the canonical one.
package duplicate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"public-vision-be/internal/config"
	"public-vision-be/internal/domain"
	"public-vision-be/internal/pkg/geo"
	"public-vision-be/internal/repository"
	"public-vision-be/internal/service/notification"
)

type Service interface {
	CheckForDuplicate(ctx context.Context, complaint *domain.Complaint) (*domain.Complaint, error)
	MarkAsDuplicate(ctx context.Context, duplicateID, originalID uuid.UUID) (*domain.Complaint, error)
	GetDuplicates(ctx context.Context, originalID uuid.UUID) (*domain.DuplicateSet, error)
	Merge(ctx context.Context, originalID uuid.UUID, duplicateIDs []uuid.UUID) (*domain.DuplicateSet, error)
}

type service struct {
	complaintRepo repository.ComplaintRepository
	notifService  notification.Service
	cfg           *config.Config
}

func NewService(complaintRepo repository.ComplaintRepository, notifService notification.Service, cfg *config.Config) Service {
	return &service{
		complaintRepo: complaintRepo,
		notifService:  notifService,
		cfg:           cfg,
	}
}

// CheckForDuplicate looks for an earlier complaint in the same category and
// radius filed within the detection window. When one exists the given
// complaint is linked to the earliest match and that match is returned;
// otherwise the result is nil.
func (s *service) CheckForDuplicate(ctx context.Context, complaint *domain.Complaint) (*domain.Complaint, error) {
	cutoff := time.Now().Add(-time.Duration(s.cfg.DuplicateWindowHours) * time.Hour)

	candidates, err := s.complaintRepo.FindPotentialDuplicates(ctx,
		complaint.Category, complaint.LocationLat, complaint.LocationLng,
		s.cfg.DuplicateDistanceKm, cutoff)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if candidate.ID == complaint.ID {
			continue
		}
		if !geo.WithinDistance(complaint.LocationLat, complaint.LocationLng,
			candidate.LocationLat, candidate.LocationLng, s.cfg.DuplicateDistanceKm) {
			continue
		}
		return s.MarkAsDuplicate(ctx, complaint.ID, candidate.ID)
	}
	return nil, nil
}

// MarkAsDuplicate links one complaint to its canonical original. The
// submitter learns their report is tracked under the original; admins get an
// informational note.
func (s *service) MarkAsDuplicate(ctx context.Context, duplicateID, originalID uuid.UUID) (*domain.Complaint, error) {
	if duplicateID == originalID {
		return nil, domain.InvalidInputError("a complaint cannot duplicate itself")
	}

	duplicate, err := s.complaintRepo.GetByID(ctx, duplicateID)
	if err != nil {
		return nil, err
	}
	if duplicate == nil {
		return nil, domain.NotFoundError("complaint %s not found", duplicateID)
	}

	original, err := s.complaintRepo.GetByID(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.NotFoundError("complaint %s not found", originalID)
	}
	if original.IsDuplicate {
		return nil, domain.InvalidStateError("complaint %s is itself a duplicate", originalID)
	}

	duplicate.IsDuplicate = true
	duplicate.OriginalComplaintID = &originalID
	duplicate.UpdatedAt = time.Now()

	if err := s.complaintRepo.Update(ctx, duplicate); err != nil {
		return nil, err
	}

	if _, err := s.notifService.Create(ctx, duplicate.UserID, &originalID,
		fmt.Sprintf("Your complaint %q matches an existing report and is tracked under it", duplicate.Title),
		domain.NotifStatusChange); err != nil {
		log.Printf("failed to notify submitter %s: %v", duplicate.UserID, err)
	}

	s.notifService.NotifyAdmins(ctx, &originalID,
		fmt.Sprintf("Complaint %q was marked as a duplicate of %q", duplicate.Title, original.Title),
		domain.NotifInfo)

	return original, nil
}

func (s *service) GetDuplicates(ctx context.Context, originalID uuid.UUID) (*domain.DuplicateSet, error) {
	original, err := s.complaintRepo.GetByID(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.NotFoundError("complaint %s not found", originalID)
	}

	duplicates, err := s.complaintRepo.ListDuplicatesOf(ctx, originalID)
	if err != nil {
		return nil, err
	}

	return &domain.DuplicateSet{Original: original, Duplicates: duplicates}, nil
}

// Merge links a batch of complaints under one canonical original. Entries
// already linked to it, and the original itself, are skipped, so replaying
// the same request is harmless. A missing candidate aborts the merge; links
// made before the bad entry stay in place.
func (s *service) Merge(ctx context.Context, originalID uuid.UUID, duplicateIDs []uuid.UUID) (*domain.DuplicateSet, error) {
	original, err := s.complaintRepo.GetByID(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.NotFoundError("complaint %s not found", originalID)
	}
	if original.IsDuplicate {
		return nil, domain.InvalidStateError("complaint %s is itself a duplicate", originalID)
	}

	for _, dupID := range duplicateIDs {
		if dupID == originalID {
			continue
		}

		candidate, err := s.complaintRepo.GetByID(ctx, dupID)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			return nil, domain.NotFoundError("complaint %s not found", dupID)
		}
		if candidate.IsDuplicate && candidate.OriginalComplaintID != nil && *candidate.OriginalComplaintID == originalID {
			continue
		}

		if _, err := s.MarkAsDuplicate(ctx, dupID, originalID); err != nil {
			return nil, err
		}
	}

	return s.GetDuplicates(ctx, originalID)
}
