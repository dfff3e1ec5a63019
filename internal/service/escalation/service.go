// Package escalation sweeps for complaints that blew past their due date
// and flags them for admin attention.
package escalation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"public-vision-be/internal/config"
	"public-vision-be/internal/domain"
	"public-vision-be/internal/repository"
	"public-vision-be/internal/service/email"
	"public-vision-be/internal/service/notification"
)

const leaseKey = "escalation:sweep:lease"

// Leaser serializes the sweep across instances: only the holder of the
// lease runs a given cycle.
type Leaser interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type redisLeaser struct {
	client *redis.Client
}

func NewRedisLeaser(client *redis.Client) Leaser {
	return &redisLeaser{client: client}
}

func (l *redisLeaser) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, "1", ttl).Result()
}

type Service interface {
	Run(ctx context.Context)
	Sweep(ctx context.Context) (int, error)
}

type service struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
	notifService  notification.Service
	emailService  email.Service
	leaser        Leaser
	cfg           *config.Config
}

func NewService(
	complaintRepo repository.ComplaintRepository,
	userRepo repository.UserRepository,
	notifService notification.Service,
	emailService email.Service,
	leaser Leaser,
	cfg *config.Config,
) Service {
	return &service{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		notifService:  notifService,
		emailService:  emailService,
		leaser:        leaser,
		cfg:           cfg,
	}
}

// Run sweeps on a fixed interval until the context is cancelled. One sweep
// runs immediately on startup so a restart never delays overdue handling by
// a full interval.
func (s *service) Run(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		log.Printf("escalation sweep failed: %v", err)
	}

	ticker := time.NewTicker(s.cfg.EscalationSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				log.Printf("escalation sweep failed: %v", err)
			}
		}
	}
}

// Sweep escalates every unresolved, not-yet-escalated complaint whose due
// date has passed. The Redis lease keeps concurrent instances from
// escalating the same rows twice; the escalated flag keeps a complaint from
// ever being escalated in two different cycles.
func (s *service) Sweep(ctx context.Context) (int, error) {
	acquired, err := s.leaser.Acquire(ctx, leaseKey, s.cfg.EscalationLeaseTTL)
	if err != nil {
		return 0, err
	}
	if !acquired {
		return 0, nil
	}

	now := time.Now()
	overdue, err := s.complaintRepo.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	escalated := 0
	for i := range overdue {
		complaint := &overdue[i]

		complaint.Escalated = true
		complaint.Status = domain.StatusEscalated
		complaint.UpdatedAt = now

		if err := s.complaintRepo.Update(ctx, complaint); err != nil {
			log.Printf("failed to escalate complaint %s: %v", complaint.ID, err)
			continue
		}
		escalated++

		s.notify(ctx, complaint)
	}

	if len(overdue) > 0 {
		log.Printf("escalation sweep: %d overdue, %d escalated", len(overdue), escalated)
	}
	return escalated, nil
}

func (s *service) notify(ctx context.Context, complaint *domain.Complaint) {
	if _, err := s.notifService.Create(ctx, complaint.UserID, &complaint.ID,
		fmt.Sprintf("Your complaint %q passed its resolution deadline and was escalated", complaint.Title),
		domain.NotifStatusChange); err != nil {
		log.Printf("failed to notify owner %s: %v", complaint.UserID, err)
	}

	if complaint.AssignedTo != nil {
		if _, err := s.notifService.Create(ctx, *complaint.AssignedTo, &complaint.ID,
			fmt.Sprintf("Complaint %q assigned to you was escalated", complaint.Title),
			domain.NotifAssignment); err != nil {
			log.Printf("failed to notify assignee %s: %v", *complaint.AssignedTo, err)
		}
	}

	s.notifService.NotifyAdmins(ctx, &complaint.ID,
		fmt.Sprintf("Complaint %q breached its SLA and was escalated", complaint.Title),
		domain.NotifInfo)

	if s.emailService != nil {
		owner, err := s.userRepo.GetByID(ctx, complaint.UserID)
		if err != nil || owner == nil {
			return
		}
		go func(toEmail, name, title, ref string) {
			if err := s.emailService.SendEscalationEmail(context.Background(), toEmail, name, title, ref); err != nil {
				log.Printf("failed to send escalation email to %s: %v", toEmail, err)
			}
		}(owner.Email, owner.Name, complaint.Title, complaint.ID.String())
	}
}
