package services

import (
	"context"
	"log"
	"time"

	"papatacos/internal/adapters/persistence/repositories"
	"papatacos/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// Maintenance schedules
const (
	PurgeTokensSchedule     = "0 3 * * *"
	CredentialAuditSchedule = "*/30 * * * *"
)

// CronService runs periodic maintenance jobs
type CronService struct {
	store   *repositories.Store
	reports *ReportService
	cron    *cron.Cron
	timeout time.Duration
}

// NewCronService creates the scheduler. reports may be nil.
func NewCronService(store *repositories.Store, reports *ReportService, loc *time.Location) *CronService {
	if loc == nil {
		loc = time.UTC
	}
	return &CronService{
		store:   store,
		reports: reports,
		cron:    cron.New(cron.WithLocation(loc)),
		timeout: 2 * time.Minute,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(PurgeTokensSchedule, s.runPurge); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(CredentialAuditSchedule, s.runAudit); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("✅ Cron started: purge tokens [%s], credential audit [%s]", PurgeTokensSchedule, CredentialAuditSchedule)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Cron stopped")
}

func (s *CronService) runPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.PurgeExpiredTokens(ctx); err != nil {
		log.Printf("❌ Purge expired tokens failed: %v", err)
	}
	if s.reports != nil {
		s.reports.CleanCache()
	}
}

func (s *CronService) runAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.AuditCredentials(ctx); err != nil {
		log.Printf("❌ Credential audit failed: %v", err)
	}
}

// PurgeExpiredTokens deletes refresh tokens past their expiry
func (s *CronService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.store.RefreshTokens.DeleteExpired(ctx)
	if err != nil {
		return 0, domain.NewStoreError("purge refresh tokens", err)
	}
	if n > 0 {
		log.Printf("✅ Purged %d expired refresh tokens", n)
	}
	return n, nil
}

// AuditCredentials reports accounts whose secret and profile pin diverge
func (s *CronService) AuditCredentials(ctx context.Context) ([]*domain.InconsistentStateError, error) {
	accounts, err := s.store.Accounts.ListDivergent(ctx)
	if err != nil {
		return nil, domain.NewStoreError("audit credentials", err)
	}

	found := make([]*domain.InconsistentStateError, 0, len(accounts))
	for _, a := range accounts {
		warning := &domain.InconsistentStateError{AccountID: a.ID, Email: a.Email}
		log.Printf("⚠️ %v", warning)
		found = append(found, warning)
	}
	return found, nil
}
