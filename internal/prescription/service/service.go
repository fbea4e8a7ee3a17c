package service

import (
	"context"
	"time"

	"github.com/medflow/rxscan-backend/internal/prescription/advisory"
	"github.com/medflow/rxscan-backend/internal/prescription/domain"
	"github.com/medflow/rxscan-backend/internal/prescription/extract"
	"github.com/medflow/rxscan-backend/internal/prescription/storage"
	"github.com/medflow/rxscan-backend/pkg/logger"
)

// EventPublisher publishes scan lifecycle events
type EventPublisher interface {
	PublishDraftCreated(ctx context.Context, jobID string, result *domain.ScanResult)
	PublishScanFailed(ctx context.Context, jobID, reason string)
}

// AuditRecorder persists scan audit entries
type AuditRecorder interface {
	Create(ctx context.Context, entry *domain.ScanAuditEntry) error
}

// Service orchestrates a prescription scan: create job, run the extraction
// engine and advisory checks, discard the raw text, audit, publish.
type Service struct {
	engine    *extract.Engine
	checker   *advisory.Checker
	storage   *storage.JobStore
	audit     AuditRecorder
	publisher EventPublisher
	log       *logger.Logger
}

// NewService creates a new prescription scan service
func NewService(engine *extract.Engine, checker *advisory.Checker, store *storage.JobStore, audit AuditRecorder, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		engine:    engine,
		checker:   checker,
		storage:   store,
		audit:     audit,
		publisher: publisher,
		log:       log,
	}
}

// StartScan creates a new scan job and processes the input asynchronously.
// Returns the job immediately so the caller can poll for the draft. The
// RawInput is not retained anywhere after processing completes.
func (s *Service) StartScan(ctx context.Context, input domain.RawInput) (*domain.ScanJob, error) {
	jobID := storage.GenerateJobID()

	job := &domain.ScanJob{
		JobID:     jobID,
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	}
	s.storage.StoreJob(job)

	go s.processScan(jobID, input)

	return s.storage.GetJob(jobID), nil
}

// processScan runs extraction in a background goroutine.
func (s *Service) processScan(jobID string, input domain.RawInput) {
	// Detached context so request cancellation doesn't kill processing
	ctx := context.Background()
	start := time.Now()

	result, err := s.engine.Extract(input)
	if err != nil {
		s.storage.UpdateJob(jobID, func(j *domain.ScanJob) {
			j.Status = domain.StatusFailed
			j.Error = err.Error()
		})
		s.log.Warn().Err(err).Str("job_id", jobID).Msg("scan rejected")
		s.publisher.PublishScanFailed(ctx, jobID, err.Error())
		return
	}

	// Advisory pass over the extracted draft
	drugs := make([]string, len(result.Draft.Medications))
	for i, med := range result.Draft.Medications {
		drugs[i] = med.Name
	}
	result.Interactions = s.checker.CheckInteractions(drugs)
	result.Symptoms = s.checker.ExtractSymptoms(input.Text)
	result.RequiresReview = s.checker.RequiresReview(len(result.Draft.Medications), result.Interactions)

	if dups := extract.DuplicateMedicationKeys(result.Draft.Medications); len(dups) > 0 {
		s.log.Warn().
			Str("job_id", jobID).
			Strs("pairs", dups).
			Msg("duplicate medication entries in scan output")
	}

	s.storage.UpdateJob(jobID, func(j *domain.ScanJob) {
		j.Status = domain.StatusCompleted
		j.Result = result
	})

	textDiscardedAt := time.Now()

	// Audit write is async and non-blocking
	go s.writeAudit(ctx, jobID, input.Confidence, result, time.Since(start), textDiscardedAt)

	s.publisher.PublishDraftCreated(ctx, jobID, result)

	s.log.Info().
		Str("job_id", jobID).
		Int("fields_extracted", len(result.Summary)).
		Int("medications", len(result.Draft.Medications)).
		Dur("duration", time.Since(start)).
		Msg("prescription scan completed")
}

// GetJob retrieves a scan job by ID
func (s *Service) GetJob(jobID string) *domain.ScanJob {
	return s.storage.GetJob(jobID)
}

// CheckInteractions runs an ad hoc interaction check for a list of drugs
func (s *Service) CheckInteractions(drugs []string) []domain.DrugInteraction {
	return s.checker.CheckInteractions(drugs)
}

func (s *Service) writeAudit(ctx context.Context, jobID string, confidence *float64, result *domain.ScanResult, duration time.Duration, textDiscardedAt time.Time) {
	entry := &domain.ScanAuditEntry{
		JobID:           jobID,
		Confidence:      confidence,
		FieldsExtracted: result.Summary,
		MedicationCount: len(result.Draft.Medications),
		DurationMs:      duration.Milliseconds(),
		TextDiscardedAt: textDiscardedAt,
	}

	if err := s.audit.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("job_id", jobID).Msg("failed to write scan audit entry")
	}
}
