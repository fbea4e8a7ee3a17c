package events

import (
	"context"

	"github.com/medflow/rxscan-backend/internal/prescription/domain"
	"github.com/medflow/rxscan-backend/pkg/logger"
	"github.com/medflow/rxscan-backend/pkg/messaging"
)

// ScanEventPublisher publishes prescription scan events
type ScanEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewScanEventPublisher creates a new scan event publisher
func NewScanEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*ScanEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangePrescriptionEvents, "prescription-service", log)
	if err != nil {
		return nil, err
	}

	return &ScanEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// PublishDraftCreated publishes a draft created event for a completed scan
func (p *ScanEventPublisher) PublishDraftCreated(ctx context.Context, jobID string, result *domain.ScanResult) {
	data := messaging.DraftCreatedEvent{
		JobID:           jobID,
		MedicationCount: len(result.Draft.Medications),
		FieldsExtracted: result.Summary,
		RequiresReview:  result.RequiresReview,
	}

	if err := p.publisher.Publish(ctx, messaging.EventDraftCreated, data); err != nil {
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to publish draft created event")
	}
}

// PublishScanFailed publishes a scan failed event
func (p *ScanEventPublisher) PublishScanFailed(ctx context.Context, jobID, reason string) {
	data := messaging.ScanFailedEvent{
		JobID:  jobID,
		Reason: reason,
	}

	if err := p.publisher.Publish(ctx, messaging.EventScanFailed, data); err != nil {
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("failed to publish scan failed event")
	}
}
