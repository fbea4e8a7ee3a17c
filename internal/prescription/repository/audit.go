package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/medflow/rxscan-backend/internal/prescription/domain"
	"github.com/medflow/rxscan-backend/pkg/database"
)

// AuditRepository persists scan audit entries. Only extraction metadata is
// recorded — the raw OCR text never reaches the database.
type AuditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts a new scan audit entry
func (r *AuditRepository) Create(ctx context.Context, entry *domain.ScanAuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO scan_audit (id, job_id, confidence, fields_extracted, medication_count, duration_ms, text_discarded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID,
		entry.JobID,
		entry.Confidence,
		"{"+strings.Join(entry.FieldsExtracted, ",")+"}",
		entry.MedicationCount,
		entry.DurationMs,
		entry.TextDiscardedAt,
	).Scan(&entry.CreatedAt)
}

// CountSince returns how many scans were audited after the given timestamp
func (r *AuditRepository) CountSince(ctx context.Context, since string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM scan_audit WHERE created_at >= $1`, since)
	return count, err
}
