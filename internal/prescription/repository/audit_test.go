package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow/rxscan-backend/internal/prescription/domain"
	"github.com/medflow/rxscan-backend/internal/prescription/repository"
	"github.com/medflow/rxscan-backend/pkg/database"
	"github.com/medflow/rxscan-backend/pkg/logger"
)

func newMockRepo(t *testing.T) (*repository.AuditRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	log := logger.New("repository-test", "development")
	return repository.NewAuditRepository(database.NewFromSqlx(sqlxDB, log)), mock
}

func TestAuditRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO scan_audit").
		WithArgs(
			sqlmock.AnyArg(), // generated id
			"job-123",
			sqlmock.AnyArg(),
			"{Patient name,Age,1 Medication}",
			1,
			int64(42),
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	confidence := 88.0
	entry := &domain.ScanAuditEntry{
		JobID:           "job-123",
		Confidence:      &confidence,
		FieldsExtracted: []string{"Patient name", "Age", "1 Medication"},
		MedicationCount: 1,
		DurationMs:      42,
		TextDiscardedAt: now,
	}

	err := repo.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, now, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_Create_KeepsProvidedID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO scan_audit").
		WithArgs("fixed-id", "job-9", sqlmock.AnyArg(), "{}", 0, int64(0), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	entry := &domain.ScanAuditEntry{ID: "fixed-id", JobID: "job-9"}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.Equal(t, "fixed-id", entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepository_CountSince(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM scan_audit").
		WithArgs("2026-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountSince(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
