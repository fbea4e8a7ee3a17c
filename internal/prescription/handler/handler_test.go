package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow/rxscan-backend/internal/prescription/advisory"
	"github.com/medflow/rxscan-backend/internal/prescription/domain"
	"github.com/medflow/rxscan-backend/internal/prescription/extract"
	"github.com/medflow/rxscan-backend/internal/prescription/handler"
	"github.com/medflow/rxscan-backend/internal/prescription/service"
	"github.com/medflow/rxscan-backend/internal/prescription/storage"
	"github.com/medflow/rxscan-backend/pkg/logger"
)

type noopPublisher struct{}

func (noopPublisher) PublishDraftCreated(context.Context, string, *domain.ScanResult) {}
func (noopPublisher) PublishScanFailed(context.Context, string, string)               {}

type noopAudit struct{}

func (noopAudit) Create(context.Context, *domain.ScanAuditEntry) error { return nil }

func newTestRouter(t *testing.T) (*chi.Mux, *service.Service) {
	t.Helper()
	log := logger.New("handler-test", "development")
	svc := service.NewService(
		extract.NewEngine(),
		advisory.NewChecker(),
		storage.NewJobStore(time.Minute),
		noopAudit{},
		noopPublisher{},
		log,
	)

	h := handler.NewHandler(svc, 64<<10, log)
	r := chi.NewRouter()
	r.Route("/api/v1/prescriptions", h.Routes)
	return r, svc
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandler_Scan(t *testing.T) {
	r, svc := newTestRouter(t)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/prescriptions/scan", map[string]interface{}{
		"text":       "1. Paracetamol 500mg twice daily",
		"confidence": 90,
	})
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.True(t, resp.Success)

	var job domain.ScanJob
	require.NoError(t, json.Unmarshal(resp.Data, &job))
	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, domain.StatusProcessing, job.Status)

	require.Eventually(t, func() bool {
		j := svc.GetJob(job.JobID)
		return j != nil && j.Status == domain.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_Scan_InvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prescriptions/scan", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Scan_ConfidenceOutOfRange(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/prescriptions/scan", map[string]interface{}{
		"text":       "some text",
		"confidence": 150,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
}

func TestHandler_GetResult(t *testing.T) {
	r, svc := newTestRouter(t)

	job, err := svc.StartScan(context.Background(), domain.RawInput{Text: "1. Cetirizine 10mg at night"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		j := svc.GetJob(job.JobID)
		return j != nil && j.Status == domain.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	rec, resp := doJSON(t, r, http.MethodGet, "/api/v1/prescriptions/scan/"+job.JobID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.ScanJob
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	require.Len(t, got.Result.Draft.Medications, 1)
	assert.Equal(t, "Cetirizine", got.Result.Draft.Medications[0].Name)
}

func TestHandler_GetResult_LowConfidence(t *testing.T) {
	r, svc := newTestRouter(t)

	confidence := 10.0
	job, err := svc.StartScan(context.Background(), domain.RawInput{
		Text:       "1. Paracetamol 500mg twice daily",
		Confidence: &confidence,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		j := svc.GetJob(job.JobID)
		return j != nil && j.Status == domain.StatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	rec, resp := doJSON(t, r, http.MethodGet, "/api/v1/prescriptions/scan/"+job.JobID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNPROCESSABLE", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "confidence")
}

func TestHandler_GetResult_Unknown(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, resp := doJSON(t, r, http.MethodGet, "/api/v1/prescriptions/scan/ffffffffffffffffffffffffffffffff", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestHandler_CheckInteractions(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/v1/prescriptions/interactions", map[string]interface{}{
		"drugs": []string{"warfarin", "aspirin"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Interactions []domain.DrugInteraction `json:"interactions"`
		Count        int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Interactions, 1)
	assert.Equal(t, "High", body.Interactions[0].Severity)
}

func TestHandler_CheckInteractions_NeedsTwoDrugs(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/v1/prescriptions/interactions", map[string]interface{}{
		"drugs": []string{"warfarin"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
