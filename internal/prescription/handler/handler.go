package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medflow/rxscan-backend/internal/prescription/domain"
	"github.com/medflow/rxscan-backend/internal/prescription/service"
	"github.com/medflow/rxscan-backend/pkg/errors"
	"github.com/medflow/rxscan-backend/pkg/httputil"
	"github.com/medflow/rxscan-backend/pkg/logger"
)

// Handler handles HTTP requests for prescription scanning
type Handler struct {
	service      *service.Service
	maxTextBytes int
	log          *logger.Logger
}

// NewHandler creates a new prescription scan handler
func NewHandler(svc *service.Service, maxTextBytes int, log *logger.Logger) *Handler {
	return &Handler{
		service:      svc,
		maxTextBytes: maxTextBytes,
		log:          log,
	}
}

// ScanRequest is the payload from the OCR step
type ScanRequest struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// InteractionsRequest asks for an ad hoc drug interaction check
type InteractionsRequest struct {
	Drugs []string `json:"drugs" validate:"required,min=2,dive,required"`
}

// Scan handles POST /prescriptions/scan
// Accepts the raw OCR text plus an optional confidence score and returns a
// job to poll. The text itself is never echoed back or persisted.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxTextBytes))

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, errors.BadRequest("invalid JSON body or text too large"))
		return
	}

	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	input := domain.RawInput{
		Text:       req.Text,
		Confidence: req.Confidence,
	}

	job, err := h.service.StartScan(r.Context(), input)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to start scan")
		httputil.Error(w, errors.Internal("failed to start scan"))
		return
	}

	httputil.JSON(w, http.StatusAccepted, job)
}

// GetResult handles GET /prescriptions/scan/{jobId}
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")
	if jobID == "" {
		httputil.Error(w, errors.BadRequest("missing jobId parameter"))
		return
	}

	job := h.service.GetJob(jobID)
	if job == nil {
		httputil.Error(w, errors.NotFound("scan job"))
		return
	}

	// A failed scan means the input could not be processed (the engine's
	// only rejection is the low-confidence abort); surface it as 422
	// rather than a successful poll wrapping a failed job.
	if job.Status == domain.StatusFailed {
		httputil.Error(w, errors.Unprocessable(job.Error))
		return
	}

	httputil.JSON(w, http.StatusOK, job)
}

// CheckInteractions handles POST /prescriptions/interactions
func (h *Handler) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	var req InteractionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, errors.BadRequest("invalid JSON body"))
		return
	}

	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	interactions := h.service.CheckInteractions(req.Drugs)

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"interactions": interactions,
		"count":        len(interactions),
	})
}

// Routes registers the prescription routes on a chi router
func (h *Handler) Routes(r chi.Router) {
	r.Post("/scan", h.Scan)
	r.Get("/scan/{jobId}", h.GetResult)
	r.Post("/interactions", h.CheckInteractions)
}
