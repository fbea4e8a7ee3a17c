package domain

import "time"

// ScanStatus represents the processing state of a scan job
type ScanStatus string

const (
	StatusProcessing ScanStatus = "processing"
	StatusCompleted  ScanStatus = "completed"
	StatusFailed     ScanStatus = "failed"
)

// RawInput is the text handed over by the OCR step for one scan attempt.
// Confidence is the OCR engine's own 0-100 estimate of character accuracy;
// nil when the OCR step does not report one. RawInput is consumed once and
// must not be retained after extraction returns.
type RawInput struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Medication is one extracted medication entry. Every field except Name
// degrades to the empty string when it cannot be resolved; a candidate
// without a valid name is dropped entirely rather than kept blank.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Quantity     string `json:"quantity"`
	Frequency    string `json:"frequency"`
	Timing       string `json:"timing"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// PrescriptionDraft is the engine's best-effort structured output.
// It is advisory: the review UI lets a human edit every field before
// anything is submitted. Scalar fields default to the empty string,
// UsageLimit to 1, Medications to an empty slice in source-text order.
type PrescriptionDraft struct {
	PatientName   string       `json:"patient_name"`
	PatientEmail  string       `json:"patient_email"`
	PatientMobile string       `json:"patient_mobile"`
	Age           string       `json:"age"`
	Weight        string       `json:"weight"`
	Height        string       `json:"height"`
	Instructions  string       `json:"instructions"`
	Medications   []Medication `json:"medications"`
	UsageLimit    int          `json:"usage_limit"`
	ExpiresAt     string       `json:"expires_at"`
	DoctorName    string       `json:"doctor_name"`
	DoctorEmail   string       `json:"doctor_email"`
	DoctorMobile  string       `json:"doctor_mobile"`
	ClinicName    string       `json:"clinic_name"`
	ClinicAddress string       `json:"clinic_address"`
}

// NewPrescriptionDraft returns a draft with all defaults applied
func NewPrescriptionDraft() *PrescriptionDraft {
	return &PrescriptionDraft{
		UsageLimit:  1,
		Medications: []Medication{},
	}
}

// ExtractionSummary lists, in a fixed order, the draft fields that ended up
// populated. It exists for user feedback messaging only and is not
// authoritative: an empty summary means "please fill in manually".
type ExtractionSummary []string

// DrugInteraction is a known interaction between two drugs found in a draft
type DrugInteraction struct {
	DrugA          string `json:"drug_a"`
	DrugB          string `json:"drug_b"`
	Severity       string `json:"severity"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ScanResult is the transfer object handed to the review UI. The caller
// passes it explicitly through its own navigation/state mechanism; there is
// no ambient shared state between the scan and creation flows.
type ScanResult struct {
	Draft          PrescriptionDraft `json:"draft"`
	Summary        ExtractionSummary `json:"summary"`
	Interactions   []DrugInteraction `json:"interactions,omitempty"`
	Symptoms       []string          `json:"symptoms,omitempty"`
	RequiresReview bool              `json:"requires_review"`
}

// ScanJob represents one scan attempt through its lifecycle
type ScanJob struct {
	JobID     string      `json:"job_id"`
	Status    ScanStatus  `json:"status"`
	Result    *ScanResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ScanAuditEntry records a scan processing event. The raw OCR text itself is
// never persisted, only metadata about what was extracted from it.
type ScanAuditEntry struct {
	ID              string    `db:"id"`
	JobID           string    `db:"job_id"`
	Confidence      *float64  `db:"confidence"`
	FieldsExtracted []string  `db:"fields_extracted"`
	MedicationCount int       `db:"medication_count"`
	DurationMs      int64     `db:"duration_ms"`
	TextDiscardedAt time.Time `db:"text_discarded_at"`
	CreatedAt       time.Time `db:"created_at"`
}
