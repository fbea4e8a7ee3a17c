package extract

import (
	"errors"
	"fmt"

	"github.com/medflow/rxscan-backend/internal/prescription/domain"
)

// MinConfidence is the OCR confidence threshold below which extraction is
// refused outright. Everything above it degrades per-field instead.
const MinConfidence = 30.0

// ErrLowConfidence is returned when the OCR step reported a confidence below
// MinConfidence. No draft is produced in that case — a low-quality guess must
// not reach a human reviewer looking trustworthy.
var ErrLowConfidence = errors.New("ocr confidence below usable threshold")

// summaryFields is the fixed enumeration of draft fields reported in the
// extraction summary, in display order. New draft fields are added by
// extending this table and wiring one extractor in Extract — not by copying
// the assembler.
var summaryFields = []struct {
	label     string
	populated func(*domain.PrescriptionDraft) bool
}{
	{"Patient name", func(d *domain.PrescriptionDraft) bool { return d.PatientName != "" }},
	{"Email", func(d *domain.PrescriptionDraft) bool { return d.PatientEmail != "" }},
	{"Mobile", func(d *domain.PrescriptionDraft) bool { return d.PatientMobile != "" }},
	{"Age", func(d *domain.PrescriptionDraft) bool { return d.Age != "" }},
	{"Weight", func(d *domain.PrescriptionDraft) bool { return d.Weight != "" }},
	{"Height", func(d *domain.PrescriptionDraft) bool { return d.Height != "" }},
	{"Instructions", func(d *domain.PrescriptionDraft) bool { return d.Instructions != "" }},
	{"Expiry date", func(d *domain.PrescriptionDraft) bool { return d.ExpiresAt != "" }},
	{"Doctor name", func(d *domain.PrescriptionDraft) bool { return d.DoctorName != "" }},
	{"Doctor email", func(d *domain.PrescriptionDraft) bool { return d.DoctorEmail != "" }},
	{"Doctor mobile", func(d *domain.PrescriptionDraft) bool { return d.DoctorMobile != "" }},
	{"Clinic name", func(d *domain.PrescriptionDraft) bool { return d.ClinicName != "" }},
	{"Clinic address", func(d *domain.PrescriptionDraft) bool { return d.ClinicAddress != "" }},
}

// Engine converts raw OCR text into a partially-validated prescription draft.
// It is stateless, performs no I/O and is safe for concurrent use; identical
// input always yields identical output.
type Engine struct{}

// NewEngine creates a new extraction engine
func NewEngine() *Engine {
	return &Engine{}
}

// Extract runs the full extraction pipeline over one scan's raw input.
// The only error it can return is the low-confidence abort; every other
// problem degrades to a default value on the affected field. An empty text
// yields an all-default draft with an empty summary, not an error.
func (e *Engine) Extract(input domain.RawInput) (*domain.ScanResult, error) {
	if input.Confidence != nil && *input.Confidence < MinConfidence {
		return nil, fmt.Errorf("%w: confidence %.0f is below %.0f", ErrLowConfidence, *input.Confidence, MinConfidence)
	}

	text := input.Text
	draft := domain.NewPrescriptionDraft()

	// Field extractors run independently; none consults another's result.
	draft.PatientName = ExtractPatientName(text)
	draft.PatientEmail = ExtractEmail(text)
	draft.PatientMobile = ExtractMobile(text)
	draft.Age = ExtractAge(text)
	draft.Weight = ExtractWeight(text)
	draft.Height = ExtractHeight(text)
	draft.Instructions = ExtractInstructions(text)
	draft.ExpiresAt = ExtractExpiryDate(text)
	draft.DoctorName = ExtractDoctorName(text)
	draft.DoctorEmail = ExtractDoctorEmail(text)
	draft.DoctorMobile = ExtractDoctorMobile(text)
	draft.ClinicName = ExtractClinicName(text)
	draft.ClinicAddress = ExtractClinicAddress(text)

	for _, cand := range locateMedicationLines(text) {
		med := extractMedication(cand)
		if !ValidMedicineName(med.Name) {
			continue
		}
		draft.Medications = append(draft.Medications, med)
	}

	return &domain.ScanResult{
		Draft:   *draft,
		Summary: buildSummary(draft),
	}, nil
}

// buildSummary lists the populated fields from the fixed enumeration, then
// appends a medication count when any medications survived the name gate.
func buildSummary(draft *domain.PrescriptionDraft) domain.ExtractionSummary {
	summary := domain.ExtractionSummary{}
	for _, f := range summaryFields {
		if f.populated(draft) {
			summary = append(summary, f.label)
		}
	}

	switch n := len(draft.Medications); {
	case n == 1:
		summary = append(summary, "1 Medication")
	case n > 1:
		summary = append(summary, fmt.Sprintf("%d Medications", n))
	}

	return summary
}
