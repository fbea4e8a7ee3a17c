package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Prescription scan events
	EventDraftCreated = "prescription.draft.created"
	EventScanFailed   = "prescription.scan.failed"
)

// Exchange names
const (
	ExchangePrescriptionEvents = "prescription.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// DraftCreatedEvent is published when a prescription draft is extracted from a scan
type DraftCreatedEvent struct {
	JobID           string   `json:"job_id"`
	MedicationCount int      `json:"medication_count"`
	FieldsExtracted []string `json:"fields_extracted"`
	RequiresReview  bool     `json:"requires_review"`
}

// ScanFailedEvent is published when a scan is rejected or fails
type ScanFailedEvent struct {
	JobID  string `json:"job_id"`
	Reason string `json:"reason"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
