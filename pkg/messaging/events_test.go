package messaging_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow/rxscan-backend/pkg/messaging"
)

func TestNewEvent(t *testing.T) {
	data := messaging.DraftCreatedEvent{
		JobID:           "job-1",
		MedicationCount: 2,
		FieldsExtracted: []string{"Patient name", "2 Medications"},
		RequiresReview:  false,
	}

	event, err := messaging.NewEvent(messaging.EventDraftCreated, "prescription-service", "corr-1", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, messaging.EventDraftCreated, event.Type)
	assert.Equal(t, "prescription-service", event.Source)
	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.False(t, event.Timestamp.IsZero())

	var parsed messaging.DraftCreatedEvent
	require.NoError(t, event.UnmarshalData(&parsed))
	assert.Equal(t, data, parsed)
}

func TestNewEvent_UnserializableData(t *testing.T) {
	_, err := messaging.NewEvent(messaging.EventScanFailed, "prescription-service", "", func() {})
	assert.Error(t, err)
}

func TestEventJSONRoundTrip(t *testing.T) {
	event, err := messaging.NewEvent(messaging.EventScanFailed, "prescription-service", "corr-2",
		messaging.ScanFailedEvent{JobID: "job-9", Reason: "ocr confidence below usable threshold"})
	require.NoError(t, err)

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded messaging.Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.Type, decoded.Type)

	var data messaging.ScanFailedEvent
	require.NoError(t, decoded.UnmarshalData(&data))
	assert.Equal(t, "job-9", data.JobID)
}

func TestGenerateEventID_Unique(t *testing.T) {
	assert.NotEqual(t, messaging.GenerateEventID(), messaging.GenerateEventID())
}
