package eventjournal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventjournal"
)

func Test_BuildStorableEvent_ErrorCases(t *testing.T) {
	validPayloadJSON := []byte(`{"MemberID": 100}`)
	validMetadataJSON := []byte(`{"EventID": "abc"}`)

	tests := []struct {
		name         string
		payloadJSON  []byte
		metadataJSON []byte
		expectedErr  error
	}{
		{name: "invalid payload JSON", payloadJSON: []byte(`{"invalid": json}`), metadataJSON: validMetadataJSON, expectedErr: eventjournal.ErrInvalidPayloadJSON},
		{name: "invalid metadata JSON", payloadJSON: validPayloadJSON, metadataJSON: []byte(`{"invalid": json}`), expectedErr: eventjournal.ErrInvalidMetadataJSON},
		{name: "empty payload JSON", payloadJSON: []byte(``), metadataJSON: validMetadataJSON, expectedErr: eventjournal.ErrInvalidPayloadJSON},
		{name: "nil metadata JSON", payloadJSON: validPayloadJSON, metadataJSON: nil, expectedErr: eventjournal.ErrInvalidMetadataJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eventjournal.BuildStorableEvent("BookIssued", time.Now(), tt.payloadJSON, tt.metadataJSON)

			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	occurredAt := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	event, err := eventjournal.BuildStorableEventWithEmptyMetadata("BookIssued", occurredAt, []byte(`{"BookID": 1}`))

	require.NoError(t, err)
	assert.Equal(t, "BookIssued", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.JSONEq(t, `{"BookID": 1}`, string(event.PayloadJSON))
	assert.Equal(t, []byte("{}"), event.MetadataJSON)
}
