package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDetailRecord_JSON(t *testing.T) {
	rec := NewDetailRecord("evt-1", "app-1", "income", "present", strPtr("d-1"), strPtr("2024-01-01"), nil)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"event_id": "evt-1",
		"uuid": "d-1",
		"attribute_name": "income",
		"attribute_value": "present",
		"created_at": "2024-01-01",
		"updated_at": null,
		"attributes": {"type": "MedicaidDetail"}
	}`, string(data))

	assert.Equal(t, "app-1", rec.PartitionKey())
	assert.Equal(t, "evt-1", rec.SourceEventID())
	assert.Equal(t, MedicaidDetailType, rec.RecordType())
}

func TestNewApplicationRecord(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	d1 := NewDetailRecord("evt-1", "app-1", "income", "present", strPtr("d-1"), nil, nil)
	d2 := NewDetailRecord("evt-1", "app-1", "assets", []any{"house"}, strPtr("d-2"), nil, nil)

	app, err := NewApplicationRecord("evt-1", "app-1", now, []DetailRecord{d1, d2})
	require.NoError(t, err)

	assert.Equal(t, "app-1", app.PartitionKey())
	assert.Equal(t, "evt-1", app.SourceEventID())
	assert.Equal(t, "2024-03-09 14:05:06", app.CreatedAt)
	assert.Equal(t, app.CreatedAt, app.UpdatedAt)
	require.Len(t, app.MedicaidDetails, 2)

	var back map[string]any
	require.NoError(t, json.Unmarshal([]byte(app.MedicaidDetails[1]), &back))
	assert.Equal(t, "assets", back["attribute_name"])
	assert.Equal(t, []any{"house"}, back["attribute_value"])
}

func TestNewApplicationRecord_NoDetails(t *testing.T) {
	app, err := NewApplicationRecord("evt-2", "app-2", time.Now(), nil)
	require.NoError(t, err)

	data, err := json.Marshal(app)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"medicaid_details":[]`)
	assert.Contains(t, string(data), `"type":"TurbocaidApplication"`)
}

func TestEntryResult_Failed(t *testing.T) {
	assert.False(t, EntryResult{SequenceNumber: "1"}.Failed())
	assert.True(t, EntryResult{ErrorCode: "ProvisionedThroughputExceededException"}.Failed())
}
