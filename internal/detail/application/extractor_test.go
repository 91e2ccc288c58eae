package application

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

const marker = "medicaid_detail"

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return NewExtractor(marker, "uuid", clockwork.NewFakeClockAt(fixedNow), zap.NewNop())
}

func loadBatch(t *testing.T, name string) domain.Batch {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	var batch domain.Batch
	require.NoError(t, json.Unmarshal(data, &batch))
	return batch
}

// detail construye el mapa de un atributo de detalle.
func detail(value events.DynamoDBAttributeValue, typ string) events.DynamoDBAttributeValue {
	return events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
		"value":        value,
		"type":         events.NewStringAttribute(typ),
		"uuid":         events.NewStringAttribute("detail-uuid"),
		"created_date": events.NewStringAttribute("2020-01-01T00:00:00.000+0000"),
		"updated_date": events.NewStringAttribute("2020-01-02T00:00:00.000+0000"),
	})
}

func changeEvent(name string, newImage, oldImage map[string]events.DynamoDBAttributeValue) domain.ChangeEvent {
	return domain.ChangeEvent{
		EventID:   "evt-1",
		EventName: name,
		Change: events.DynamoDBStreamRecord{
			Keys:     map[string]events.DynamoDBAttributeValue{"uuid": events.NewStringAttribute("app-1")},
			NewImage: newImage,
			OldImage: oldImage,
		},
	}
}

func TestExtract_InsertFixture(t *testing.T) {
	batch := loadBatch(t, "insert.json")
	require.Len(t, batch.Records, 1)

	out, err := newTestExtractor().Extract(batch.Records[0])
	require.NoError(t, err)
	require.Len(t, out, 1)

	app, ok := out[0].(domain.ApplicationRecord)
	require.True(t, ok)
	assert.Equal(t, "c4ca4238a0b923820dcc509a6f75849b", app.EventID)
	assert.Equal(t, "6f1d2c1e-6a55-4b8f-9a4e-0c1f5a7b2d10", app.UUID)
	assert.Equal(t, "6f1d2c1e-6a55-4b8f-9a4e-0c1f5a7b2d10", app.PartitionKey())
	assert.Equal(t, "2024-05-01 12:30:00", app.CreatedAt)
	assert.Equal(t, "2024-05-01 12:30:00", app.UpdatedAt)
	require.Len(t, app.MedicaidDetails, 1)

	var d map[string]any
	require.NoError(t, json.Unmarshal([]byte(app.MedicaidDetails[0]), &d))
	assert.Equal(t, "present", d["attribute_value"])
	assert.Equal(t, "income", d["attribute_name"])
	assert.Equal(t, "0b8e5c3a-1d2f-4e6a-8b9c-7d1e2f3a4b5c", d["uuid"])
	assert.Equal(t, "c4ca4238a0b923820dcc509a6f75849b", d["event_id"])
	assert.Equal(t, "2020-06-01T10:00:00.000+0000", d["created_at"])
}

func TestExtract_ModifyFixture(t *testing.T) {
	batch := loadBatch(t, "modify.json")

	out, err := newTestExtractor().Extract(batch.Records[0])
	require.NoError(t, err)
	require.Len(t, out, 2)

	assets := out[0].(domain.DetailRecord)
	assert.Equal(t, "assets", assets.AttributeName)
	assert.Equal(t, map[string]any{"home": "yes", "vehicles": []any{"car", "boat"}}, assets.AttributeValue)
	assert.Equal(t, "6f1d2c1e-6a55-4b8f-9a4e-0c1f5a7b2d10", assets.PartitionKey())

	// spouse no estaba en OldImage: cuenta como cambio.
	spouse := out[1].(domain.DetailRecord)
	assert.Equal(t, "spouse", spouse.AttributeName)
	assert.Equal(t, "Jane", spouse.AttributeValue)

	for _, rec := range out {
		assert.Equal(t, "c81e728d9d4c2f636f067f89cc14862c", rec.SourceEventID())
	}
}

func TestExtract_ModifyUnchangedValue(t *testing.T) {
	value := events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
		"a": events.NewListAttribute([]events.DynamoDBAttributeValue{events.NewStringAttribute("1")}),
	})
	newImage := map[string]events.DynamoDBAttributeValue{"income": detail(value, marker)}
	oldImage := map[string]events.DynamoDBAttributeValue{"income": detail(value, marker)}

	out, err := newTestExtractor().Extract(changeEvent(domain.EventUpdated, newImage, oldImage))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExtract_ModifyChangeByAbsence(t *testing.T) {
	newImage := map[string]events.DynamoDBAttributeValue{"income": detail(events.NewStringAttribute("present"), marker)}

	out, err := newTestExtractor().Extract(changeEvent(domain.EventUpdated, newImage, nil))
	require.NoError(t, err)
	require.Len(t, out, 1)

	rec := out[0].(domain.DetailRecord)
	assert.Equal(t, "income", rec.AttributeName)
	assert.Equal(t, "present", rec.AttributeValue)
	require.NotNil(t, rec.UUID)
	assert.Equal(t, "detail-uuid", *rec.UUID)
	assert.Equal(t, "app-1", rec.PartitionKey())
}

func TestExtract_ModifyOldEnvelopeWithoutValue(t *testing.T) {
	newImage := map[string]events.DynamoDBAttributeValue{"income": detail(events.NewStringAttribute("present"), marker)}
	oldImage := map[string]events.DynamoDBAttributeValue{
		"income": events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
			"type": events.NewStringAttribute(marker),
		}),
	}

	out, err := newTestExtractor().Extract(changeEvent(domain.EventUpdated, newImage, oldImage))
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestExtract_SkipsIneligibleAttributes(t *testing.T) {
	newImage := map[string]events.DynamoDBAttributeValue{
		"email":      events.NewStringAttribute("a@b.com"),
		"other_type": detail(events.NewStringAttribute("x"), "application_status"),
		"no_value": events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
			"type": events.NewStringAttribute(marker),
		}),
		"no_type": events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
			"value": events.NewStringAttribute("x"),
		}),
		"numeric_type": events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
			"value": events.NewStringAttribute("x"),
			"type":  events.NewNumberAttribute("1"),
		}),
		"empty_string": detail(events.NewStringAttribute(""), marker),
		"empty_map":    detail(events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{}), marker),
		"number_value": detail(events.NewNumberAttribute("10"), marker),
		"kept":         detail(events.NewStringAttribute("yes"), marker),
	}

	out, err := newTestExtractor().Extract(changeEvent(domain.EventUpdated, newImage, nil))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "kept", out[0].(domain.DetailRecord).AttributeName)
}

func TestExtract_InsertWithoutDetailsStillEmitsApplication(t *testing.T) {
	newImage := map[string]events.DynamoDBAttributeValue{"email": events.NewStringAttribute("a@b.com")}

	out, err := newTestExtractor().Extract(changeEvent(domain.EventCreated, newImage, nil))
	require.NoError(t, err)
	require.Len(t, out, 1)

	app := out[0].(domain.ApplicationRecord)
	assert.Empty(t, app.MedicaidDetails)
	assert.Equal(t, "app-1", app.UUID)
}

func TestExtract_InsertIgnoresOldImage(t *testing.T) {
	value := events.NewStringAttribute("same")
	newImage := map[string]events.DynamoDBAttributeValue{"income": detail(value, marker)}
	oldImage := map[string]events.DynamoDBAttributeValue{"income": detail(value, marker)}

	out, err := newTestExtractor().Extract(changeEvent(domain.EventCreated, newImage, oldImage))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Len(t, out[0].(domain.ApplicationRecord).MedicaidDetails, 1)
}

func TestExtract_IgnoredEventKinds(t *testing.T) {
	newImage := map[string]events.DynamoDBAttributeValue{"income": detail(events.NewStringAttribute("x"), marker)}

	for _, name := range []string{"REMOVE", "", "UNKNOWN"} {
		out, err := newTestExtractor().Extract(changeEvent(name, newImage, nil))
		assert.NoError(t, err)
		assert.Empty(t, out, name)
	}
}

func TestExtract_MissingEntityKey(t *testing.T) {
	event := changeEvent(domain.EventCreated, nil, nil)
	event.Change.Keys = map[string]events.DynamoDBAttributeValue{"id": events.NewStringAttribute("x")}

	_, err := newTestExtractor().Extract(event)
	assert.ErrorIs(t, err, domain.ErrMissingEntityKey)

	event.Change.Keys = map[string]events.DynamoDBAttributeValue{"uuid": events.NewNumberAttribute("7")}
	_, err = newTestExtractor().Extract(event)
	assert.ErrorIs(t, err, domain.ErrMissingEntityKey)
}

func TestExtract_DeterministicOrder(t *testing.T) {
	newImage := map[string]events.DynamoDBAttributeValue{
		"zeta":  detail(events.NewStringAttribute("z"), marker),
		"alpha": detail(events.NewStringAttribute("a"), marker),
		"mid":   detail(events.NewStringAttribute("m"), marker),
	}

	out, err := newTestExtractor().Extract(changeEvent(domain.EventUpdated, newImage, nil))
	require.NoError(t, err)
	require.Len(t, out, 3)

	var names []string
	for _, rec := range out {
		names = append(names, rec.(domain.DetailRecord).AttributeName)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}
