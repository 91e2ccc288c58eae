package domain

import (
	"encoding/json"
	"time"

	sharedBus "github.com/davicafu/detailstream/internal/shared/infra/platform/bus"
)

// Tipos de registro que se publican en el append log.
const (
	MedicaidDetailType       = "MedicaidDetail"
	TurbocaidApplicationType = "TurbocaidApplication"
)

// TimestampLayout es el formato de las marcas de tiempo generadas al crear una aplicación.
const TimestampLayout = "2006-01-02 15:04:05"

// TypeTag identifica el tipo de un registro serializado.
type TypeTag struct {
	Type string `json:"type"`
}

// OutputRecord es lo que el extractor produce y el dispatcher publica.
type OutputRecord interface {
	sharedBus.Keyer
	SourceEventID() string
	RecordType() string
}

// DetailRecord es un cambio de un atributo de detalle de una entidad.
// Los campos opcionales son nil cuando el envelope no los trae.
type DetailRecord struct {
	EventID        string  `json:"event_id"`
	UUID           *string `json:"uuid"`
	AttributeName  string  `json:"attribute_name"`
	AttributeValue any     `json:"attribute_value"`
	CreatedAt      *string `json:"created_at"`
	UpdatedAt      *string `json:"updated_at"`
	Attributes     TypeTag `json:"attributes"`

	entityKey string
}

func NewDetailRecord(eventID, entityKey, attributeName string, value any, uuid, createdAt, updatedAt *string) DetailRecord {
	return DetailRecord{
		EventID:        eventID,
		UUID:           uuid,
		AttributeName:  attributeName,
		AttributeValue: value,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		Attributes:     TypeTag{Type: MedicaidDetailType},
		entityKey:      entityKey,
	}
}

func (r DetailRecord) PartitionKey() string  { return r.entityKey }
func (r DetailRecord) SourceEventID() string { return r.EventID }
func (r DetailRecord) RecordType() string    { return MedicaidDetailType }

// ApplicationRecord agrupa los detalles de una entidad recién creada. Cada
// detalle va serializado como string dentro de MedicaidDetails.
type ApplicationRecord struct {
	EventID         string   `json:"event_id"`
	UUID            string   `json:"uuid"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	MedicaidDetails []string `json:"medicaid_details"`
	Attributes      TypeTag  `json:"attributes"`
}

// NewApplicationRecord serializa cada detalle y los envuelve en una aplicación
// con created_at y updated_at fijados a now.
func NewApplicationRecord(eventID, entityKey string, now time.Time, details []DetailRecord) (ApplicationRecord, error) {
	encoded := make([]string, 0, len(details))
	for _, d := range details {
		data, err := json.Marshal(d)
		if err != nil {
			return ApplicationRecord{}, err
		}
		encoded = append(encoded, string(data))
	}

	ts := now.UTC().Format(TimestampLayout)
	return ApplicationRecord{
		EventID:         eventID,
		UUID:            entityKey,
		CreatedAt:       ts,
		UpdatedAt:       ts,
		MedicaidDetails: encoded,
		Attributes:      TypeTag{Type: TurbocaidApplicationType},
	}, nil
}

func (r ApplicationRecord) PartitionKey() string  { return r.UUID }
func (r ApplicationRecord) SourceEventID() string { return r.EventID }
func (r ApplicationRecord) RecordType() string    { return TurbocaidApplicationType }

// Verificación estática
var (
	_ OutputRecord = DetailRecord{}
	_ OutputRecord = ApplicationRecord{}
)
