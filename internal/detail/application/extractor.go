package application

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/davicafu/detailstream/internal/detail/domain"
)

// Extractor convierte un evento de cambio en registros de detalle.
type Extractor struct {
	marker       string
	keyAttribute string
	clock        clockwork.Clock
	log          *zap.Logger
}

func NewExtractor(marker, keyAttribute string, clock clockwork.Clock, log *zap.Logger) *Extractor {
	return &Extractor{
		marker:       marker,
		keyAttribute: keyAttribute,
		clock:        clock,
		log:          log,
	}
}

// Extract devuelve los registros de un evento:
//   - INSERT: una única ApplicationRecord con todos los detalles (aunque no haya ninguno).
//   - MODIFY: un DetailRecord por cada atributo de detalle que haya cambiado.
//   - cualquier otro tipo: nada.
//
// Un evento sin clave de entidad devuelve ErrMissingEntityKey.
func (e *Extractor) Extract(event domain.ChangeEvent) ([]domain.OutputRecord, error) {
	isCreation := event.EventName == domain.EventCreated
	if !isCreation && event.EventName != domain.EventUpdated {
		e.log.Debug("Evento ignorado", zap.String("event_id", event.EventID), zap.String("event_name", event.EventName))
		return nil, nil
	}

	key, err := e.entityKey(event)
	if err != nil {
		return nil, err
	}

	details := e.details(event, key, isCreation)

	if !isCreation {
		out := make([]domain.OutputRecord, 0, len(details))
		for _, d := range details {
			out = append(out, d)
		}
		return out, nil
	}

	app, err := domain.NewApplicationRecord(event.EventID, key, e.clock.Now(), details)
	if err != nil {
		return nil, fmt.Errorf("encode details of %s: %w", event.EventID, err)
	}
	return []domain.OutputRecord{app}, nil
}

func (e *Extractor) entityKey(event domain.ChangeEvent) (string, error) {
	av, ok := event.Change.Keys[e.keyAttribute]
	if !ok {
		return "", fmt.Errorf("%w: event %s has no %q key", domain.ErrMissingEntityKey, event.EventID, e.keyAttribute)
	}
	key, ok := domain.DecodeString(av)
	if !ok || key == "" {
		return "", fmt.Errorf("%w: event %s key %q is not a string", domain.ErrMissingEntityKey, event.EventID, e.keyAttribute)
	}
	return key, nil
}

func (e *Extractor) details(event domain.ChangeEvent, key string, isCreation bool) []domain.DetailRecord {
	newImage := event.Change.NewImage
	oldImage := event.Change.OldImage

	// Orden estable: el mapa de Go no lo garantiza.
	names := make([]string, 0, len(newImage))
	for name := range newImage {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []domain.DetailRecord
	for _, name := range names {
		envelope := newImage[name]
		if envelope.DataType() != events.DataTypeMap {
			continue
		}
		fields := envelope.Map()

		value, ok := fields[domain.FieldValue]
		if !ok {
			continue
		}
		typ, ok := fields[domain.FieldType]
		if !ok {
			continue
		}
		if tag, ok := domain.DecodeString(typ); !ok || tag != e.marker {
			continue
		}

		if !isCreation && unchanged(oldImage, name, value) {
			continue
		}

		decoded := domain.Decode(value)
		if domain.IsEmpty(decoded) {
			e.log.Debug("Atributo vacío descartado", zap.String("event_id", event.EventID), zap.String("attribute", name))
			continue
		}

		out = append(out, domain.NewDetailRecord(
			event.EventID,
			key,
			name,
			decoded,
			optionalString(fields, domain.FieldUUID),
			optionalString(fields, domain.FieldCreatedDate),
			optionalString(fields, domain.FieldUpdatedDate),
		))
	}
	return out
}

// unchanged compara los envelopes tal cual, sin decodificar. Si el atributo no
// estaba en la imagen anterior se considera cambiado.
func unchanged(oldImage map[string]events.DynamoDBAttributeValue, name string, newValue events.DynamoDBAttributeValue) bool {
	old, ok := oldImage[name]
	if !ok || old.DataType() != events.DataTypeMap {
		return false
	}
	oldValue, ok := old.Map()[domain.FieldValue]
	if !ok {
		return false
	}
	return reflect.DeepEqual(oldValue, newValue)
}

func optionalString(fields map[string]events.DynamoDBAttributeValue, name string) *string {
	av, ok := fields[name]
	if !ok {
		return nil
	}
	s, ok := domain.DecodeString(av)
	if !ok {
		return nil
	}
	return &s
}
