package domain

import "github.com/aws/aws-lambda-go/events"

// ChangeEvent es una notificación del stream de cambios.
type ChangeEvent = events.DynamoDBEventRecord

// Batch es el lote que entrega el stream en cada invocación.
type Batch = events.DynamoDBEvent

// Tipos de evento que se procesan. El resto (REMOVE incluido) se ignora.
const (
	EventCreated = string(events.DynamoDBOperationTypeInsert)
	EventUpdated = string(events.DynamoDBOperationTypeModify)
)

// Campos del mapa de un atributo de detalle.
const (
	FieldValue       = "value"
	FieldType        = "type"
	FieldUUID        = "uuid"
	FieldCreatedDate = "created_date"
	FieldUpdatedDate = "updated_date"
)
