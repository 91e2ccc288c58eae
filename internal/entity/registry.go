package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ---------- Errores ----------
var (
	ErrMissingEntity  = errors.New("entity type is missing")
	ErrInvalidEntity  = errors.New("no entity definition for type")
	ErrNestingTooDeep = errors.New("entity nesting too deep")
	ErrBadRegistry    = errors.New("invalid entity registry")
)

// MaxNestingDepth limita cuántos niveles de la misma entidad se pueden anidar
// (p. ej. Account.ParentAccount.ParentAccount...).
const MaxNestingDepth = 8

// Entity es cualquier modelo que se puede reconstruir desde el stream.
type Entity interface {
	EntityType() string
}

// validator lo implementan los modelos con restricciones propias.
type validator interface {
	Validate() error
}

// Constructor decodifica el JSON de una entidad.
type Constructor func(raw json.RawMessage) (Entity, error)

// Registration asocia un tag de tipo con su constructor.
type Registration struct {
	Tag string
	New Constructor
}

// Registry es la tabla cerrada de tipos conocidos.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry valida y construye el registro. Un tag vacío, duplicado o sin
// constructor es un error de arranque.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{constructors: make(map[string]Constructor, len(regs))}
	for _, reg := range regs {
		if reg.Tag == "" || reg.New == nil {
			return nil, fmt.Errorf("%w: empty tag or constructor", ErrBadRegistry)
		}
		if _, dup := r.constructors[reg.Tag]; dup {
			return nil, fmt.Errorf("%w: duplicate tag %q", ErrBadRegistry, reg.Tag)
		}
		r.constructors[reg.Tag] = reg.New
	}
	return r, nil
}

// Of construye el constructor de un modelo concreto.
func Of[T any, PT interface {
	*T
	Entity
}]() Constructor {
	return func(raw json.RawMessage) (Entity, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		e := PT(&v)
		if val, ok := any(e).(validator); ok {
			if err := val.Validate(); err != nil {
				return nil, err
			}
		}
		return e, nil
	}
}

// Default devuelve el registro con todos los modelos del paquete.
func Default() *Registry {
	r, err := NewRegistry(
		Registration{Tag: "Account", New: Of[Account]()},
		Registration{Tag: "AccountContactRelation", New: Of[AccountContactRelation]()},
		Registration{Tag: "Applicant", New: Of[Applicant]()},
		Registration{Tag: "ApplicantContact", New: Of[ApplicantContact]()},
		Registration{Tag: "Contact", New: Of[Contact]()},
		Registration{Tag: "CountyOffice", New: Of[CountyOffice]()},
		Registration{Tag: "Event", New: Of[Event]()},
		Registration{Tag: "FieldRepApplication", New: Of[FieldRepApplication]()},
		Registration{Tag: "FieldRepAppointment", New: Of[FieldRepAppointment]()},
		Registration{Tag: "MedicaidDetail", New: Of[MedicaidDetail]()},
		Registration{Tag: "Referral", New: Of[Referral]()},
		Registration{Tag: "RelatedApplicantContact", New: Of[RelatedApplicantContact]()},
		Registration{Tag: "ShippingAddress", New: Of[ShippingAddress]()},
		Registration{Tag: "State", New: Of[State]()},
		Registration{Tag: "Task", New: Of[Task]()},
		Registration{Tag: "TurbocaidApplication", New: Of[TurbocaidApplication]()},
		Registration{Tag: "User", New: Of[User]()},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Decode construye la entidad de tipo tag.
func (r *Registry) Decode(tag string, raw json.RawMessage) (Entity, error) {
	if tag == "" {
		return nil, ErrMissingEntity
	}
	newEntity, ok := r.constructors[tag]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrInvalidEntity, tag)
	}
	e, err := newEntity(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", tag, err)
	}
	return e, nil
}

// Tags devuelve los tipos registrados, ordenados.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.constructors))
	for t := range r.constructors {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

type typed struct {
	Attributes struct {
		Type string `json:"type"`
	} `json:"attributes"`
}

// DecodeRecord reconstruye un registro publicado a partir de su attributes.type.
func (r *Registry) DecodeRecord(blob []byte) (Entity, error) {
	var t typed
	if err := json.Unmarshal(blob, &t); err != nil {
		return nil, err
	}
	return r.Decode(t.Attributes.Type, blob)
}

// StreamMessage es un mensaje del stream upstream: {action, recordSource, data}.
type StreamMessage struct {
	Action       *string
	RecordSource *string
	Entity       Entity
}

// FromStream decodifica un mensaje upstream; el tipo sale de data.attributes.type.
func (r *Registry) FromStream(payload []byte) (StreamMessage, error) {
	var msg struct {
		Action       *string         `json:"action"`
		RecordSource *string         `json:"recordSource"`
		Data         json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &msg); err != nil {
		return StreamMessage{}, err
	}
	if len(msg.Data) == 0 || string(msg.Data) == "null" {
		return StreamMessage{}, ErrMissingEntity
	}

	e, err := r.DecodeRecord(msg.Data)
	if err != nil {
		return StreamMessage{}, err
	}
	return StreamMessage{Action: msg.Action, RecordSource: msg.RecordSource, Entity: e}, nil
}
