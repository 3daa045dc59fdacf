package http

import (
	"encoding/json"
	"fmt"

	"github.com/ruudy-sib/stocksync/internal/domain"
	"github.com/ruudy-sib/stocksync/internal/domain/entity"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
)

// WebhookRequest covers both inbound notification shapes. Event is set for
// the envelope shape; Type is set for kintone's native record webhook.
type WebhookRequest struct {
	Event    *EventDTO                  `json:"event"`
	Type     *string                    `json:"type"`
	Record   map[string]json.RawMessage `json:"record"`
	RecordID valueobject.RecordID       `json:"recordId"`
}

// EventDTO is the envelope's event descriptor.
type EventDTO struct {
	Type string `json:"type"`
}

// FieldDTO is a single kintone field inside a record snapshot.
type FieldDTO struct {
	Type  string               `json:"type"`
	Value valueobject.RecordID `json:"value"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

var recordWebhookKinds = map[string]entity.EventKind{
	"ADD_RECORD":    entity.EventKindCreate,
	"UPDATE_RECORD": entity.EventKindUpdate,
	"DELETE_RECORD": entity.EventKindDelete,
}

var envelopeKinds = map[string]entity.EventKind{
	"CREATE": entity.EventKindCreate,
	"UPDATE": entity.EventKindUpdate,
	"DELETE": entity.EventKindDelete,
}

// decodeEvent parses a JSON body into a normalised event.
func decodeEvent(body []byte) (entity.Event, error) {
	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return entity.Event{}, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}
	return req.toEntity()
}

// toEntity converts the request to a domain event, choosing the shape by
// discriminator: an event object wins over a type string.
func (r *WebhookRequest) toEntity() (entity.Event, error) {
	switch {
	case r.Event != nil:
		id, err := r.recordField("ID")
		if err != nil {
			return entity.Event{}, err
		}
		return entity.Event{
			Kind:     kindOf(envelopeKinds, r.Event.Type),
			RecordID: id,
			RawType:  r.Event.Type,
			Source:   entity.EventSourceEnvelope,
		}, nil

	case r.Type != nil:
		event := entity.Event{
			Kind:    kindOf(recordWebhookKinds, *r.Type),
			RawType: *r.Type,
			Source:  entity.EventSourceRecordWebhook,
		}
		if event.Kind == entity.EventKindDelete {
			event.RecordID = r.RecordID
			return event, nil
		}
		id, err := r.recordField("order_rn")
		if err != nil {
			return entity.Event{}, err
		}
		if id.IsZero() {
			if id, err = r.recordField("$id"); err != nil {
				return entity.Event{}, err
			}
		}
		event.RecordID = id
		return event, nil

	default:
		return entity.Event{}, fmt.Errorf("%w: neither event nor type is present", domain.ErrMalformedEvent)
	}
}

// recordField reads record.<code>.value as a record ID. A missing record or
// field yields the zero ID.
func (r *WebhookRequest) recordField(code string) (valueobject.RecordID, error) {
	raw, ok := r.Record[code]
	if !ok {
		return valueobject.RecordID{}, nil
	}
	var f FieldDTO
	if err := json.Unmarshal(raw, &f); err != nil {
		return valueobject.RecordID{}, fmt.Errorf("%w: record.%s: %v", domain.ErrMalformedEvent, code, err)
	}
	return f.Value, nil
}

func kindOf(kinds map[string]entity.EventKind, raw string) entity.EventKind {
	if kind, ok := kinds[raw]; ok {
		return kind
	}
	return entity.EventKindUnknown
}
