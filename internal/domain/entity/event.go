package entity

import "github.com/ruudy-sib/stocksync/internal/domain/valueobject"

// EventKind is the normalised type of an inbound webhook notification.
type EventKind string

const (
	EventKindCreate  EventKind = "create"
	EventKindUpdate  EventKind = "update"
	EventKindDelete  EventKind = "delete"
	EventKindUnknown EventKind = "unknown"
)

// EventSource names the wire shape an event was decoded from.
type EventSource string

const (
	// EventSourceRecordWebhook is kintone's native shape: {"type": "ADD_RECORD", "record": {...}}.
	EventSourceRecordWebhook EventSource = "record_webhook"

	// EventSourceEnvelope is the wrapped shape: {"event": {"type": "CREATE"}, "record": {...}}.
	EventSourceEnvelope EventSource = "event_envelope"
)

// Event is a webhook notification after it has been decoded from either wire shape.
type Event struct {
	Kind     EventKind
	RecordID valueobject.RecordID
	RawType  string
	Source   EventSource
}
