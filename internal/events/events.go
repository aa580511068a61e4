package events

import (
	"encoding/json"
	"time"
)

const (
	TypePing                = "ping"
	TypeCategorizeStarted   = "categorize_started"
	TypeCategorizeCompleted = "categorize_completed"
	TypeCategorizeFailed    = "categorize_failed"
	TypeCountsReconciled    = "counts_reconciled"
	TypeToolsImported       = "tools_imported"
	TypeConfigUpdated       = "config_updated"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent encodes one envelope as a single-line JSON string.
func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	b, _ := json.Marshal(Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	})
	return string(b)
}
