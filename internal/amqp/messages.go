package amqp

import (
	"encoding/json"
	"time"
)

const (
	OpSync   = "sync"
	OpDelete = "delete"
)

// LedgerEvent is the message published after a successful ledger
// mutation. It carries only the transaction id and the operation; the
// worker fetches the full record from the database when needed.
type LedgerEvent struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(id, op string) *LedgerEvent {
	return &LedgerEvent{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
