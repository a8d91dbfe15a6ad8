package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventRoundTrip(t *testing.T) {
	evt := NewLedgerEvent("tx-123", OpSync)
	if evt.Timestamp.IsZero() {
		t.Fatal("timestamp must be set")
	}

	body, err := evt.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != "tx-123" || got.Op != OpSync {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if !got.Timestamp.Truncate(time.Second).Equal(evt.Timestamp.Truncate(time.Second)) {
		t.Fatalf("timestamp drifted: %v vs %v", got.Timestamp, evt.Timestamp)
	}
}

func TestLedgerEventFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}
