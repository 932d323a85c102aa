package events

import (
	"context"
	"testing"
	"time"
)

func TestNilClientPublishesAreNoOps(t *testing.T) {
	var c *Client

	if err := c.PublishReceiptUploaded(context.Background(), "nota.jpg", 123); err != nil {
		t.Fatalf("nil client publish should be a no-op, got %v", err)
	}
	if err := c.PublishPurchaseDeleted(context.Background(), 7); err != nil {
		t.Fatalf("nil client publish should be a no-op, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil client close should be a no-op, got %v", err)
	}
}

func TestReceiptUploadedMessageJSON(t *testing.T) {
	msg := NewReceiptUploadedMessage("nota.png", 2048)
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ReceiptUploadedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if parsed.Filename != "nota.png" || parsed.Size != 2048 {
		t.Fatalf("unexpected round trip %#v", parsed)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp mismatch: %v vs %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestPurchaseDeletedMessageJSON(t *testing.T) {
	msg := &PurchaseDeletedMessage{ID: 42, Timestamp: time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC)}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	parsed, err := PurchaseDeletedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if parsed.ID != 42 || !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("unexpected round trip %#v", parsed)
	}
}

func TestPurchaseDeletedMessageInvalidJSON(t *testing.T) {
	if _, err := PurchaseDeletedMessageFromJSON([]byte(`{"id": "nope"}`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
