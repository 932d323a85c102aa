package events

import (
	"encoding/json"
	"time"
)

// ReceiptUploadedMessage announces that a receipt was accepted by the
// backend. Consumers interested in the full purchase re-fetch the dashboard.
type ReceiptUploadedMessage struct {
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	Timestamp time.Time `json:"timestamp"`
}

// PurchaseDeletedMessage announces that a purchase was removed.
type PurchaseDeletedMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReceiptUploadedMessage(filename string, size int64) *ReceiptUploadedMessage {
	return &ReceiptUploadedMessage{Filename: filename, Size: size, Timestamp: time.Now()}
}

func NewPurchaseDeletedMessage(id int64) *PurchaseDeletedMessage {
	return &PurchaseDeletedMessage{ID: id, Timestamp: time.Now()}
}

func (m *ReceiptUploadedMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }

func ReceiptUploadedMessageFromJSON(data []byte) (*ReceiptUploadedMessage, error) {
	var msg ReceiptUploadedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (m *PurchaseDeletedMessage) ToJSON() ([]byte, error) { return json.Marshal(m) }

func PurchaseDeletedMessageFromJSON(data []byte) (*PurchaseDeletedMessage, error) {
	var msg PurchaseDeletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
