// Package gateway wraps the remote SmartSpend backend behind a small typed
// surface. It performs no retries: retry policy, if any, belongs to the
// caller.
package gateway

import (
	"context"
	"time"
)

// UploadAck is the backend's acknowledgment of a processed receipt.
type UploadAck struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Uploaded string `json:"timestamp"`
}

// HealthStatus is the backend's liveness payload. Diagnostic only, never
// used for gating.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// API is the contract both the real HTTP client and the demo client
// satisfy. The dashboard synchronizer and the mutation coordinator receive
// it by injection so tests can substitute a fake.
type API interface {
	// FetchDashboard returns the raw dashboard payload. Shape is not
	// guaranteed beyond being a JSON object; normalization happens in the
	// caller.
	FetchDashboard(ctx context.Context) (map[string]any, error)

	// UploadReceipt transmits a receipt file as a multipart body.
	UploadReceipt(ctx context.Context, data []byte, filename, mimeType string) (UploadAck, error)

	// DeletePurchase removes one purchase by its server identifier.
	DeletePurchase(ctx context.Context, id int64) error

	// Health probes the backend's liveness endpoint.
	Health(ctx context.Context) (HealthStatus, error)
}

// DefaultTimeout bounds a single backend call when the caller brings no
// tighter deadline.
const DefaultTimeout = 15 * time.Second
