// Package mutation manages the lifecycle of user-initiated changes: the
// single in-flight receipt upload and the confirm-then-delete sequence.
// Both flows end with a mandatory dashboard re-fetch so the view always
// returns to server truth.
package mutation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartspend/internal/events"
	"smartspend/internal/gateway"
)

// UploadState tracks one upload interaction.
type UploadState string

const (
	UploadIdle       UploadState = "idle"
	UploadValidating UploadState = "validating"
	UploadSubmitting UploadState = "submitting"
	UploadSucceeded  UploadState = "succeeded"
	UploadFailed     UploadState = "failed"
)

// maxUploadSize is the client-side cap checked before any network call.
const maxUploadSize = 10 << 20 // 10 MiB

// DefaultSettleDelay keeps the success state visible before the dashboard
// refresh closes the interaction.
const DefaultSettleDelay = 1500 * time.Millisecond

var allowedMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// User-facing interaction messages.
const (
	msgNoFile       = "Por favor, selecione um arquivo"
	msgInvalidType  = "Formato inválido. Aceitamos apenas imagens (JPG, PNG) e PDF"
	msgTooLarge     = "Arquivo muito grande. Tamanho máximo: 10MB"
	msgUploadOK     = "Nota fiscal processada com sucesso!"
	msgDeleteOK     = "Nota excluída"
	msgDeleteFailed = "Erro ao excluir nota"
)

var (
	// ErrUploadInFlight rejects a second upload interaction while one is
	// still submitting. Interactions never interleave.
	ErrUploadInFlight = errors.New("upload already in progress")

	// ErrNotConfirmed rejects a delete that was not explicitly confirmed.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// ValidationError is a client-side rejection raised before any network
// call. It never surfaces past the upload interaction.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// UploadAttempt is the ephemeral state of one upload interaction. It is
// replaced, never mutated, when the interaction restarts.
type UploadAttempt struct {
	ID       string
	State    UploadState
	Filename string
	Err      string
	Message  string
	Ack      gateway.UploadAck
}

// Refresher re-fetches the dashboard after a mutation settles. Reload must
// reflect server state no older than the call itself. Satisfied by
// *dashboard.Synchronizer.
type Refresher interface {
	Reload(ctx context.Context) error
}

// Coordinator drives upload and delete flows against an injected gateway,
// decoupled from any specific widget.
type Coordinator struct {
	api         gateway.API
	dashboard   Refresher
	events      *events.Client
	settleDelay time.Duration

	mu      sync.Mutex
	busy    bool // an upload interaction is running, entry to settle
	attempt UploadAttempt
}

// New builds a Coordinator. A negative settleDelay falls back to
// DefaultSettleDelay; zero is allowed so tests don't sleep. The events
// client may be nil.
func New(api gateway.API, dash Refresher, ev *events.Client, settleDelay time.Duration) *Coordinator {
	if settleDelay < 0 {
		settleDelay = DefaultSettleDelay
	}
	return &Coordinator{
		api:         api,
		dashboard:   dash,
		events:      ev,
		settleDelay: settleDelay,
		attempt:     UploadAttempt{State: UploadIdle},
	}
}

// Upload runs one full upload interaction: validate, submit, settle,
// re-fetch. Steps are strictly sequential; the call returns only once the
// interaction has settled. A second call while one is submitting is
// rejected with ErrUploadInFlight.
func (c *Coordinator) Upload(ctx context.Context, data []byte, filename, mimeType string) (UploadAttempt, error) {
	c.mu.Lock()
	if c.busy {
		current := c.attempt
		c.mu.Unlock()
		return current, ErrUploadInFlight
	}
	c.busy = true
	// Starting a new interaction resets state unconditionally.
	c.attempt = UploadAttempt{
		ID:       uuid.NewString(),
		State:    UploadValidating,
		Filename: filename,
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	if reason, ok := c.validate(data, mimeType); !ok {
		attempt := c.fail(reason)
		slog.InfoContext(ctx, "Upload rejected before network call",
			"filename", filename,
			"mime_type", mimeType,
			"size", len(data),
			"reason", reason)
		return attempt, &ValidationError{Reason: reason}
	}

	c.setState(UploadSubmitting)
	ack, err := c.api.UploadReceipt(ctx, data, filename, mimeType)
	if err != nil {
		// Gateway message surfaces verbatim; the interaction stays open
		// for retry.
		attempt := c.fail(err.Error())
		slog.WarnContext(ctx, "Upload failed", "filename", filename, "error", err)
		return attempt, err
	}

	c.mu.Lock()
	c.attempt.State = UploadSucceeded
	c.attempt.Message = msgUploadOK
	c.attempt.Ack = ack
	attempt := c.attempt
	c.mu.Unlock()

	slog.InfoContext(ctx, "Upload accepted",
		"filename", filename,
		"size", ack.Size,
		"upload_id", attempt.ID)

	// From here on the interaction runs detached: abandoning it (the caller
	// cancels ctx) must not cancel the settle or the mandatory re-fetch.
	// The abandoned result is simply ignored by whoever walked away.
	bg := context.WithoutCancel(ctx)

	if err := c.events.PublishReceiptUploaded(bg, filename, ack.Size); err != nil {
		slog.WarnContext(bg, "Failed to publish receipt.uploaded event", "error", err)
	}

	// Fixed display delay so the user sees the success state, then the
	// mandatory re-fetch restores consistency.
	c.settle()
	if err := c.dashboard.Reload(bg); err != nil {
		slog.WarnContext(bg, "Post-upload dashboard refresh failed", "error", err)
	}

	return attempt, nil
}

// Delete removes a purchase after explicit confirmation. The dashboard is
// re-fetched regardless of outcome: the authoritative state must reflect
// server truth either way. The returned error is the delete outcome.
func (c *Coordinator) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	delErr := c.api.DeletePurchase(ctx, id)

	// The re-fetch runs detached: an abandoned interaction must not cancel
	// it, and a previously healthy dashboard must not fail over a walked-
	// away caller.
	bg := context.WithoutCancel(ctx)

	if delErr != nil {
		slog.WarnContext(ctx, "Delete failed", "id", id, "error", delErr)
	} else {
		slog.InfoContext(ctx, "Purchase deleted", "id", id)
		if err := c.events.PublishPurchaseDeleted(bg, id); err != nil {
			slog.WarnContext(bg, "Failed to publish purchase.deleted event", "error", err)
		}
	}

	if err := c.dashboard.Reload(bg); err != nil {
		slog.WarnContext(bg, "Post-delete dashboard refresh failed", "error", err)
	}

	return delErr
}

// Attempt returns a copy of the current upload interaction state.
func (c *Coordinator) Attempt() UploadAttempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// Reset clears a settled interaction back to idle. A running interaction
// cannot be reset out from under itself.
func (c *Coordinator) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrUploadInFlight
	}
	c.attempt = UploadAttempt{State: UploadIdle}
	return nil
}

// DeleteSuccessMessage and DeleteFailureMessage are the user-facing
// notices for the delete flow.
func DeleteSuccessMessage() string { return msgDeleteOK }
func DeleteFailureMessage() string { return msgDeleteFailed }

// FileTooLargeMessage is the user-facing notice for an oversized upload.
func FileTooLargeMessage() string { return msgTooLarge }

func (c *Coordinator) validate(data []byte, mimeType string) (string, bool) {
	if len(data) == 0 {
		return msgNoFile, false
	}
	if !allowedMIMETypes[mimeType] {
		return msgInvalidType, false
	}
	if len(data) > maxUploadSize {
		return msgTooLarge, false
	}
	return "", true
}

func (c *Coordinator) setState(state UploadState) {
	c.mu.Lock()
	c.attempt.State = state
	c.mu.Unlock()
}

func (c *Coordinator) fail(reason string) UploadAttempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempt.State = UploadFailed
	c.attempt.Err = reason
	return c.attempt
}

func (c *Coordinator) settle() {
	if c.settleDelay > 0 {
		time.Sleep(c.settleDelay)
	}
}
