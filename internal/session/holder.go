package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// The mock credential pair. This app is single-user by design; the check
// exists to gate the dashboard surface, not to provide security.
const (
	demoEmail    = "vitor@gmail.com"
	demoPassword = "admin123"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Holder is the credential gate over the persisted session flag. The
// dashboard synchronizer is only allowed to run while a session is active.
type Holder struct {
	store *Store
}

func NewHolder(store *Store) *Holder {
	return &Holder{store: store}
}

// Login validates the credential pair strictly and persists a fresh opaque
// token on success.
func (h *Holder) Login(ctx context.Context, email, password string) (string, error) {
	if email != demoEmail || password != demoPassword {
		return "", ErrInvalidCredentials
	}

	token := fmt.Sprintf("mock_token_%d", time.Now().UnixMilli())
	if err := h.store.Save(ctx, TokenKey, token); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	slog.InfoContext(ctx, "Session opened", "email", email)
	return token, nil
}

// Logout removes the persisted token.
func (h *Holder) Logout(ctx context.Context) error {
	if err := h.store.Clear(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	slog.InfoContext(ctx, "Session closed")
	return nil
}

// Active reports whether a persisted session exists. Read at startup to
// restore a logged-in view.
func (h *Holder) Active(ctx context.Context) bool {
	_, ok, err := h.store.Load(ctx, TokenKey)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read session token", "error", err)
		return false
	}
	return ok
}

// Token returns the current session token, if any.
func (h *Holder) Token(ctx context.Context) (string, bool) {
	token, ok, err := h.store.Load(ctx, TokenKey)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read session token", "error", err)
		return "", false
	}
	return token, ok
}
