// Package dashboard owns the authoritative in-memory snapshot of dashboard
// state and the fetch cycle that keeps it aligned with the backend.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"smartspend/internal/core"
	"smartspend/internal/gateway"
	"smartspend/internal/normalize"
)

// State describes where the synchronizer is in its fetch cycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Status is a point-in-time view of the synchronizer for display. The
// snapshot inside it must be treated as read-only.
type Status struct {
	State    State
	Snapshot core.Snapshot
	Err      string
}

// Synchronizer orchestrates dashboard fetches against an injected gateway.
// It guarantees at most one in-flight fetch: refresh requests issued while
// one is running are coalesced onto it instead of dispatched in parallel.
type Synchronizer struct {
	api   gateway.API
	group singleflight.Group

	mu       sync.Mutex
	state    State
	snapshot core.Snapshot
	lastErr  string
}

func New(api gateway.API) *Synchronizer {
	return &Synchronizer{
		api:   api,
		state: StateIdle,
	}
}

// Refresh fetches the dashboard, normalizes the payload and replaces the
// snapshot atomically. On failure the prior snapshot is discarded: a failed
// fetch cannot be told apart from corrupt state, so the view falls back to
// an error screen rather than stale data.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	joined, err := s.refresh(ctx)
	if joined {
		slog.DebugContext(ctx, "Refresh coalesced onto in-flight fetch")
	}
	return err
}

// Reload is the post-mutation variant of Refresh: the result must reflect
// server state no older than the call itself. When the call coalesced onto
// a fetch that started earlier, one more fetch is issued after it settles,
// so a mutation can never be answered with pre-mutation data.
func (s *Synchronizer) Reload(ctx context.Context) error {
	joined, err := s.refresh(ctx)
	if joined {
		slog.DebugContext(ctx, "Reload joined an older in-flight fetch, re-issuing")
		_, err = s.refresh(ctx)
	}
	return err
}

// refresh runs one coalesced fetch cycle. The joined result reports whether
// this call piggybacked on a fetch initiated by another caller.
func (s *Synchronizer) refresh(ctx context.Context) (joined bool, err error) {
	initiated := false
	_, err, _ = s.group.Do("dashboard", func() (any, error) {
		initiated = true

		s.mu.Lock()
		s.state = StateLoading
		s.lastErr = ""
		s.mu.Unlock()

		raw, err := s.api.FetchDashboard(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		if err != nil {
			s.state = StateFailed
			s.snapshot = core.Snapshot{}
			s.lastErr = err.Error()
			slog.WarnContext(ctx, "Dashboard fetch failed", "error", err)
			return nil, err
		}

		s.snapshot = normalize.Snapshot(raw)
		s.state = StateReady
		slog.InfoContext(ctx, "Dashboard snapshot replaced",
			"total_spend", s.snapshot.TotalSpend,
			"purchases", len(s.snapshot.Purchases),
			"categories", len(s.snapshot.Categories))
		return nil, nil
	})

	return !initiated, err
}

// Status returns the current state, snapshot and last error message.
func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, Snapshot: s.snapshot, Err: s.lastErr}
}

// Snapshot returns the current snapshot regardless of state. During Failed
// it is the zero snapshot.
func (s *Synchronizer) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}
