package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"smartspend/internal/dashboard"
	"smartspend/internal/drilldown"
	"smartspend/internal/log"
	"smartspend/internal/mutation"
	"smartspend/internal/session"
)

const msgInvalidLogin = "Email ou senha incorretos"

// maxUploadBody caps the request body well above the 10 MiB file cap so
// oversized files still reach the coordinator and fail with the user-facing
// size message. Bodies beyond the cap are cut off at the transport and get
// the same message from the MaxBytesError branch.
const maxUploadBody = 32 << 20

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	token, err := s.holder.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, msgInvalidLogin)
			return
		}
		s.logger.ErrorContext(r.Context(), "Login failed", log.FieldOperation, log.OpLogin, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "erro interno")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.holder.Logout(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Logout failed", log.FieldOperation, log.OpLogout, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "erro interno")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDashboard serves the current synchronizer view. A first visit finds
// the synchronizer idle and triggers the initial load; afterwards data only
// changes through explicit refreshes.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.dash.Status().State == dashboard.StateIdle {
		_ = s.dash.Refresh(r.Context())
	}
	writeStatus(w, s.dash.Status())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Refresh(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "Dashboard refresh failed", log.FieldOperation, log.OpFetch, log.FieldError, err)
	}
	writeStatus(w, s.dash.Status())
}

func writeStatus(w http.ResponseWriter, status dashboard.Status) {
	writeJSON(w, http.StatusOK, dashboardView{
		State:    string(status.State),
		Error:    status.Err,
		Snapshot: renderSnapshot(status.Snapshot),
	})
}

type uploadResponse struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
	Filename string `json:"filename,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Uploaded string `json:"timestamp,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusBadRequest, mutation.FileTooLargeMessage())
			return
		}
		writeError(w, http.StatusBadRequest, "arquivo ausente no campo 'file'")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "falha ao ler o arquivo")
		return
	}

	attempt, err := s.mut.Upload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeJSON(w, statusForError(err), uploadResponse{
			ID:    attempt.ID,
			State: string(attempt.State),
			Error: attempt.Err,
		})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		ID:       attempt.ID,
		State:    string(attempt.State),
		Message:  attempt.Message,
		Filename: attempt.Ack.Filename,
		Size:     attempt.Ack.Size,
		Uploaded: attempt.Ack.Uploaded,
	})
}

func (s *Server) handleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "identificador inválido")
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := s.mut.Delete(r.Context(), id, confirmed); err != nil {
		if errors.Is(err, mutation.ErrNotConfirmed) {
			writeError(w, http.StatusBadRequest, "exclusão requer confirmação explícita")
			return
		}
		writeJSON(w, statusForError(err), map[string]string{
			"message": mutation.DeleteFailureMessage(),
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": mutation.DeleteSuccessMessage()})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	sel := drilldown.Resolve(name, s.dash.Snapshot())
	writeJSON(w, http.StatusOK, renderSelection(sel))
}

// handleHealth reports process liveness plus the remote backend diagnostic.
// The backend probe is informational: a dead backend never fails the local
// probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	if health, err := s.api.Health(ctx); err != nil {
		resp["backend"] = map[string]string{"status": "unreachable", "error": err.Error()}
	} else {
		resp["backend"] = health
	}

	writeJSON(w, http.StatusOK, resp)
}
