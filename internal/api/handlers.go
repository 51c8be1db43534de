package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vrsandeep/cinevault-go/internal/bridge"
	"github.com/vrsandeep/cinevault-go/internal/store"
)

const maxInvokeBody = 1 << 20

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{
		"version":        s.app.Version,
		"bridge_version": bridge.ProtocolVersion,
	})
}

func (s *Server) handleListCommands(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.dispatcher.Commands())
}

// handleInvoke runs one bridge command with the request body as its args.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	cmd := chi.URLParam(r, "command")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxInvokeBody))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Could not read request body")
		return
	}

	result, err := s.dispatcher.Dispatch(r.Context(), cmd, json.RawMessage(body))
	switch {
	case errors.Is(err, bridge.ErrUnknownCommand):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bridge.ErrInvalidArgs), errors.Is(err, store.ErrInvalid):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case err != nil:
		RespondWithError(w, http.StatusInternalServerError, err.Error())
	default:
		RespondWithJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleGetAdminJobsStatus(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.JobManager().GetStatus())
}

func (s *Server) handleRunAdminJob(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.app.JobManager().RunJob(payload.JobID, s.app); err != nil {
		RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]string{"message": "Job started"})
}
