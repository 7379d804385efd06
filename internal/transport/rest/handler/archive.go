package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"holomeet/internal/service"
)

// ArchiveHandler handles persisted meeting record endpoints
type ArchiveHandler struct {
	archiveSvc *service.ArchiveService
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(archiveSvc *service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveSvc: archiveSvc}
}

// List handles GET /v1/rooms/{key}/archives
func (h *ArchiveHandler) List(w http.ResponseWriter, r *http.Request) {
	roomKey := mux.Vars(r)["key"]

	handles, err := h.archiveSvc.List(r.Context(), roomKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list archives")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"roomKey":  roomKey,
		"archives": handles,
	})
}

// Get handles GET /v1/rooms/{key}/archives/{handle}. A handle that
// belongs to another room is indistinguishable from a missing one.
func (h *ArchiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	record, err := h.archiveSvc.Get(r.Context(), vars["key"], vars["handle"])
	if errors.Is(err, service.ErrArchiveNotFound) {
		writeError(w, http.StatusNotFound, "archive not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch archive")
		return
	}

	writeJSON(w, http.StatusOK, record)
}
