package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"holomeet/internal/cache"
	"holomeet/internal/service"
)

// RoomHandler handles read-only room endpoints
type RoomHandler struct {
	presence    cache.PresenceCache
	transcripts *service.TranscriptService
	summarizer  *service.SummarizerService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(presence cache.PresenceCache, transcripts *service.TranscriptService, summarizer *service.SummarizerService) *RoomHandler {
	return &RoomHandler{
		presence:    presence,
		transcripts: transcripts,
		summarizer:  summarizer,
	}
}

// Presence handles GET /v1/rooms/{key}/presence. The snapshot comes
// from the Redis mirror so a client can preview a room before joining;
// it is best-effort and TTL-bounded, not the authoritative roster.
func (h *RoomHandler) Presence(w http.ResponseWriter, r *http.Request) {
	roomKey := mux.Vars(r)["key"]

	participants, err := h.presence.GetRoom(r.Context(), roomKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read presence")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"roomKey":      roomKey,
		"participants": participants,
	})
}

// Summary handles POST /v1/rooms/{key}/summary: summarize the live
// transcript of a room into bullet points.
func (h *RoomHandler) Summary(w http.ResponseWriter, r *http.Request) {
	roomKey := mux.Vars(r)["key"]

	summary, err := h.summarizer.Summarize(r.Context(), h.transcripts.FullText(roomKey))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to summarize")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"roomKey": roomKey,
		"summary": summary,
	})
}
