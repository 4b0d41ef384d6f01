package handlers

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/session"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
)

// SaveHandler serves the §6 `/api/save`, `/api/load`, `/api/newsave`, and
// `/api/saves` endpoints, the out-of-band counterparts to the `save`/`load`
// system commands detected inside `/narrate`.
type SaveHandler struct {
	store    *session.Store
	catalogs *catalogs.Catalogs
	logger   *slog.Logger
}

func NewSaveHandler(store *session.Store, cat *catalogs.Catalogs, logger *slog.Logger) *SaveHandler {
	return &SaveHandler{store: store, catalogs: cat, logger: logger}
}

type saveResponse struct {
	Success  bool   `json:"success"`
	SaveName string `json:"saveName,omitempty"`
	Error    string `json:"error,omitempty"`
}

type apiSaveRequest struct {
	SaveName  string      `json:"saveName"`
	GameState *turn.State `json:"gameState"`
}

// Save handles POST /api/save. Unlike the `/narrate` "save" command, the
// game state to persist is supplied in the body rather than read from the
// live session table — this is the path a client uses to save a state it
// is holding client-side.
func (h *SaveHandler) Save(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)

	var req apiSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResponse{Error: string(apperr.InvalidGameState)})
		return
	}

	finalName, cerr := h.store.Save(sessionID, req.SaveName, req.GameState)
	if cerr != nil {
		writeJSON(w, http.StatusBadRequest, saveResponse{Error: string(cerr.Code)})
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Success: true, SaveName: finalName})
}

type apiLoadRequest struct {
	SaveName string `json:"saveName"`
}

type loadResponse struct {
	Success bool        `json:"success"`
	State   *turn.State `json:"gameState,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Load handles POST /api/load: reads the named save and makes it the
// session's live state.
func (h *SaveHandler) Load(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)

	var req apiLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, loadResponse{Error: string(apperr.InvalidSaveName)})
		return
	}

	st, cerr := h.store.Load(sessionID, req.SaveName)
	if cerr != nil {
		writeJSON(w, http.StatusNotFound, loadResponse{Error: string(cerr.Code)})
		return
	}
	if err := h.store.Put(r.Context(), st); err != nil {
		writeJSON(w, http.StatusInternalServerError, loadResponse{Error: string(err.Code)})
		return
	}
	writeJSON(w, http.StatusOK, loadResponse{Success: true, State: st})
}

type newSaveResponse struct {
	Success   bool        `json:"success"`
	SessionID string      `json:"sessionId"`
	State     *turn.State `json:"state,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// NewSave handles GET /api/newsave: starts a fresh world for the resolved
// session, discarding any existing live state, distinct from `/reset` only
// in that it is the endpoint a "start a new save slot" UI action calls.
func (h *SaveHandler) NewSave(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	if err := h.store.Delete(r.Context(), sessionID); err != nil {
		h.logger.Warn("failed to clear prior session state for new save", "session_id", sessionID, "error", err)
	}

	now := time.Now().UTC()
	st := turn.NewState(sessionID, "player", rand.Int31(), "", h.catalogs, now)
	if err := h.store.Put(r.Context(), st); err != nil {
		writeJSON(w, http.StatusInternalServerError, newSaveResponse{Error: string(err.Code)})
		return
	}
	writeJSON(w, http.StatusOK, newSaveResponse{Success: true, SessionID: sessionID, State: st})
}

type listSavesResponse struct {
	Success bool     `json:"success"`
	Saves   []string `json:"saves"`
	Error   string   `json:"error,omitempty"`
}

// ListSaves handles GET /api/saves.
func (h *SaveHandler) ListSaves(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	names, cerr := h.store.ListSaves(sessionID)
	if cerr != nil {
		writeJSON(w, http.StatusInternalServerError, listSavesResponse{Error: string(cerr.Code)})
		return
	}
	writeJSON(w, http.StatusOK, listSavesResponse{Success: true, Saves: names})
}
