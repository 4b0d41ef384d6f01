package handlers

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/session"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
	"github.com/mdunham726-coder/wyrdreach/pkg/worldgen"
)

const sessionHeader = "X-Session-Id"

// Scene is the compact payload handed to the external narrator: enough of
// the player's immediate surroundings to render prose without exposing the
// whole session state (§4.7's data-flow step "scene payload assembled").
type Scene struct {
	MacroBiome   string   `json:"macroBiome"`
	CurrentLayer int      `json:"currentLayer"`
	Position     [4]int   `json:"position"`
	CellType     string   `json:"cellType,omitempty"`
	CellTags     []string `json:"cellTags,omitempty"`
	Inventory    []string `json:"inventory"`
}

// GameHandler wires the turn orchestrator and session store into the
// /init, /reset, /narrate transport surface. It holds no per-request
// state; every session's live state round-trips through Store.
type GameHandler struct {
	store        *session.Store
	orchestrator *turn.Orchestrator
	catalogs     *catalogs.Catalogs
	logger       *slog.Logger
}

func NewGameHandler(store *session.Store, orchestrator *turn.Orchestrator, cat *catalogs.Catalogs, logger *slog.Logger) *GameHandler {
	return &GameHandler{store: store, orchestrator: orchestrator, catalogs: cat, logger: logger}
}

func resolveSessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		id = generateSessionID()
	}
	w.Header().Set(sessionHeader, id)
	return id
}

// generateSessionID mints an opaque session id when the caller supplies
// none, the same google/uuid-backed approach the teacher's gamestate
// package uses for its ids.
func generateSessionID() string {
	return "sess_" + uuid.New().String()
}

type initRequest struct {
	Prompt string `json:"prompt"`
}

type initResponse struct {
	SessionID string      `json:"sessionId"`
	Status    string      `json:"status"`
	State     *turn.State `json:"state"`
	Prompt    string      `json:"prompt"`
}

// Init handles POST /init: creates a fresh world for the resolved session
// id and stores it live.
func (h *GameHandler) Init(w http.ResponseWriter, r *http.Request) {
	h.newWorld(w, r)
}

// Reset handles POST /reset: identical to Init, but always discards any
// existing live state for the session first.
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)
	if err := h.store.Delete(r.Context(), sessionID); err != nil {
		h.logger.Warn("failed to clear prior session state on reset", "session_id", sessionID, "error", err)
	}
	h.newWorld(w, r)
}

func (h *GameHandler) newWorld(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)

	var req initRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	now := time.Now().UTC()
	seed := rand.Int31()
	st := turn.NewState(sessionID, "player", seed, req.Prompt, h.catalogs, now)

	if err := h.store.Put(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, initResponse{
		SessionID: sessionID,
		Status:    "world_created",
		State:     st,
		Prompt:    req.Prompt,
	})
}

type narrateRequest struct {
	Action string `json:"action"`
}

type narrateResponse struct {
	SessionID     string      `json:"sessionId"`
	Narrative     string      `json:"narrative,omitempty"`
	State         *turn.State `json:"state,omitempty"`
	Scene         *Scene      `json:"scene,omitempty"`
	SystemCommand bool        `json:"systemCommand,omitempty"`
	Restart       bool        `json:"restart,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// Narrate handles POST /narrate: detects and short-circuits system
// commands, otherwise runs one turn through the orchestrator under the
// session's per-id lock (§5's "one writer per session" rule).
func (h *GameHandler) Narrate(w http.ResponseWriter, r *http.Request) {
	sessionID := resolveSessionID(w, r)

	var req narrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, narrateResponse{SessionID: sessionID, Error: string(apperr.NoIntent)})
		return
	}

	lock := h.store.Lock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if cmd := ParseSystemCommand(req.Action); cmd.IsSystemCommand() {
		h.handleSystemCommand(w, r, sessionID, cmd)
		return
	}

	live, cerr := h.store.Get(r.Context(), sessionID)
	if cerr != nil {
		writeJSON(w, http.StatusInternalServerError, narrateResponse{SessionID: sessionID, Error: string(cerr.Code)})
		return
	}
	if live == nil {
		writeJSON(w, http.StatusNotFound, narrateResponse{SessionID: sessionID, Error: string(apperr.MissingSessionID)})
		return
	}

	result, cerr := h.orchestrator.Process(r.Context(), live, req.Action, time.Now().UTC())
	if cerr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, narrateResponse{SessionID: sessionID, State: result.State, Error: string(cerr.Code)})
		return
	}

	if err := h.store.Put(r.Context(), result.State); err != nil {
		writeJSON(w, http.StatusInternalServerError, narrateResponse{SessionID: sessionID, Error: string(err.Code)})
		return
	}

	writeJSON(w, http.StatusOK, narrateResponse{
		SessionID: sessionID,
		Narrative: result.Narrative,
		State:     result.State,
		Scene:     buildScene(result.State),
	})
}

func buildScene(s *turn.State) *Scene {
	p := s.World.Position
	scene := &Scene{
		CurrentLayer: s.World.CurrentLayer,
		Position:     [4]int{p.MX, p.MY, p.LX, p.LY},
	}
	if mc, ok := s.World.Macro[worldgen.MacroKey(p.MX, p.MY)]; ok {
		scene.MacroBiome = mc.Biome
	}
	if cell, ok := s.World.Cells[worldgen.CellKey(p.MX, p.MY, p.LX, p.LY)]; ok {
		scene.CellType = cell.Type
		scene.CellTags = cell.Tags
	}
	for _, it := range s.Player.Inventory.Items {
		scene.Inventory = append(scene.Inventory, it.Name)
	}
	return scene
}

// handleSystemCommand resolves save/load/restart/saves commands without
// invoking the narrator or the turn orchestrator.
func (h *GameHandler) handleSystemCommand(w http.ResponseWriter, r *http.Request, sessionID string, cmd SystemCommand) {
	switch cmd.Kind {
	case cmdSave:
		live, cerr := h.store.Get(r.Context(), sessionID)
		if cerr != nil || live == nil {
			writeJSON(w, http.StatusNotFound, narrateResponse{SessionID: sessionID, SystemCommand: true, Error: string(apperr.MissingSessionID)})
			return
		}
		finalName, cerr := h.store.Save(sessionID, cmd.Name, live)
		if cerr != nil {
			writeJSON(w, http.StatusBadRequest, narrateResponse{SessionID: sessionID, SystemCommand: true, Error: string(cerr.Code)})
			return
		}
		writeJSON(w, http.StatusOK, narrateResponse{
			SessionID:     sessionID,
			SystemCommand: true,
			Narrative:     "Saved as \"" + finalName + "\".",
		})

	case cmdLoad:
		st, cerr := h.store.Load(sessionID, cmd.Name)
		if cerr != nil {
			writeJSON(w, http.StatusNotFound, narrateResponse{SessionID: sessionID, SystemCommand: true, Error: string(cerr.Code)})
			return
		}
		if err := h.store.Put(r.Context(), st); err != nil {
			writeJSON(w, http.StatusInternalServerError, narrateResponse{SessionID: sessionID, SystemCommand: true, Error: string(err.Code)})
			return
		}
		writeJSON(w, http.StatusOK, narrateResponse{
			SessionID:     sessionID,
			SystemCommand: true,
			State:         st,
			Narrative:     "Loaded \"" + cmd.Name + "\".",
		})

	case cmdRestart:
		if err := h.store.Delete(r.Context(), sessionID); err != nil {
			h.logger.Warn("failed to clear session state on restart command", "session_id", sessionID, "error", err)
		}
		now := time.Now().UTC()
		st := turn.NewState(sessionID, "player", rand.Int31(), "", h.catalogs, now)
		if err := h.store.Put(r.Context(), st); err != nil {
			writeJSON(w, http.StatusInternalServerError, narrateResponse{SessionID: sessionID, SystemCommand: true, Error: string(err.Code)})
			return
		}
		writeJSON(w, http.StatusOK, narrateResponse{
			SessionID:     sessionID,
			SystemCommand: true,
			Restart:       true,
			State:         st,
			Narrative:     "Starting a new game.",
		})

	case cmdSaves:
		names, cerr := h.store.ListSaves(sessionID)
		if cerr != nil {
			writeJSON(w, http.StatusInternalServerError, narrateResponse{SessionID: sessionID, SystemCommand: true, Error: string(cerr.Code)})
			return
		}
		msg := "No saved games."
		if len(names) > 0 {
			msg = "Your saves: " + strings.Join(names, ", ")
		}
		writeJSON(w, http.StatusOK, narrateResponse{SessionID: sessionID, SystemCommand: true, Narrative: msg})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *apperr.CodedError) {
	writeJSON(w, status, map[string]string{"error": string(err.Code), "message": err.Message})
}
