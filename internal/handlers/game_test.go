package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/session"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestGameHandler(t *testing.T) (*GameHandler, *session.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	logger := testLogger()
	store := session.NewStore(mr.Addr(), t.TempDir(), logger)
	t.Cleanup(func() { _ = store.Close() })

	cat := catalogs.Load()
	orch := &turn.Orchestrator{
		Catalogs:   cat,
		Normalizer: action.Normalizer{},
	}
	return NewGameHandler(store, orch, cat, logger), store
}

func TestGameHandler_Init_CreatesWorldAndEchoesSessionHeader(t *testing.T) {
	h, _ := newTestGameHandler(t)

	body, _ := json.Marshal(initRequest{Prompt: "A windy coast of pine islands."})
	req := httptest.NewRequest(http.MethodPost, "/init", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Init(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(sessionHeader))

	var resp initResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "world_created", resp.Status)
	require.NotNil(t, resp.State)
	assert.Equal(t, 1, resp.State.World.CurrentLayer)
}

func TestGameHandler_Narrate_MoveAdvancesTurnCounter(t *testing.T) {
	h, _ := newTestGameHandler(t)

	initBody, _ := json.Marshal(initRequest{Prompt: "A dry canyon."})
	initReq := httptest.NewRequest(http.MethodPost, "/init", bytes.NewReader(initBody))
	initRec := httptest.NewRecorder()
	h.Init(initRec, initReq)
	sessionID := initRec.Header().Get(sessionHeader)

	narrateBody, _ := json.Marshal(narrateRequest{Action: "go north"})
	narrateReq := httptest.NewRequest(http.MethodPost, "/narrate", bytes.NewReader(narrateBody))
	narrateReq.Header.Set(sessionHeader, sessionID)
	narrateRec := httptest.NewRecorder()
	h.Narrate(narrateRec, narrateReq)

	assert.Equal(t, http.StatusOK, narrateRec.Code)

	var resp narrateResponse
	require.NoError(t, json.Unmarshal(narrateRec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
	require.NotNil(t, resp.State)
	assert.Equal(t, 1, resp.State.TurnCounter)
	require.NotNil(t, resp.Scene)
}

func TestGameHandler_Narrate_SaveCommandShortCircuits(t *testing.T) {
	h, _ := newTestGameHandler(t)

	initReq := httptest.NewRequest(http.MethodPost, "/init", bytes.NewReader([]byte(`{}`)))
	initRec := httptest.NewRecorder()
	h.Init(initRec, initReq)
	sessionID := initRec.Header().Get(sessionHeader)

	narrateBody, _ := json.Marshal(narrateRequest{Action: "save as myrun"})
	narrateReq := httptest.NewRequest(http.MethodPost, "/narrate", bytes.NewReader(narrateBody))
	narrateReq.Header.Set(sessionHeader, sessionID)
	narrateRec := httptest.NewRecorder()
	h.Narrate(narrateRec, narrateReq)

	var resp narrateResponse
	require.NoError(t, json.Unmarshal(narrateRec.Body.Bytes(), &resp))
	assert.True(t, resp.SystemCommand)
	assert.Contains(t, resp.Narrative, "myrun")
}

func TestGameHandler_Narrate_MissingSessionFails(t *testing.T) {
	h, _ := newTestGameHandler(t)

	narrateBody, _ := json.Marshal(narrateRequest{Action: "look"})
	req := httptest.NewRequest(http.MethodPost, "/narrate", bytes.NewReader(narrateBody))
	req.Header.Set(sessionHeader, "nonexistent-session")
	rec := httptest.NewRecorder()
	h.Narrate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
