package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// sceneView mirrors handlers.Scene (internal/handlers/game.go): the subset of
// world state the narrator is handed each turn. Duplicated here rather than
// imported from the handler package.
type sceneView struct {
	MacroBiome   string   `json:"macroBiome"`
	CurrentLayer int      `json:"currentLayer"`
	Position     [4]int   `json:"position"`
	CellType     string   `json:"cellType,omitempty"`
	CellTags     []string `json:"cellTags,omitempty"`
	Inventory    []string `json:"inventory"`
}

type narrateResponse struct {
	SessionID     string     `json:"sessionId"`
	Narrative     string     `json:"narrative"`
	TurnCount     int        `json:"turnCount"`
	Scene         *sceneView `json:"scene,omitempty"`
	SystemCommand bool       `json:"systemCommand,omitempty"`
	Restart       bool       `json:"restart,omitempty"`
	Error         string     `json:"error,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/status")
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// initWorld calls POST /init, returning the assigned session id alongside
// the decoded reply. The /init reply carries no scene, so its Scene is nil.
// An empty prompt is valid — the server rolls a random seed.
func initWorld(client *http.Client, baseURL, prompt string) (string, *narrateResponse, error) {
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal init request: %w", err)
	}

	resp, err := client.Post(baseURL+"/init", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed struct {
		SessionID string     `json:"sessionId"`
		Status    string     `json:"status"`
		Prompt    string     `json:"prompt"`
		Scene     *sceneView `json:"scene,omitempty"`
		Error     string     `json:"error,omitempty"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
	}
	if parsed.Error != "" {
		return "", nil, fmt.Errorf("init failed: %s", parsed.Error)
	}

	sessionID := resp.Header.Get("X-Session-Id")
	if sessionID == "" {
		sessionID = parsed.SessionID
	}
	return sessionID, &narrateResponse{
		SessionID: sessionID,
		Narrative: parsed.Prompt,
		Scene:     parsed.Scene,
	}, nil
}

// sendNarrate calls POST /narrate with the player's free-text action and the
// resolved session id header.
func sendNarrate(client *http.Client, baseURL, sessionID, action string) (*narrateResponse, error) {
	body, err := json.Marshal(map[string]string{"action": action})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal narrate request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/narrate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", sessionID)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed narrateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("turn failed: %s", parsed.Error)
	}
	return &parsed, nil
}
