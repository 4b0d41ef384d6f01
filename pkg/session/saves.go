package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
)

// maxSaveFiles bounds how many save slots one session may hold before
// SAVE_LIMIT_EXCEEDED kicks in.
const maxSaveFiles = 5

// maxSaveNameLen is the sanitized name's cap, after stripping disallowed
// characters and trimming.
const maxSaveNameLen = 30

// snapshot is the whole-file shape written to saves/<session_id>/<name>.json.
type snapshot struct {
	GameState *turn.State `json:"gameState"`
	Timestamp time.Time   `json:"timestamp"`
	SessionID string      `json:"sessionId"`
	SaveName  string      `json:"saveName"`
}

var disallowedSaveChar = func(r rune) bool {
	return !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ')
}

// sanitizeSaveName strips any character outside [A-Za-z0-9 ], trims, and
// caps at 30 characters, per §6.
func sanitizeSaveName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if disallowedSaveChar(r) {
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > maxSaveNameLen {
		cleaned = cleaned[:maxSaveNameLen]
	}
	return cleaned
}

func (s *Store) saveDir(sessionID string) string {
	return filepath.Join(s.dataDir, "saves", sessionID)
}

// disambiguate returns the first of name, "name (1)", "name (2)", … that
// doesn't already exist in dir, per §5's same-name suffixing rule.
func disambiguate(dir, name string) (string, error) {
	candidate := name
	for n := 0; ; n++ {
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)", name, n)
		}
		path := filepath.Join(dir, candidate+".json")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
	}
}

// Save writes a whole-file JSON snapshot of st under saves/<session_id>/.
// A name collision is disambiguated with a "(n)" suffix rather than
// overwriting; a session already holding maxSaveFiles files fails
// SAVE_LIMIT_EXCEEDED before a collision is even considered, unless the
// disambiguated name would replace an existing slot (never happens here,
// since disambiguation only ever grows the set). Returns the final
// sanitized (and possibly suffixed) name actually written.
func (s *Store) Save(sessionID, rawName string, st *turn.State) (string, *apperr.CodedError) {
	if sessionID == "" {
		return "", apperr.New(apperr.MissingSessionID, "session id required")
	}
	name := sanitizeSaveName(rawName)
	if name == "" {
		return "", apperr.New(apperr.InvalidSaveName, "save name is empty after sanitization")
	}
	if st == nil {
		return "", apperr.New(apperr.InvalidGameState, "nil game state")
	}

	dir := s.saveDir(sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.New(apperr.SaveFailed, "failed to create save directory: "+err.Error())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", apperr.New(apperr.SaveFailed, "failed to list save directory: "+err.Error())
	}
	if countJSON(entries) >= maxSaveFiles {
		return "", apperr.New(apperr.SaveLimitExceeded, fmt.Sprintf("session already has %d save files", maxSaveFiles))
	}

	finalName, err := disambiguate(dir, name)
	if err != nil {
		return "", apperr.New(apperr.SaveFailed, "failed to resolve save name: "+err.Error())
	}

	snap := snapshot{
		GameState: st,
		Timestamp: st.UpdatedAtUTC,
		SessionID: sessionID,
		SaveName:  finalName,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", apperr.New(apperr.SaveFailed, "failed to marshal snapshot: "+err.Error())
	}

	path := filepath.Join(dir, finalName+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperr.New(apperr.SaveFailed, "failed to write save file: "+err.Error())
	}
	return finalName, nil
}

// Load reads back a named save file for a session.
func (s *Store) Load(sessionID, rawName string) (*turn.State, *apperr.CodedError) {
	if sessionID == "" {
		return nil, apperr.New(apperr.MissingSessionID, "session id required")
	}
	name := sanitizeSaveName(rawName)
	if name == "" {
		return nil, apperr.New(apperr.InvalidSaveName, "save name is empty after sanitization")
	}

	path := filepath.Join(s.saveDir(sessionID), name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.New(apperr.SaveNotFound, "no save named: "+name)
		}
		return nil, apperr.New(apperr.LoadFailed, "failed to read save file: "+err.Error())
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperr.New(apperr.InvalidSaveFile, "corrupt save file: "+err.Error())
	}
	if snap.GameState == nil {
		return nil, apperr.New(apperr.InvalidSaveFile, "save file has no game state")
	}
	return snap.GameState, nil
}

// ListSaves returns every save name currently on disk for sessionID, newest
// first by file modification time.
func (s *Store) ListSaves(sessionID string) ([]string, *apperr.CodedError) {
	dir := s.saveDir(sessionID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, apperr.New(apperr.LoadFailed, "failed to list saves: "+err.Error())
	}

	type named struct {
		name    string
		modTime time.Time
	}
	var saves []named
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		saves = append(saves, named{name: strings.TrimSuffix(e.Name(), ".json"), modTime: info.ModTime()})
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].modTime.After(saves[j].modTime) })

	names := make([]string, len(saves))
	for i, sv := range saves {
		names[i] = sv.name
	}
	return names, nil
}

func countJSON(entries []os.DirEntry) int {
	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			n++
		}
	}
	return n
}
