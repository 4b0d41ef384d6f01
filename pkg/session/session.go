// Package session owns the live session table and the save-file policy:
// one Redis-backed live State per session id, one writer per session id,
// and bounded filesystem snapshots under saves/<session_id>/.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/turn"
)

// liveTTL is how long a session's live state survives in Redis without a
// turn touching it — mirrors the teacher's one-hour gamestate TTL.
const liveTTL = time.Hour

// Store is the session table: Redis-backed live state plus a per-session
// mutex so only one turn is ever in flight for a given session id, per
// §5's "one writer per session" rule.
type Store struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewStore builds a session table backed by Redis at redisAddr, with save
// snapshots written under dataDir/saves.
func NewStore(redisAddr, dataDir string, logger *slog.Logger) *Store {
	if dataDir == "" {
		dataDir = "./data"
	}
	return &Store{
		client:  redis.NewClient(&redis.Options{Addr: redisAddr}),
		logger:  logger,
		dataDir: dataDir,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("failed to close redis connection", "error", err)
		return err
	}
	return nil
}

// Lock returns the mutex guarding sessionID's turns, creating it on first
// use. Callers hold it for the duration of one turn.
func (s *Store) Lock(sessionID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[sessionID] = m
	}
	return m
}

func liveKey(sessionID string) string {
	return "session:" + sessionID
}

// Put writes the session's live state to Redis, refreshing its TTL.
func (s *Store) Put(ctx context.Context, st *turn.State) *apperr.CodedError {
	if st.SessionID == "" {
		return apperr.New(apperr.MissingSessionID, "state has no session id")
	}
	data, err := json.Marshal(st)
	if err != nil {
		return apperr.New(apperr.InvalidGameState, "failed to marshal state: "+err.Error())
	}
	if err := s.client.Set(ctx, liveKey(st.SessionID), data, liveTTL).Err(); err != nil {
		s.logger.Error("failed to save session state", "session_id", st.SessionID, "error", err)
		return apperr.New(apperr.SaveFailed, "failed to persist live state: "+err.Error())
	}
	return nil
}

// Get loads the session's live state from Redis. Returns (nil, nil) when
// no session exists under that id yet.
func (s *Store) Get(ctx context.Context, sessionID string) (*turn.State, *apperr.CodedError) {
	if sessionID == "" {
		return nil, apperr.New(apperr.MissingSessionID, "session id required")
	}
	val, err := s.client.Get(ctx, liveKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to load session state", "session_id", sessionID, "error", err)
		return nil, apperr.New(apperr.LoadFailed, "failed to load live state: "+err.Error())
	}
	var st turn.State
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return nil, apperr.New(apperr.InvalidGameState, "corrupt live state: "+err.Error())
	}
	return &st, nil
}

// Delete removes the session's live state, used by the "new game"/"restart"
// system command.
func (s *Store) Delete(ctx context.Context, sessionID string) *apperr.CodedError {
	if err := s.client.Del(ctx, liveKey(sessionID)).Err(); err != nil {
		return apperr.New(apperr.SaveFailed, "failed to delete live state: "+err.Error())
	}
	return nil
}
