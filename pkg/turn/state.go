// Package turn implements the per-turn orchestrator: normalize intent,
// validate, apply against a clone of session state, resolve any quest
// action, request narration, and compute the state fingerprint — all
// before the caller's clone ever replaces the live session state.
package turn

import (
	"encoding/json"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/quest"
	"github.com/mdunham726-coder/wyrdreach/pkg/worldgen"
)

// Player is the player-facing half of session state: identity, vital
// stats, and inventory.
type Player struct {
	ID        string
	Aliases   []string
	Stamina   int
	Clarity   int
	Inventory action.Inventory
}

// Counters is the session's monotonic revision counters.
type Counters struct {
	StateRev         int
	CellRev          int
	SiteRev          int
	InventoryRev     int
	MerchantStateRev int
	FactionRev       int
}

// Digests holds the SHA-256 projections recomputed every turn.
type Digests struct {
	InventoryDigest string
}

// HistoryEntry is one completed turn's summary line.
type HistoryEntry struct {
	TurnID       string
	TimestampUTC time.Time
	Intent       string
	Summary      string
}

// State is one session's mutable simulation state: everything a turn reads
// and writes. The orchestrator never mutates the caller's State directly —
// it clones, mutates the clone, and only on success does the caller adopt
// the clone as the new live state.
type State struct {
	SessionID string
	World     *worldgen.World
	Player    Player
	Quests    *quest.Table
	// CellItems maps a worldgen.CellKey to the items lying in that cell,
	// consulted by the action view for take/examine resolution. The spec
	// fixes the item shape and the alias-score threshold but not a
	// concrete spawn table, so cells start empty and items only appear
	// here via drop or a future seeding step.
	CellItems    map[string][]action.Item
	PresentNPCs  map[string][]action.NPCRef
	Counters     Counters
	Digests      Digests
	History      []HistoryEntry
	TurnCounter  int
	CreatedAtUTC time.Time
	UpdatedAtUTC time.Time
	WorldTimeUTC time.Time
}

// GetTurnCounter and GetLocation implement conditionals.GameStateView, so
// State can be evaluated against narrator-hint gating clauses directly.
func (s *State) GetTurnCounter() int { return s.TurnCounter }

func (s *State) GetLocation() string {
	p := s.World.Position
	return worldgen.CellKey(p.MX, p.MY, p.LX, p.LY)
}

// Clone produces a deep, independent copy of s via a JSON round-trip — the
// same approach the teacher's background sync goroutine relies on
// (`GameState.DeepCopy`) to avoid data races between the synchronous
// response path and any background mutation.
func (s *State) Clone() (*State, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	clone := &State{}
	if err := json.Unmarshal(buf, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// NewState builds a fresh session state around a newly generated world.
func NewState(sessionID, playerID string, seed int32, prompt string, cat *catalogs.Catalogs, now time.Time) *State {
	return &State{
		SessionID: sessionID,
		World:     worldgen.New(seed, prompt, cat),
		Player: Player{
			ID:      playerID,
			Stamina: 100,
			Clarity: 100,
		},
		Quests:       quest.NewTable(),
		CellItems:    make(map[string][]action.Item),
		PresentNPCs:  make(map[string][]action.NPCRef),
		TurnCounter:  0,
		CreatedAtUTC: now,
		UpdatedAtUTC: now,
	}
}
