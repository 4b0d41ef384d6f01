package turn

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
)

// schemaVersion and rulesetRev are the two constants hex_digest_stable
// mixes with the world seed; bumping either reflects a breaking change to
// the state shape or the generation rules, not a per-session value.
const (
	schemaVersion = "1"
	rulesetRev    = "1"
)

// RecomputeInventoryDigest hashes the sorted `"{id}|{name}|{slot}|{rarity}|
// {property_revision}"` projection of the player's inventory.
func RecomputeInventoryDigest(s *State) string {
	lines := make([]string, 0, len(s.Player.Inventory.Items))
	for _, it := range s.Player.Inventory.Items {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s|%d", it.ID, it.Name, it.Props.Slot, it.Props.Rarity, it.PropertyRevision))
	}
	sort.Strings(lines)
	joined := ""
	for i, l := range lines {
		if i > 0 {
			joined += "\n"
		}
		joined += l
	}
	sum := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("%x", sum)
}

// HexDigestStable is stable for the life of a world: it depends only on
// the schema/ruleset constants and the world seed.
func HexDigestStable(s *State) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", schemaVersion, s.World.Seed, rulesetRev)))
	return fmt.Sprintf("%x", sum)
}

// stateProjection is the deterministic JSON shape hex_digest_state hashes
// over. World.time_utc is intentionally excluded (tracked on State instead
// of World) so a turn that advances only the clock leaves the digest
// unchanged, while every other mutation — position, cells, inventory,
// quests — changes it.
type stateProjection struct {
	SchemaVersion string
	RNGSeed       int32
	TurnCounter   int
	Player        Player
	World         projectedWorld
	Counters      Counters
	Digests       Digests
	HistoryLen    int
}

type projectedWorld struct {
	Position     interface{}
	CurrentLayer int
	Cells        interface{}
	Sites        interface{}
	Settlements  interface{}
}

// HexDigestState hashes a deterministic JSON projection of the session's
// state. json.Marshal sorts map keys, so the projection is stable across
// repeated calls given identical state.
func HexDigestState(s *State) string {
	proj := stateProjection{
		SchemaVersion: schemaVersion,
		RNGSeed:       s.World.Seed,
		TurnCounter:   s.TurnCounter,
		Player:        s.Player,
		World: projectedWorld{
			Position:     s.World.Position,
			CurrentLayer: s.World.CurrentLayer,
			Cells:        s.World.Cells,
			Sites:        s.World.Sites,
			Settlements:  s.World.Settlements,
		},
		Counters:   s.Counters,
		Digests:    s.Digests,
		HistoryLen: len(s.History),
	}
	buf, err := json.Marshal(proj)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(buf)
	return fmt.Sprintf("%x", sum)
}
