package worldgen

import (
	"strconv"

	"github.com/mdunham726-coder/wyrdreach/pkg/npcgen"
	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

// settlementGridSize maps a settlement type to its L2 grid dimension.
// Sizes aren't given numerically in the design; chosen in rough proportion
// to each type's NPC count.
var settlementGridSize = map[string]int{
	"outpost": 5, "hamlet": 7, "village": 9,
	"town": 12, "city": 18, "metropolis": 26, "other": 5,
}

// buildingCountByType is the number of L2 buildings scattered per
// settlement type, again scaled to population rather than given verbatim.
var buildingCountByType = map[string]int{
	"outpost": 3, "hamlet": 5, "village": 8,
	"town": 14, "city": 24, "metropolis": 40, "other": 4,
}

var buildingPurposes = []rng.Weighted[string]{
	{Value: "house", Weight: 10},
	{Value: "shop", Weight: 5},
	{Value: "tavern", Weight: 3},
	{Value: "temple", Weight: 2},
	{Value: "guildhall", Weight: 1},
}

var palacePurpose = rng.Weighted[string]{Value: "palace", Weight: 1}

var roomCountByPurpose = map[string][2]int{
	"house":     {1, 2},
	"shop":      {2, 3},
	"tavern":    {3, 4},
	"temple":    {3, 5},
	"guildhall": {5, 7},
	"palace":    {6, 8},
}

var settlementNamePrefixes = []string{
	"Stone", "River", "Oak", "Winter", "Iron", "Green", "High", "North", "South", "Still",
}
var settlementNameSuffixes = []string{
	"hollow", "ford", "haven", "ridge", "gate", "watch", "market", "holm", "reach", "fall",
}

var buildingNamePools = map[string][]string{
	"house":     {"the Miller House", "the Weaver House", "the Cooper House"},
	"shop":      {"the General Store", "the Tinker's Stall", "the Trading Post"},
	"tavern":    {"the Broken Wheel", "the Crow's Rest", "the Weary Traveler"},
	"temple":    {"the Shrine of Ashes", "the Quiet Chapel", "the Old Sanctum"},
	"guildhall": {"the Merchant Hall", "the Artisan's Guildhall", "the Trade Exchange"},
	"palace":    {"the Grand Palace", "the High Seat", "the Old Keep"},
}

// GenerateSettlementName builds a settlement name deterministically by
// joining a prefix and a suffix into one word (e.g. "Stonehollow"), drawn
// from fixed pools keyed by (worldSeed, settlementID).
func GenerateSettlementName(worldSeed int32, settlementID string) string {
	prefixIdx := rng.KeyedSeed(worldSeed, settlementID, "name", "prefix")
	suffixIdx := rng.KeyedSeed(worldSeed, settlementID, "name", "suffix")
	return settlementNamePrefixes[int(prefixIdx)%len(settlementNamePrefixes)] +
		settlementNameSuffixes[int(suffixIdx)%len(settlementNameSuffixes)]
}

// GenerateSettlementInterior builds the L2 interior for a settlement: a
// size x size grid with a "+" of streets through the middle, buildings
// scattered over the remaining cells, and the settlement's NPC pool split
// 70% onto the streets and the rest round-robin over buildings.
func GenerateSettlementInterior(worldSeed int32, settlementID, settlementType string, npcPool []npcgen.NPC) *Settlement {
	size := settlementGridSize[settlementType]
	if size == 0 {
		size = settlementGridSize["other"]
	}
	grid := make([][]string, size)
	for i := range grid {
		grid[i] = make([]string, size)
	}

	mid := size / 2
	for i := 0; i < size; i++ {
		grid[mid][i] = "street"
		grid[i][mid] = "street"
	}

	count := buildingCountByType[settlementType]
	if count == 0 {
		count = buildingCountByType["other"]
	}
	purposes := buildingPurposes
	if settlementType == "city" || settlementType == "metropolis" {
		purposes = append(append([]rng.Weighted[string]{}, buildingPurposes...), palacePurpose)
	}

	var buildings []Building
	for i := 0; i < count; i++ {
		lx, ly, ok := placeBuilding(grid, worldSeed, settlementID, i)
		if !ok {
			continue
		}
		purpose := rng.WeightedChoice(purposes, worldSeed, []string{settlementID, "purpose", strconv.Itoa(i)})
		pool := buildingNamePools[purpose]
		name := rng.Choice(pool, worldSeed, []string{settlementID, "bname", strconv.Itoa(i)})
		id := settlementID + "#bldg_" + strconv.Itoa(i)
		grid[lx][ly] = "building:" + purpose
		buildings = append(buildings, Building{ID: id, Name: name, Purpose: purpose, LX: lx, LY: ly})
	}

	streetSlots := collectCells(grid, "street")
	refs := distributeNPCs(npcPool, streetSlots, buildings)

	return &Settlement{
		ID:         settlementID,
		Name:       GenerateSettlementName(worldSeed, settlementID),
		Type:       settlementType,
		Population: len(npcPool),
		Width:      size,
		Height:     size,
		Grid:       grid,
		Buildings:  buildings,
		NPCs:       refs,
		Tier:       0,
	}
}

// placeBuilding retries up to 80 candidate cells, skipping street and
// already-occupied cells.
func placeBuilding(grid [][]string, worldSeed int32, settlementID string, index int) (int, int, bool) {
	size := len(grid)
	for attempt := 0; attempt < 80; attempt++ {
		base := []string{settlementID, "bldg", strconv.Itoa(index), strconv.Itoa(attempt)}
		lx := rng.RandInt(worldSeed, append(append([]string{}, base...), "x"), 0, size-1)
		ly := rng.RandInt(worldSeed, append(append([]string{}, base...), "y"), 0, size-1)
		if grid[lx][ly] == "" {
			return lx, ly, true
		}
	}
	return 0, 0, false
}

func collectCells(grid [][]string, label string) []SiteCell {
	var out []SiteCell
	for x := range grid {
		for y := range grid[x] {
			if grid[x][y] == label {
				out = append(out, SiteCell{LX: x, LY: y})
			}
		}
	}
	return out
}

// distributeNPCs marks the first 70% of the pool as street NPCs (empty
// BuildingID; no particular street cell is recorded) and assigns the
// remainder round-robin over buildings. Street NPCs are left out when the
// grid has no street cells, building NPCs when there are no buildings.
func distributeNPCs(pool []npcgen.NPC, streetSlots []SiteCell, buildings []Building) []SettlementNPCRef {
	if len(pool) == 0 {
		return nil
	}
	streetCount := int(float64(len(pool)) * 0.7)
	refs := make([]SettlementNPCRef, 0, len(pool))
	for i := 0; i < streetCount && len(streetSlots) > 0; i++ {
		refs = append(refs, SettlementNPCRef{NPCID: pool[i].ID, JobCategory: pool[i].JobCategory, IsQuestGiver: pool[i].IsQuestGiver})
	}
	for i := streetCount; i < len(pool) && len(buildings) > 0; i++ {
		b := buildings[(i-streetCount)%len(buildings)]
		refs = append(refs, SettlementNPCRef{NPCID: pool[i].ID, BuildingID: b.ID, JobCategory: pool[i].JobCategory, IsQuestGiver: pool[i].IsQuestGiver})
	}
	return refs
}

// POI is a lightweight L2 interior for a non-settlement point of interest:
// a grid with a handful of scattered hazards.
type POI struct {
	ID       string
	Size     int
	Grid     [][]string
	Hazards  []SiteCell
}

var hazardTypes = []string{"water", "collapse", "gas"}

// GeneratePOIInterior builds a size x size grid with 0..2 hazards
// scattered at random positions.
func GeneratePOIInterior(worldSeed int32, poiID string, size int) *POI {
	grid := make([][]string, size)
	for i := range grid {
		grid[i] = make([]string, size)
	}

	count := rng.RandInt(worldSeed, []string{poiID, "hazard_count"}, 0, 2)
	var hazards []SiteCell
	for i := 0; i < count; i++ {
		base := []string{poiID, "hazard", strconv.Itoa(i)}
		hx := rng.RandInt(worldSeed, append(append([]string{}, base...), "x"), 0, size-1)
		hy := rng.RandInt(worldSeed, append(append([]string{}, base...), "y"), 0, size-1)
		kind := rng.Choice(hazardTypes, worldSeed, append(append([]string{}, base...), "kind"))
		grid[hx][hy] = "hazard:" + kind
		hazards = append(hazards, SiteCell{LX: hx, LY: hy})
	}

	return &POI{ID: poiID, Size: size, Grid: grid, Hazards: hazards}
}

// GenerateBuildingInterior builds the L3 room graph for one building,
// chain-connecting rooms[i] to rooms[i+1] via bidirectional exits and
// round-robin assigning npcIDs across the rooms.
func GenerateBuildingInterior(worldSeed int32, buildingID, purpose string, npcIDs []string) []Room {
	bounds, ok := roomCountByPurpose[purpose]
	if !ok {
		bounds = [2]int{1, 2}
	}
	count := rng.RandInt(worldSeed, []string{buildingID, "room_count"}, bounds[0], bounds[1])

	rooms := make([]Room, count)
	for i := 0; i < count; i++ {
		rooms[i] = Room{ID: buildingID + "#room_" + strconv.Itoa(i), Exits: map[string]string{}}
	}
	for i := 0; i < count-1; i++ {
		next := "to_" + rooms[i+1].ID
		back := "to_" + rooms[i].ID
		rooms[i].Exits[next] = rooms[i+1].ID
		rooms[i+1].Exits[back] = rooms[i].ID
	}
	for i, npcID := range npcIDs {
		r := &rooms[i%count]
		r.NPCIDs = append(r.NPCIDs, npcID)
	}
	return rooms
}
