// Package worldgen implements the hierarchical procedural world generator:
// a fixed 8x8 macro grid (L0), a per-macro-cell local grid (L1) with
// deterministic site planning and a sliding streaming/hydration window,
// and settlement/POI/building interiors (L2/L3). Every generation step is
// a pure function of (world seed, coordinates) so the same inputs always
// produce the same world, regardless of when or where it's generated.
package worldgen

import (
	"fmt"

	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

// MacroGridSize is the fixed L0 macro grid dimension: 8x8 macro cells.
const MacroGridSize = 8

// DefaultL1Size is the default width/height of a macro cell's L1 local grid.
const DefaultL1Size = 12

// Grid is a width/height pair, used for both the fixed L0 grid and each
// macro cell's L1 local grid.
type Grid struct {
	W int
	H int
}

// StreamConfig is the streaming window: R is the inclusive hydration
// radius, P the additional prefetch radius. Cells beyond R+P are evicted.
type StreamConfig struct {
	R int
	P int
}

// DefaultStream is the spec's default streaming window: radius 2,
// prefetch 1.
var DefaultStream = StreamConfig{R: 2, P: 1}

// Caps bounds the settlement tiers a single macro cell may contain.
type Caps struct {
	CityMax       int
	MetropolisMax int
}

// DefaultCaps is the spec's default per-macro-cell cap: at most one city,
// zero metropolises.
var DefaultCaps = Caps{CityMax: 1, MetropolisMax: 0}

// SiteCell is one (lx,ly) member of a placed cluster's footprint.
type SiteCell struct {
	LX int
	LY int
}

// Site is one placed settlement or POI cluster within a macro cell's L1
// grid.
type Site struct {
	ID        string
	MX, MY    int
	ClusterID string
	SegIndex  int
	Tier      int // rank: 1=outpost .. 6=metropolis
	TierName  string
	Cells     []SiteCell
	Promoted  bool
}

// CenterCell returns the first (placement-origin) cell of the site's
// footprint, used for spacing checks and hydration-based reveal.
func (s Site) CenterCell() SiteCell {
	if len(s.Cells) == 0 {
		return SiteCell{}
	}
	return s.Cells[0]
}

// SitePlan is the cached, deterministic output of L1 site planning for one
// macro cell: computed once on first access and then returned by value.
type SitePlan struct {
	Sites         []Site
	WarnShortfall bool
}

// MacroCell is one entry in the L0 macro grid.
type MacroCell struct {
	ID    string
	MX    int
	MY    int
	L1    Grid
	Caps  Caps
	Biome string

	SitePlan       *SitePlan
	sitePlanCached bool
}

// Cell is one L1 local-grid cell.
type Cell struct {
	ID          string
	MX, MY      int
	LX, LY      int
	Type        string
	Subtype     string
	Description string
	Known       bool
	Hydrated    bool
	Tags        []string
	IsCustom    bool
}

// CellKey is the canonical map key for a cell: "L1:{mx},{my}:{lx},{ly}".
func CellKey(mx, my, lx, ly int) string {
	return fmt.Sprintf("L1:%d,%d:%d,%d", mx, my, lx, ly)
}

// Settlement is a persisted L2 interior, reused by id across visits.
type Settlement struct {
	ID         string
	Name       string
	Type       string
	Population int
	Width      int
	Height     int
	Grid       [][]string // terrain/purpose label per cell
	Buildings  []Building
	NPCs       []SettlementNPCRef
	Tier       int
}

// Building is one L2 settlement building or L3 building-interior shell.
type Building struct {
	ID       string
	Name     string
	Purpose  string
	LX, LY   int
	Rooms    []Room
}

// Room is one L3 interior room, chain-connected to its neighbors via
// bidirectional named exits.
type Room struct {
	ID     string
	Exits  map[string]string // exit label -> target room id
	NPCIDs []string
}

// SettlementNPCRef assigns a pool NPC id to a street slot or a building,
// carrying the slice of npcgen.NPC fields quest-giver selection needs so
// callers don't have to keep the full generated pool around.
type SettlementNPCRef struct {
	NPCID        string
	BuildingID   string // empty if assigned to a street slot
	JobCategory  string
	IsQuestGiver bool
}

// Position is the player's current coordinates in the L1 macro/local grid.
type Position struct {
	MX, MY int
	LX, LY int
}

// World is the full spatial model for one session.
type World struct {
	Seed        int32
	L0          Grid
	Macro       map[string]*MacroCell
	L1Default   Grid
	Stream      StreamConfig
	Cells       map[string]*Cell
	Sites       map[string]*Site
	Settlements map[string]*Settlement

	Position     Position
	CurrentLayer int // 1, 2, or 3
	L2Active     string // settlement or POI id, empty when not in L2/L3
	L3Active     string // building id, empty when not in L3
	SubPositionX int    // player's cell within the active L2 grid
	SubPositionY int
	CurrentRoomID string // player's room within the active L3 building
}

// MacroKey is the canonical map key for a macro cell: "mx,my".
func MacroKey(mx, my int) string {
	return fmt.Sprintf("%d,%d", mx, my)
}

// New builds a fresh World: the full 8x8 macro grid, each cell biome-tagged
// from the prompt, and empty L1/site/settlement maps ready for streaming.
func New(seed int32, prompt string, cat *catalogs.Catalogs) *World {
	w := &World{
		Seed:        seed,
		L0:          Grid{W: MacroGridSize, H: MacroGridSize},
		Macro:       make(map[string]*MacroCell, MacroGridSize*MacroGridSize),
		L1Default:   Grid{W: DefaultL1Size, H: DefaultL1Size},
		Stream:      DefaultStream,
		Cells:        make(map[string]*Cell),
		Sites:        make(map[string]*Site),
		Settlements:  make(map[string]*Settlement),
		CurrentLayer: 1,
	}

	biome := cat.DetectBiome(prompt)

	for mx := 0; mx < MacroGridSize; mx++ {
		for my := 0; my < MacroGridSize; my++ {
			key := MacroKey(mx, my)
			w.Macro[key] = &MacroCell{
				ID:    key,
				MX:    mx,
				MY:    my,
				L1:    w.L1Default,
				Caps:  DefaultCaps,
				Biome: biome,
			}
		}
	}
	return w
}

// SeedFromPrompt derives a world seed by hashing the prompt text, for the
// case where the caller doesn't supply one explicitly.
func SeedFromPrompt(prompt string) int32 {
	return int32(rng.KeyedSeed(0, "world_seed", prompt) & 0x7fffffff)
}

// ClampPosition clamps (mx,my,lx,ly) into the world's bounds: the macro
// grid for (mx,my) and the addressed macro cell's L1 grid for (lx,ly).
func (w *World) ClampPosition(mx, my, lx, ly int) (int, int, int, int) {
	mx = clamp(mx, 0, w.L0.W-1)
	my = clamp(my, 0, w.L0.H-1)
	mc := w.Macro[MacroKey(mx, my)]
	l1 := w.L1Default
	if mc != nil {
		l1 = mc.L1
	}
	lx = clamp(lx, 0, l1.W-1)
	ly = clamp(ly, 0, l1.H-1)
	return mx, my, lx, ly
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// chebyshev returns the Chebyshev distance between two grid points.
func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
