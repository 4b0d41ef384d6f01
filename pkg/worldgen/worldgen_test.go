package worldgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/npcgen"
)

func poolFixture(cat *catalogs.Catalogs, siteID string, count int) []npcgen.NPC {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return npcgen.GeneratePool(cat, 100, siteID, count, npcgen.Params{MX: 0, MY: 0, L1Width: 12, L1Height: 12, Now: now})
}

func TestNew_BuildsFullMacroGrid(t *testing.T) {
	cat := catalogs.Load()
	w := New(7, "a quiet forest village", cat)

	assert.Len(t, w.Macro, MacroGridSize*MacroGridSize)
	// rural precedes forest in biome order and matches "village".
	for _, mc := range w.Macro {
		assert.Equal(t, "rural", mc.Biome)
	}
	assert.Equal(t, 1, w.CurrentLayer)
}

func TestNew_BiomeFallsBackToRural(t *testing.T) {
	cat := catalogs.Load()
	w := New(1, "an indescribable void", cat)

	mc := w.Macro[MacroKey(0, 0)]
	assert.Equal(t, "rural", mc.Biome)
}

func TestPlanSites_DeterministicAndCached(t *testing.T) {
	cat := catalogs.Load()
	w := New(42, "a bustling city market", cat)
	mc := w.Macro[MacroKey(3, 3)]

	a := PlanSites(mc, w.Seed, cat)
	b := PlanSites(mc, w.Seed, cat)

	assert.Equal(t, a, b)
	assert.True(t, mc.sitePlanCached)
}

func TestPlanSites_SpacingRespected(t *testing.T) {
	cat := catalogs.Load()
	w := New(11, "a rolling countryside", cat)

	for mx := 0; mx < 3; mx++ {
		for my := 0; my < 3; my++ {
			mc := w.Macro[MacroKey(mx, my)]
			plan := PlanSites(mc, w.Seed, cat)
			for i, si := range plan.Sites {
				for j, sj := range plan.Sites {
					if i == j {
						continue
					}
					ci, cj := si.CenterCell(), sj.CenterCell()
					dist := chebyshev(ci.LX-cj.LX, ci.LY-cj.LY)
					required := cat.SettlementTier(si.TierName).MinSpacing
					if other := cat.SettlementTier(sj.TierName).MinSpacing; other > required {
						required = other
					}
					assert.GreaterOrEqualf(t, dist, required,
						"macro (%d,%d) sites %d,%d too close", mx, my, i, j)
				}
			}
		}
	}
}

func TestPlanSites_NoMetropolisByDefault(t *testing.T) {
	cat := catalogs.Load()
	w := New(5, "a market town", cat)

	for _, mc := range w.Macro {
		plan := PlanSites(mc, w.Seed, cat)
		for _, s := range plan.Sites {
			assert.NotEqual(t, "metropolis", s.TierName)
		}
	}
}

func TestPlanSites_ClusterIDFormat(t *testing.T) {
	cat := catalogs.Load()
	w := New(9, "a windswept coast", cat)
	mc := w.Macro[MacroKey(1, 1)]
	plan := PlanSites(mc, w.Seed, cat)

	for i, s := range plan.Sites {
		assert.Equal(t, mc.clusterID(i), s.ClusterID)
		assert.Equal(t, s.ClusterID, s.ID)
	}
}

func TestStreamWindow_HydratesAndEvicts(t *testing.T) {
	cat := catalogs.Load()
	w := New(3, "a mountain pass", cat)

	StreamWindow(w, 4, 4, 5, 5)

	center := w.Cells[CellKey(4, 4, 5, 5)]
	require.NotNil(t, center)
	assert.True(t, center.Hydrated)
	assert.True(t, center.Known)

	far := CellKey(4, 4, 5, 5+w.Stream.R+w.Stream.P+1)
	assert.Nil(t, w.Cells[far])

	edgeKey := CellKey(4, 4, 5+w.Stream.R+w.Stream.P, 5)
	edge, ok := w.Cells[edgeKey]
	require.True(t, ok)
	assert.True(t, edge.Known)
	assert.False(t, edge.Hydrated)
}

func TestStreamWindow_MoveEvictsOutOfRangeCells(t *testing.T) {
	cat := catalogs.Load()
	w := New(3, "a mountain pass", cat)

	StreamWindow(w, 2, 2, 0, 0)
	before := len(w.Cells)
	assert.Greater(t, before, 0)

	StreamWindow(w, 2, 2, 11, 11)

	for key, cell := range w.Cells {
		assert.LessOrEqualf(t, chebyshev(cell.LX-11, cell.LY-11), w.Stream.R+w.Stream.P,
			"stale cell %s survived eviction", key)
	}
}

func TestRevealSites_OnlyRevealsHydratedCenters(t *testing.T) {
	cat := catalogs.Load()
	w := New(21, "a sprawling town square", cat)
	mc := w.Macro[MacroKey(0, 0)]
	plan := PlanSites(mc, w.Seed, cat)
	require.NotEmpty(t, plan.Sites)

	deltas := RevealSites(w, mc, cat)
	assert.Empty(t, deltas)
	assert.Empty(t, w.Sites)

	first := plan.Sites[0].CenterCell()
	StreamWindow(w, 0, 0, first.LX, first.LY)
	RevealSites(w, mc, cat)

	_, revealed := w.Sites[plan.Sites[0].ID]
	assert.True(t, revealed)
}

func TestRevealSites_NeverUnreveals(t *testing.T) {
	cat := catalogs.Load()
	w := New(21, "a sprawling town square", cat)
	mc := w.Macro[MacroKey(0, 0)]
	plan := PlanSites(mc, w.Seed, cat)
	require.NotEmpty(t, plan.Sites)

	first := plan.Sites[0].CenterCell()
	StreamWindow(w, 0, 0, first.LX, first.LY)
	RevealSites(w, mc, cat)
	require.Contains(t, w.Sites, plan.Sites[0].ID)

	StreamWindow(w, 0, 0, 11, 11)
	RevealSites(w, mc, cat)
	assert.Contains(t, w.Sites, plan.Sites[0].ID)
}

func TestBackfillCells_RespectsCustomFlag(t *testing.T) {
	cat := catalogs.Load()
	w := New(6, "a foggy swamp", cat)
	mc := w.Macro[MacroKey(0, 0)]
	StreamWindow(w, 0, 0, 0, 0)

	key := CellKey(0, 0, 0, 0)
	w.Cells[key].IsCustom = true
	w.Cells[key].Type = "shrine_ruins"
	w.Cells[key].Description = "hand-authored description"

	BackfillCells(w, mc, cat)

	assert.Equal(t, "shrine_ruins", w.Cells[key].Type)
	assert.Equal(t, "hand-authored description", w.Cells[key].Description)
}

func TestBackfillCells_FillsHydratedCells(t *testing.T) {
	cat := catalogs.Load()
	w := New(6, "a foggy swamp", cat)
	mc := w.Macro[MacroKey(0, 0)]
	StreamWindow(w, 0, 0, 0, 0)

	BackfillCells(w, mc, cat)

	for _, cell := range w.Cells {
		if !cell.Hydrated {
			continue
		}
		assert.NotEmpty(t, cell.Type)
		assert.NotEmpty(t, cell.Description)
	}
}

func TestGenerateSettlementInterior_StreetCross(t *testing.T) {
	cat := catalogs.Load()
	npcs := poolFixture(cat, "settlement_x", 15)

	s := GenerateSettlementInterior(1, "settlement_x", "village", npcs)

	mid := s.Width / 2
	assert.Equal(t, "street", s.Grid[mid][0])
	assert.Equal(t, "street", s.Grid[0][mid])
	assert.NotEmpty(t, s.Name)
}

func TestGenerateSettlementInterior_DistributesNPCs(t *testing.T) {
	cat := catalogs.Load()
	npcs := poolFixture(cat, "settlement_y", 30)

	s := GenerateSettlementInterior(2, "settlement_y", "town", npcs)

	assert.Equal(t, 30, len(s.NPCs))
}

func TestEnterAndExitL2L3(t *testing.T) {
	cat := catalogs.Load()
	w := New(21, "a sprawling town square", cat)
	mc := w.Macro[MacroKey(0, 0)]
	plan := PlanSites(mc, w.Seed, cat)
	require.NotEmpty(t, plan.Sites)
	siteID := plan.Sites[0].ID

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	settlement, created := EnterL2FromL1(w, cat, siteID, now)
	require.NotNil(t, settlement)
	assert.True(t, created)
	assert.Equal(t, 2, w.CurrentLayer)
	assert.Equal(t, siteID, w.L2Active)

	settlement2, created2 := EnterL2FromL1(w, cat, siteID, now)
	assert.False(t, created2)
	assert.Same(t, settlement, settlement2)

	if len(settlement.Buildings) > 0 {
		b := settlement.Buildings[0]
		rooms := EnterL3FromL2(w, b.ID)
		assert.NotEmpty(t, rooms)
		assert.Equal(t, 3, w.CurrentLayer)
		assert.Equal(t, b.ID, w.L3Active)

		ExitL3ToL2(w)
		assert.Equal(t, 2, w.CurrentLayer)
		assert.Empty(t, w.L3Active)
	}

	ExitL2ToL1(w)
	assert.Equal(t, 1, w.CurrentLayer)
	assert.Empty(t, w.L2Active)
}

func TestGeneratePOIInterior_HazardCountBounded(t *testing.T) {
	for seed := int32(0); seed < 50; seed++ {
		poi := GeneratePOIInterior(seed, "poi_a", 6)
		assert.LessOrEqual(t, len(poi.Hazards), 2)
	}
}
