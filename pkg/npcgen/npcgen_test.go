package npcgen

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
)

func testParams() Params {
	return Params{MX: 2, MY: 3, L1Width: 12, L1Height: 12, Now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestGenerate_Deterministic(t *testing.T) {
	cat := catalogs.Load()

	a := Generate(cat, 42, "site_a", testParams())
	b := Generate(cat, 42, "site_a", testParams())

	assert.Equal(t, a, b)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	cat := catalogs.Load()

	a := Generate(cat, 1, "site_a", testParams())
	b := Generate(cat, 2, "site_a", testParams())

	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerate_FieldRanges(t *testing.T) {
	cat := catalogs.Load()
	p := testParams()

	for seed := int32(0); seed < 200; seed++ {
		npc := Generate(cat, seed, "site_range", p)

		assert.GreaterOrEqualf(t, npc.Age, 5, "seed %d", seed)
		assert.LessOrEqualf(t, npc.Age, 84, "seed %d", seed)
		assert.Containsf(t, []string{"male", "female"}, npc.Gender, "seed %d", seed)
		assert.GreaterOrEqualf(t, npc.Tier, 1, "seed %d", seed)
		assert.LessOrEqualf(t, npc.Tier, 4, "seed %d", seed)
		assert.GreaterOrEqualf(t, npc.WealthTier, 0, "seed %d", seed)
		assert.LessOrEqualf(t, npc.WealthTier, 9, "seed %d", seed)
		assert.GreaterOrEqualf(t, npc.PlayerReputation, -100, "seed %d", seed)
		assert.LessOrEqualf(t, npc.PlayerReputation, 100, "seed %d", seed)
		assert.GreaterOrEqualf(t, npc.CorruptionLevel, 0.0, "seed %d", seed)
		assert.LessOrEqualf(t, npc.CorruptionLevel, 1.0, "seed %d", seed)
		assert.GreaterOrEqualf(t, len(npc.Traits), 1, "seed %d", seed)
		assert.LessOrEqualf(t, len(npc.Traits), 3, "seed %d", seed)
		assert.Equal(t, "active", npc.State)
		assert.Nil(t, npc.FactionID)
		assert.Nil(t, npc.Schedule)
		if npc.IsQuestGiver {
			assert.LessOrEqualf(t, npc.Tier, 2, "seed %d", seed)
			assert.Truef(t, questGivingJobs[npc.JobCategory], "seed %d job %s", seed, npc.JobCategory)
		}
		assert.Equal(t, npc.CreatedAtUTC.Add(14*24*time.Hour), npc.ExpiresAtUTC)
	}
}

func TestGenerate_TraitsDistinct(t *testing.T) {
	cat := catalogs.Load()
	p := testParams()

	for seed := int32(0); seed < 100; seed++ {
		npc := Generate(cat, seed, "site_traits", p)
		seen := map[string]bool{}
		for _, name := range npc.Traits {
			require.Falsef(t, seen[name], "seed %d: duplicate trait %q", seed, name)
			seen[name] = true
		}
	}
}

func TestGenerate_PositionWithinBounds(t *testing.T) {
	cat := catalogs.Load()
	p := testParams()

	npc := Generate(cat, 17, "site_pos", p)

	assert.Equal(t, p.MX, npc.Position.MX)
	assert.Equal(t, p.MY, npc.Position.MY)
	assert.GreaterOrEqual(t, npc.Position.LX, 0)
	assert.Less(t, npc.Position.LX, p.L1Width)
	assert.GreaterOrEqual(t, npc.Position.LY, 0)
	assert.Less(t, npc.Position.LY, p.L1Height)
}

func TestGenerate_IdentifierFormat(t *testing.T) {
	cat := catalogs.Load()
	npc := Generate(cat, 99, "site_x", testParams())

	assert.Equal(t, "site_x#npc_99", npc.ID)
	assert.Equal(t, "site_x", npc.SiteID)
}

func TestIsQuestGiver_DerivedFromTierAndJob(t *testing.T) {
	assert.True(t, isQuestGiver(1, "guild_master"))
	assert.True(t, isQuestGiver(2, "priest"))
	assert.False(t, isQuestGiver(3, "priest"), "tier 3 never eligible regardless of job")
	assert.False(t, isQuestGiver(1, "noble"), "tier-1 job outside the fixed subset is not a giver")
}

func TestGeneratePool_ConsecutiveSeeds(t *testing.T) {
	cat := catalogs.Load()
	p := testParams()

	pool := GeneratePool(cat, 1000, "settlement_a", 8, p)

	require.Len(t, pool, 8)
	for i, npc := range pool {
		assert.Equal(t, "settlement_a#npc_"+strconv.Itoa(1000+i), npc.ID)
	}
}

func TestGeneratePool_MatchesIndividualGeneration(t *testing.T) {
	cat := catalogs.Load()
	p := testParams()

	pool := GeneratePool(cat, 500, "settlement_b", 3, p)
	for i, npc := range pool {
		want := Generate(cat, int32(500+i), "settlement_b", p)
		assert.Equal(t, want, npc)
	}
}
