package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_TraitPartition(t *testing.T) {
	c := Load()

	assert.Len(t, c.Traits, 104)

	var pos, neg, neu int
	seen := map[string]bool{}
	for _, tr := range c.Traits {
		assert.Falsef(t, seen[tr.Name], "duplicate trait %q", tr.Name)
		seen[tr.Name] = true
		switch tr.Polarity {
		case "positive":
			pos++
		case "negative":
			neg++
		case "neutral":
			neu++
		default:
			t.Fatalf("trait %q has unexpected polarity %q", tr.Name, tr.Polarity)
		}
	}
	assert.Equal(t, 40, pos)
	assert.Equal(t, 40, neg)
	assert.Equal(t, 24, neu)
}

func TestLoad_JobPartition(t *testing.T) {
	c := Load()

	assert.Len(t, c.Jobs, 72)

	counts := map[int]int{}
	for _, j := range c.Jobs {
		assert.NotEmpty(t, j.Name)
		assert.GreaterOrEqual(t, j.CriminalWeight, 0.0)
		assert.LessOrEqual(t, j.CriminalWeight, 1.0)
		counts[j.Tier]++
	}
	assert.Equal(t, 11, counts[1])
	assert.Equal(t, 22, counts[2])
	assert.Equal(t, 27, counts[3])
	assert.Equal(t, 12, counts[4])
}

func TestLoad_JobCriminalWeightEdgeCases(t *testing.T) {
	c := Load()

	var noble, fence *Job
	for i := range c.Jobs {
		switch c.Jobs[i].Name {
		case "noble":
			noble = &c.Jobs[i]
		case "fence":
			fence = &c.Jobs[i]
		}
	}
	require.NotNil(t, noble)
	require.NotNil(t, fence)
	assert.Equal(t, 0.0, noble.CriminalWeight)
	assert.Equal(t, 1.0, fence.CriminalWeight)
}

func TestLoad_Biomes(t *testing.T) {
	c := Load()

	assert.Len(t, c.Biomes, 9)
	for _, b := range c.Biomes {
		assert.NotEmpty(t, b.Keywords)
		assert.NotEmpty(t, b.Palette)
	}
}

func TestLoad_Settlements(t *testing.T) {
	c := Load()

	tier, ok := findSettlement(c, "city")
	require.True(t, ok)
	assert.Equal(t, 60, tier.NPCCount)
	assert.Equal(t, 3, tier.Footprint)
}

func TestSettlementTier_FallsBackToOther(t *testing.T) {
	c := Load()

	tier := c.SettlementTier("shrine")
	assert.Equal(t, "other", tier.Name)
	assert.Equal(t, 10, tier.NPCCount)
}

func TestDetectBiome(t *testing.T) {
	c := Load()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"forest keywords", "a dense forest with a mossy grove", "forest"},
		{"urban keywords", "a bustling city market district", "urban"},
		{"no keywords falls back to rural", "an indescribable place", "rural"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.DetectBiome(tc.text))
		})
	}
}

func TestDefault_ReturnsSameInstance(t *testing.T) {
	a := Default()
	b := Default()
	assert.Same(t, a, b)
}

func TestDigests_StableAcrossLoads(t *testing.T) {
	a := Load()
	b := Load()
	assert.Equal(t, a.Digests["traits"], b.Digests["traits"])
	assert.Equal(t, a.Digests["jobs"], b.Digests["jobs"])
}

func findSettlement(c *Catalogs, name string) (SettlementTier, bool) {
	for _, t := range c.Settlements {
		if t.Name == name {
			return t, true
		}
	}
	return SettlementTier{}, false
}
