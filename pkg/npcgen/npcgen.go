// Package npcgen implements the NPC generator: a fixed algorithm that
// turns a (seed, site) pair into a fully-populated NPC record. Two
// implementations that consume the same catalog and seed must produce
// byte-identical output. Every random value is a separate rng.KeyedFloat
// draw keyed by (seed, siteID, label), one label per value, so no step's
// result depends on how many values earlier steps drew.
package npcgen

import (
	"fmt"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

// Position locates an NPC within the world hierarchy: macro cell (mx,my)
// and local cell (lx,ly) within that macro cell's L1 grid.
type Position struct {
	MX int
	MY int
	LX int
	LY int
}

// NPC is one generated non-player character.
type NPC struct {
	ID               string
	SiteID           string
	Age              int
	Gender           string
	Tier             int
	JobCategory      string
	HomeLocation     *string // nil means no fixed home
	FactionID        *string
	WealthTier       int
	PlayerReputation int
	Traits           []string
	CorruptionLevel  float64
	IsCriminal       bool
	Position         Position
	State            string
	CreatedAtUTC     time.Time
	ExpiresAtUTC     time.Time
	Schedule         *string
	IsQuestGiver     bool
}

const expiryWindow = 14 * 24 * time.Hour

// questGivingJobs is the fixed subset of tier-1/tier-2 jobs eligible to
// hand out quests. IsQuestGiver is derived from this set rather than from
// an RNG draw.
var questGivingJobs = map[string]bool{
	"guild_master": true,
	"high_priest":  true,
	"magistrate":   true,
	"captain":      true,
	"priest":       true,
	"innkeeper":    true,
}

func isQuestGiver(tier int, jobName string) bool {
	return tier <= 2 && questGivingJobs[jobName]
}

var placeholderJob = catalogs.Job{Name: "unemployed", Tier: 0, CriminalWeight: 0, MinAge: 0}

// Params bundles the positional context a single NPC is generated into:
// the macro cell it belongs to and the dimensions of that cell's L1 grid,
// used to place the NPC's local coordinates.
type Params struct {
	MX, MY   int
	L1Width  int
	L1Height int
	Now      time.Time
}

// Generate runs the 13-step NPC generation algorithm for one (seed, site)
// pair against the given catalog set. Every numbered comment below is one
// step; a step takes zero, one or two keyed draws (step 7's trait sample
// takes its own draws inside sampleDistinctTraits).
func Generate(cat *catalogs.Catalogs, seed int32, siteID string, p Params) NPC {
	draw := func(label string) float64 {
		return rng.KeyedFloat(seed, siteID, label)
	}

	// 1. tier
	rTier := draw("tier")
	tier := tierFromRoll(rTier)

	// 2. age
	rAge := draw("age")
	age := 5 + int(rAge*80)
	if age > 84 {
		age = 84
	}

	// 3. gender
	rGender := draw("gender")
	gender := "female"
	if rGender < 0.5 {
		gender = "male"
	}

	// 4. job, filtered by min age
	candidates := jobsForTierAndAge(cat, tier, age)
	rJob := draw("job")
	idx := int(rJob * float64(len(candidates)))
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	job := candidates[idx]

	// 5. is_criminal
	var isCriminal bool
	switch {
	case job.CriminalWeight >= 1:
		isCriminal = true
	case job.CriminalWeight <= 0:
		isCriminal = false
	default:
		rCriminal := draw("criminal")
		isCriminal = rCriminal < job.CriminalWeight
	}

	// 6. corruption level
	rCorrBand := draw("corruption_band")
	var corrLo, corrHi float64
	switch {
	case rCorrBand < 0.60:
		corrLo, corrHi = 0, 0.3
	case rCorrBand < 0.90:
		corrLo, corrHi = 0.3, 0.7
	default:
		corrLo, corrHi = 0.7, 1.0
	}
	rCorr := draw("corruption_value")
	corruption := corrLo + rCorr*(corrHi-corrLo)

	// 7. traits
	rTraitCount := draw("trait_count")
	traitCount := 3
	switch {
	case rTraitCount < 0.35:
		traitCount = 1
	case rTraitCount < 0.75:
		traitCount = 2
	}
	traits := sampleDistinctTraits(cat, seed, siteID, traitCount)

	// 8. wealth tier
	rWealth := draw("wealth")
	wealthTier := wealthFromTier(tier, rWealth)

	// 9. player reputation
	rRep := draw("reputation")
	playerRep := int((rRep - 0.5) * 50)

	// 10. home location
	rHome := draw("home")
	var home *string
	switch {
	case rHome < 0.8:
		s := siteID
		home = &s
	case rHome < 0.95:
		s := "wanderer"
		home = &s
	default:
		home = nil
	}

	// 11. position
	rLX := draw("lx")
	rLY := draw("ly")
	lx := int(rLX * float64(p.L1Width))
	if lx >= p.L1Width {
		lx = p.L1Width - 1
	}
	ly := int(rLY * float64(p.L1Height))
	if ly >= p.L1Height {
		ly = p.L1Height - 1
	}

	// 12. timestamps
	created := p.Now
	expires := created.Add(expiryWindow)

	// 13. identifier
	id := fmt.Sprintf("%s#npc_%d", siteID, seed)

	return NPC{
		ID:               id,
		SiteID:           siteID,
		Age:              age,
		Gender:           gender,
		Tier:             tier,
		JobCategory:      job.Name,
		HomeLocation:     home,
		FactionID:        nil,
		WealthTier:       wealthTier,
		PlayerReputation: playerRep,
		Traits:           traits,
		CorruptionLevel:  corruption,
		IsCriminal:       isCriminal,
		Position:         Position{MX: p.MX, MY: p.MY, LX: lx, LY: ly},
		State:            "active",
		CreatedAtUTC:     created,
		ExpiresAtUTC:     expires,
		Schedule:         nil,
		IsQuestGiver:     isQuestGiver(tier, job.Name),
	}
}

// GeneratePool generates count NPCs for a site, using consecutive seeds
// base_seed, base_seed+1, ... base_seed+count-1 — the contract
// settlements and POIs rely on to regenerate an identical population.
func GeneratePool(cat *catalogs.Catalogs, baseSeed int32, siteID string, count int, p Params) []NPC {
	pool := make([]NPC, 0, count)
	for i := 0; i < count; i++ {
		pool = append(pool, Generate(cat, baseSeed+int32(i), siteID, p))
	}
	return pool
}

func tierFromRoll(r float64) int {
	switch {
	case r < 0.05:
		return 1
	case r < 0.25:
		return 2
	case r < 0.90:
		return 3
	default:
		return 4
	}
}

func wealthFromTier(tier int, r float64) int {
	var lo, hi int
	switch tier {
	case 1:
		lo, hi = 7, 9
	case 2:
		lo, hi = 5, 8
	case 3:
		lo, hi = 2, 5
	default:
		lo, hi = 0, 1
	}
	span := hi - lo + 1
	n := int(r * float64(span))
	if n >= span {
		n = span - 1
	}
	return lo + n
}

func jobsForTierAndAge(cat *catalogs.Catalogs, tier, age int) []catalogs.Job {
	var out []catalogs.Job
	for _, j := range cat.JobsByTier(tier) {
		if age >= j.MinAge {
			out = append(out, j)
		}
	}
	if len(out) == 0 {
		out = append(out, placeholderJob)
	}
	return out
}

// sampleDistinctTraits draws n distinct trait indices from the catalog
// using successive keyed draws, rejecting repeats until n distinct
// indices are found. With 104 traits and at most 3 draws this always
// terminates quickly.
func sampleDistinctTraits(cat *catalogs.Catalogs, seed int32, siteID string, n int) []string {
	total := len(cat.Traits)
	seen := make(map[int]bool, n)
	out := make([]string, 0, n)
	attempt := 0
	for len(out) < n {
		r := rng.KeyedFloat(seed, siteID, "trait", fmt.Sprintf("%d", attempt))
		idx := int(r * float64(total))
		if idx >= total {
			idx = total - 1
		}
		attempt++
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, cat.Traits[idx].Name)
	}
	return out
}
