package worldgen

import (
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/npcgen"
)

// EnterL2FromL1 moves the player from an L1 site cell into that site's L2
// interior. If the settlement already exists in w.Settlements it's reused
// as-is (created=false); otherwise it's generated fresh from the site's
// NPC pool and persisted for reuse (created=true), so created marks the
// first visit.
func EnterL2FromL1(w *World, cat *catalogs.Catalogs, siteID string, now time.Time) (settlement *Settlement, created bool) {
	if existing, ok := w.Settlements[siteID]; ok {
		w.L2Active = siteID
		w.L3Active = ""
		w.CurrentLayer = 2
		w.SubPositionX, w.SubPositionY = 0, 0
		return existing, false
	}

	site, ok := w.Sites[siteID]
	if !ok {
		return nil, false
	}
	tier := cat.SettlementTier(site.TierName)
	pool := npcgen.GeneratePool(cat, poolSeed(w.Seed, siteID), siteID, tier.NPCCount, npcgen.Params{
		MX: site.MX, MY: site.MY, L1Width: w.L1Default.W, L1Height: w.L1Default.H, Now: now,
	})
	created2 := GenerateSettlementInterior(w.Seed, siteID, site.TierName, pool)
	created2.Tier = site.Tier
	w.Settlements[siteID] = created2

	w.L2Active = siteID
	w.L3Active = ""
	w.CurrentLayer = 2
	w.SubPositionX, w.SubPositionY = 0, 0
	return created2, true
}

// ExitL2ToL1 returns the player from an L2 interior to the L1 grid.
func ExitL2ToL1(w *World) {
	w.L2Active = ""
	w.CurrentLayer = 1
}

// EnterL3FromL2 moves the player from an L2 building cell into that
// building's L3 room interior, generating and persisting the room graph
// on first entry.
func EnterL3FromL2(w *World, buildingID string) []Room {
	settlement := w.Settlements[w.L2Active]
	if settlement == nil {
		return nil
	}
	for i := range settlement.Buildings {
		b := &settlement.Buildings[i]
		if b.ID != buildingID {
			continue
		}
		if len(b.Rooms) == 0 {
			npcIDs := npcIDsForBuilding(settlement, buildingID)
			b.Rooms = GenerateBuildingInterior(w.Seed, buildingID, b.Purpose, npcIDs)
		}
		w.L3Active = buildingID
		w.CurrentLayer = 3
		if len(b.Rooms) > 0 {
			w.CurrentRoomID = b.Rooms[0].ID
		}
		return b.Rooms
	}
	return nil
}

func npcIDsForBuilding(s *Settlement, buildingID string) []string {
	var ids []string
	for _, ref := range s.NPCs {
		if ref.BuildingID == buildingID {
			ids = append(ids, ref.NPCID)
		}
	}
	return ids
}

// ExitL3ToL2 returns the player from an L3 room interior to the L2 grid.
func ExitL3ToL2(w *World) {
	w.L3Active = ""
	w.CurrentRoomID = ""
	w.CurrentLayer = 2
}

// poolSeed derives the base seed for a settlement's NPC pool from the
// world seed and site id, so the pool is regenerable without persisting
// it separately from the settlement record itself.
func poolSeed(worldSeed int32, siteID string) int32 {
	sum := worldSeed
	for _, r := range siteID {
		sum = sum*31 + int32(r)
	}
	if sum < 0 {
		sum = -sum
	}
	return sum
}
