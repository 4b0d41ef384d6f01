package catalogs

// SettlementTier describes the fixed generation parameters for one
// settlement size class: how many NPCs it seeds, how many L1 cells its
// footprint grows to claim, and the minimum Chebyshev spacing enforced
// against other settlements of any tier during site placement.
type SettlementTier struct {
	Name       string
	NPCCount   int
	Footprint  int
	MinSpacing int
}

// rawSettlementTiers is the seed data for the six settlement size classes
// plus the fallback "other" POI tier used for non-settlement points of
// interest (shrines, ruins, campsites) that still need an NPC count.
var rawSettlementTiers = []SettlementTier{
	{Name: "outpost", NPCCount: 3, Footprint: 1, MinSpacing: 1},
	{Name: "hamlet", NPCCount: 8, Footprint: 1, MinSpacing: 2},
	{Name: "village", NPCCount: 15, Footprint: 1, MinSpacing: 2},
	{Name: "town", NPCCount: 30, Footprint: 1, MinSpacing: 3},
	{Name: "city", NPCCount: 60, Footprint: 3, MinSpacing: 4},
	{Name: "metropolis", NPCCount: 120, Footprint: 7, MinSpacing: 6},
	{Name: "other", NPCCount: 10, Footprint: 1, MinSpacing: 1},
}
