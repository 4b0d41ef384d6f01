package catalogs

// rawJobs is the seed data for the job catalog: 72 entries partitioned
// 11/22/27/12 across tiers 1-4 (the spec's headline "65" total does not
// sum with its own partition; the partition is honored as authoritative
// per DESIGN.md's Open Question resolution).
var rawJobs = []Job{
	{Name: "noble", Tier: 1, CriminalWeight: 0, MinAge: 18},
	{Name: "magistrate", Tier: 1, CriminalWeight: 0.03, MinAge: 25},
	{Name: "high_priest", Tier: 1, CriminalWeight: 0.02, MinAge: 30},
	{Name: "guild_master", Tier: 1, CriminalWeight: 0.1, MinAge: 28},
	{Name: "knight_commander", Tier: 1, CriminalWeight: 0.08, MinAge: 22},
	{Name: "merchant_prince", Tier: 1, CriminalWeight: 0.2, MinAge: 25},
	{Name: "court_wizard", Tier: 1, CriminalWeight: 0.05, MinAge: 20},
	{Name: "baron", Tier: 1, CriminalWeight: 0.1, MinAge: 20},
	{Name: "diplomat", Tier: 1, CriminalWeight: 0.05, MinAge: 24},
	{Name: "spymaster", Tier: 1, CriminalWeight: 0.4, MinAge: 22},
	{Name: "admiral", Tier: 1, CriminalWeight: 0.1, MinAge: 26},
	{Name: "captain", Tier: 2, CriminalWeight: 0.1, MinAge: 18},
	{Name: "priest", Tier: 2, CriminalWeight: 0.02, MinAge: 18},
	{Name: "merchant", Tier: 2, CriminalWeight: 0.15, MinAge: 16},
	{Name: "scribe", Tier: 2, CriminalWeight: 0.02, MinAge: 14},
	{Name: "physician", Tier: 2, CriminalWeight: 0.02, MinAge: 20},
	{Name: "blacksmith", Tier: 2, CriminalWeight: 0.05, MinAge: 16},
	{Name: "innkeeper", Tier: 2, CriminalWeight: 0.1, MinAge: 18},
	{Name: "guard_sergeant", Tier: 2, CriminalWeight: 0.1, MinAge: 18},
	{Name: "alchemist", Tier: 2, CriminalWeight: 0.15, MinAge: 18},
	{Name: "bard", Tier: 2, CriminalWeight: 0.1, MinAge: 16},
	{Name: "mason", Tier: 2, CriminalWeight: 0.05, MinAge: 16},
	{Name: "shipwright", Tier: 2, CriminalWeight: 0.05, MinAge: 18},
	{Name: "tax_collector", Tier: 2, CriminalWeight: 0.3, MinAge: 20},
	{Name: "herbalist", Tier: 2, CriminalWeight: 0.05, MinAge: 14},
	{Name: "armorer", Tier: 2, CriminalWeight: 0.05, MinAge: 18},
	{Name: "jeweler", Tier: 2, CriminalWeight: 0.2, MinAge: 18},
	{Name: "cartographer", Tier: 2, CriminalWeight: 0.05, MinAge: 16},
	{Name: "stablemaster", Tier: 2, CriminalWeight: 0.05, MinAge: 16},
	{Name: "brewer", Tier: 2, CriminalWeight: 0.05, MinAge: 16},
	{Name: "fletcher", Tier: 2, CriminalWeight: 0.05, MinAge: 14},
	{Name: "trade_envoy", Tier: 2, CriminalWeight: 0.15, MinAge: 20},
	{Name: "town_crier", Tier: 2, CriminalWeight: 0.05, MinAge: 14},
	{Name: "farmer", Tier: 3, CriminalWeight: 0.02, MinAge: 12},
	{Name: "fisher", Tier: 3, CriminalWeight: 0.02, MinAge: 12},
	{Name: "laborer", Tier: 3, CriminalWeight: 0.1, MinAge: 12},
	{Name: "weaver", Tier: 3, CriminalWeight: 0.02, MinAge: 12},
	{Name: "cooper", Tier: 3, CriminalWeight: 0.02, MinAge: 14},
	{Name: "tanner", Tier: 3, CriminalWeight: 0.05, MinAge: 14},
	{Name: "carpenter", Tier: 3, CriminalWeight: 0.02, MinAge: 14},
	{Name: "cook", Tier: 3, CriminalWeight: 0.02, MinAge: 12},
	{Name: "servant", Tier: 3, CriminalWeight: 0.05, MinAge: 10},
	{Name: "stablehand", Tier: 3, CriminalWeight: 0.05, MinAge: 10},
	{Name: "miner", Tier: 3, CriminalWeight: 0.1, MinAge: 14},
	{Name: "woodcutter", Tier: 3, CriminalWeight: 0.05, MinAge: 12},
	{Name: "potter", Tier: 3, CriminalWeight: 0.02, MinAge: 12},
	{Name: "baker", Tier: 3, CriminalWeight: 0.02, MinAge: 12},
	{Name: "butcher", Tier: 3, CriminalWeight: 0.05, MinAge: 14},
	{Name: "candlemaker", Tier: 3, CriminalWeight: 0.02, MinAge: 12},
	{Name: "tailor", Tier: 3, CriminalWeight: 0.02, MinAge: 14},
	{Name: "mercenary", Tier: 3, CriminalWeight: 0.4, MinAge: 18},
	{Name: "sailor", Tier: 3, CriminalWeight: 0.15, MinAge: 16},
	{Name: "peddler", Tier: 3, CriminalWeight: 0.25, MinAge: 14},
	{Name: "porter", Tier: 3, CriminalWeight: 0.1, MinAge: 12},
	{Name: "gravedigger", Tier: 3, CriminalWeight: 0.2, MinAge: 16},
	{Name: "street_performer", Tier: 3, CriminalWeight: 0.1, MinAge: 12},
	{Name: "messenger", Tier: 3, CriminalWeight: 0.05, MinAge: 12},
	{Name: "watchman", Tier: 3, CriminalWeight: 0.05, MinAge: 18},
	{Name: "shepherd", Tier: 3, CriminalWeight: 0.02, MinAge: 10},
	{Name: "miller", Tier: 3, CriminalWeight: 0.02, MinAge: 16},
	{Name: "beggar", Tier: 4, CriminalWeight: 0.3, MinAge: 8},
	{Name: "urchin", Tier: 4, CriminalWeight: 0.35, MinAge: 5},
	{Name: "pickpocket", Tier: 4, CriminalWeight: 0.9, MinAge: 10},
	{Name: "smuggler", Tier: 4, CriminalWeight: 0.85, MinAge: 16},
	{Name: "vagrant", Tier: 4, CriminalWeight: 0.3, MinAge: 10},
	{Name: "grave_robber", Tier: 4, CriminalWeight: 0.9, MinAge: 14},
	{Name: "cutpurse", Tier: 4, CriminalWeight: 0.85, MinAge: 12},
	{Name: "fence", Tier: 4, CriminalWeight: 1, MinAge: 18},
	{Name: "escaped_convict", Tier: 4, CriminalWeight: 0.95, MinAge: 16},
	{Name: "debt_collector_thug", Tier: 4, CriminalWeight: 0.7, MinAge: 16},
	{Name: "black_marketeer", Tier: 4, CriminalWeight: 0.9, MinAge: 18},
	{Name: "scavenger", Tier: 4, CriminalWeight: 0.3, MinAge: 8},
}
