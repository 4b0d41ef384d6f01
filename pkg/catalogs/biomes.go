package catalogs

// Biome is one entry in the nine-biome detection/terrain catalog. Keywords
// are matched case-insensitively against scene/prompt text during macro
// cell generation; Palette supplies the fixed, ordered list of terrain
// labels that the hash-indexed backfill draws from, and DescTemplates
// supplies the plain-prose sentence stock used to backfill a cell
// description before the narrator ever sees it.
type Biome struct {
	Name          string
	Keywords      []string
	Palette       []string
	DescTemplates []string
}

// rawBiomes is the seed data for the nine fixed biomes. Order is stable and
// significant only insofar as it sets detection precedence (DetectBiome
// returns the first biome with any keyword match); it plays no role in the
// hash indexing itself, which is keyed on biome name, not slice position.
var rawBiomes = []Biome{
	{
		Name:     "urban",
		Keywords: []string{"city", "town", "street", "market", "alley", "tavern", "guild", "district", "plaza", "slum"},
		Palette:  []string{"cobblestone", "packed_dirt", "plaza_stone", "gutter", "market_stall", "rooftop"},
		DescTemplates: []string{
			"A narrow street hemmed in by close-built walls.",
			"An open plaza, foot traffic crossing in every direction.",
			"A cramped alley that smells of woodsmoke and refuse.",
		},
	},
	{
		Name:     "rural",
		Keywords: []string{"farm", "village", "field", "barn", "pasture", "orchard", "mill", "hamlet", "crop", "homestead"},
		Palette:  []string{"tilled_soil", "hay_field", "dirt_path", "fence_line", "pasture_grass", "orchard_row"},
		DescTemplates: []string{
			"A dirt path running between low fences.",
			"An open field, furrows dark with recent rain.",
			"A quiet stretch of pasture dotted with grazing stock.",
		},
	},
	{
		Name:     "forest",
		Keywords: []string{"forest", "wood", "grove", "tree", "thicket", "canopy", "glade", "timber", "underbrush"},
		Palette:  []string{"leaf_litter", "root_tangle", "mossy_ground", "fern_patch", "fallen_log", "clearing"},
		DescTemplates: []string{
			"Close-growing trunks with a thin canopy of daylight above.",
			"A mossy clearing ringed by undergrowth.",
			"A tangle of roots and fallen timber underfoot.",
		},
	},
	{
		Name:     "desert",
		Keywords: []string{"desert", "dune", "sand", "oasis", "arid", "mesa", "cracked", "scorched"},
		Palette:  []string{"loose_sand", "hardpan", "dune_ridge", "cracked_clay", "sparse_scrub", "rock_outcrop"},
		DescTemplates: []string{
			"Loose sand that shifts underfoot with every step.",
			"A cracked expanse of hardpan baking under open sky.",
			"A low dune ridge, sparse scrub clinging to its lee side.",
		},
	},
	{
		Name:     "tundra",
		Keywords: []string{"tundra", "snow", "ice", "frost", "glacier", "frozen", "blizzard", "permafrost"},
		Palette:  []string{"packed_snow", "ice_sheet", "frozen_mud", "windswept_rock", "snowdrift", "frost_heave"},
		DescTemplates: []string{
			"Packed snow, scoured smooth by a constant wind.",
			"A stretch of frozen ground cracked by frost heave.",
			"An ice-glazed hollow sheltered from the worst of the wind.",
		},
	},
	{
		Name:     "jungle",
		Keywords: []string{"jungle", "vine", "tropical", "swelter", "humid", "overgrowth", "rainforest"},
		Palette:  []string{"dense_vine", "muddy_root", "broad_leaf", "rotting_log", "wet_loam", "canopy_gap"},
		DescTemplates: []string{
			"Dense vine-hung growth pressing in on every side.",
			"A humid gap in the canopy, broad leaves dripping overhead.",
			"Wet loam underfoot, thick with the smell of rot and growth.",
		},
	},
	{
		Name:     "coast",
		Keywords: []string{"coast", "shore", "beach", "harbor", "dock", "tide", "cliff", "seaside", "wharf"},
		Palette:  []string{"wet_sand", "tide_pool", "driftwood", "shell_bed", "salt_grass", "rocky_shoal"},
		DescTemplates: []string{
			"Wet sand stretching down to the tideline.",
			"A rocky shoal exposed by the retreating tide.",
			"A stretch of salt grass above a line of weathered driftwood.",
		},
	},
	{
		Name:     "mountain",
		Keywords: []string{"mountain", "peak", "ridge", "cliff", "crag", "alpine", "summit", "cave", "quarry"},
		Palette:  []string{"bare_stone", "scree_slope", "narrow_ledge", "cave_mouth", "lichen_rock", "snowcap"},
		DescTemplates: []string{
			"A narrow ledge of bare stone above a scree slope.",
			"A lichen-crusted outcrop with a cave mouth nearby.",
			"A windswept ridge with a commanding view of the lowlands.",
		},
	},
	{
		Name:     "wetland",
		Keywords: []string{"swamp", "marsh", "bog", "fen", "mire", "wetland", "reed", "peat"},
		Palette:  []string{"reed_bed", "standing_water", "peat_ground", "mudflat", "rotting_stump", "mossy_hummock"},
		DescTemplates: []string{
			"A reed bed fringing still, dark water.",
			"Soft peat ground that gives underfoot.",
			"A mossy hummock rising out of the surrounding mire.",
		},
	},
}
