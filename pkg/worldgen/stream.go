package worldgen

import (
	"strconv"

	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/delta"
	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

// StreamWindow hydrates and evicts cells around the player's current
// position within their current macro cell. Every cell within R+P
// Chebyshev distance is created if missing and marked known; cells within
// R are additionally marked hydrated. Every cell belonging to this macro
// cell that falls outside R+P is deleted outright. Mutates w.Cells and
// returns the corresponding add/set/del deltas in emission order.
func StreamWindow(w *World, mx, my, lx, ly int) []delta.Delta {
	b := &delta.Batch{}
	mc := w.Macro[MacroKey(mx, my)]
	if mc == nil {
		return b.Items()
	}
	radius := w.Stream.R + w.Stream.P

	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if chebyshev(dx, dy) > radius {
				continue
			}
			nx, ny := lx+dx, ly+dy
			if nx < 0 || nx >= mc.L1.W || ny < 0 || ny >= mc.L1.H {
				continue
			}
			key := CellKey(mx, my, nx, ny)
			hydrated := chebyshev(dx, dy) <= w.Stream.R
			cell, exists := w.Cells[key]
			if !exists {
				cell = &Cell{ID: key, MX: mx, MY: my, LX: nx, LY: ny}
				w.Cells[key] = cell
				b.Add("world.cells."+key, cell)
			}
			if !cell.Known {
				cell.Known = true
				b.Set("world.cells."+key+".known", true)
			}
			if cell.Hydrated != hydrated {
				cell.Hydrated = hydrated
				b.Set("world.cells."+key+".hydrated", hydrated)
			}
		}
	}

	for key, cell := range w.Cells {
		if cell.MX != mx || cell.MY != my {
			continue
		}
		if chebyshev(cell.LX-lx, cell.LY-ly) > radius {
			delete(w.Cells, key)
			b.Del("world.cells." + key)
		}
	}

	return b.Items()
}

// RevealSites promotes planned sites whose center cell is currently
// hydrated into w.Sites. Sites never unreveal: once added, RevealSites
// leaves them untouched on subsequent calls.
func RevealSites(w *World, mc *MacroCell, cat *catalogs.Catalogs) []delta.Delta {
	b := &delta.Batch{}
	plan := PlanSites(mc, w.Seed, cat)
	for _, site := range plan.Sites {
		if _, already := w.Sites[site.ID]; already {
			continue
		}
		center := site.CenterCell()
		cellKey := CellKey(mc.MX, mc.MY, center.LX, center.LY)
		cell, ok := w.Cells[cellKey]
		if !ok || !cell.Hydrated {
			continue
		}
		siteCopy := site
		w.Sites[site.ID] = &siteCopy
		b.Add("world.sites."+site.ID, siteCopy)
	}
	return b.Items()
}

// subtypeModifiers is the fixed pool of descriptive modifiers a backfilled
// cell's subtype is drawn from, independent of the biome's terrain
// palette. Not part of the catalog tables proper since it's a flavor
// overlay rather than biome-specific data.
var subtypeModifiers = []string{"plain", "weathered", "overgrown", "ruined", "fresh", "worn"}

// BackfillCells fills in type/subtype and description for every hydrated
// cell in mc that lacks one, leaving is_custom cells untouched entirely.
func BackfillCells(w *World, mc *MacroCell, cat *catalogs.Catalogs) []delta.Delta {
	b := &delta.Batch{}
	biome, ok := cat.Biome(mc.Biome)
	if !ok {
		return b.Items()
	}

	for key, cell := range w.Cells {
		if cell.MX != mc.MX || cell.MY != mc.MY || !cell.Hydrated || cell.IsCustom {
			continue
		}
		if cell.Type == "" {
			idx := rng.KeyedSeed(w.Seed, "terrain", strconv.Itoa(cell.MX), strconv.Itoa(cell.MY), strconv.Itoa(cell.LX), strconv.Itoa(cell.LY))
			cell.Type = biome.Palette[int(idx)%len(biome.Palette)]
			subIdx := rng.KeyedSeed(w.Seed, "terrain_subtype", strconv.Itoa(cell.MX), strconv.Itoa(cell.MY), strconv.Itoa(cell.LX), strconv.Itoa(cell.LY))
			cell.Subtype = subtypeModifiers[int(subIdx)%len(subtypeModifiers)]
			b.Set("world.cells."+key+".type", cell.Type)
			b.Set("world.cells."+key+".subtype", cell.Subtype)
		}
		if cell.Description == "" {
			descIdx := rng.KeyedSeed(w.Seed, "terrain_desc", strconv.Itoa(cell.MX), strconv.Itoa(cell.MY), strconv.Itoa(cell.LX), strconv.Itoa(cell.LY))
			cell.Description = biome.DescTemplates[int(descIdx)%len(biome.DescTemplates)]
			b.Set("world.cells."+key+".description", cell.Description)
		}
	}
	return b.Items()
}
