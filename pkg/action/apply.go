package action

import (
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/delta"
	"github.com/mdunham726-coder/wyrdreach/pkg/worldgen"
)

// Inventory is the mutable, ordered slice of items the player carries.
type Inventory struct {
	Items []Item
}

// Remove splices out the inventory item ResolveInventory picks for name,
// the same fuzzy-match rule used to validate the drop in the first place.
func (inv *Inventory) Remove(name string) (Item, bool) {
	match, ok := ResolveInventory(name, inv.Items)
	if !ok {
		return Item{}, false
	}
	for i, it := range inv.Items {
		if it.ID == match.ID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return it, true
		}
	}
	return Item{}, false
}

// Add appends an item to the inventory.
func (inv *Inventory) Add(item Item) {
	inv.Items = append(inv.Items, item)
}

// Apply routes one already-validated action: movement updates the world
// position and re-runs the streaming window, site reveal, and backfill;
// drop splices the item out of inventory. Every other kind produces no
// state mutation at this layer — take/examine/look/etc. only drive
// narration, which the caller assembles separately.
func Apply(w *worldgen.World, cat *catalogs.Catalogs, inv *Inventory, a Action) []delta.Delta {
	switch a.Kind {
	case KindMove:
		return applyMove(w, cat, a)
	case KindDrop:
		return applyDrop(inv, a)
	default:
		return nil
	}
}

var directionOffsets = map[string][2]int{
	"north": {0, -1},
	"south": {0, 1},
	"east":  {1, 0},
	"west":  {-1, 0},
}

func applyMove(w *worldgen.World, cat *catalogs.Catalogs, a Action) []delta.Delta {
	canon, ok := Canonicalize(a.Dir)
	if !ok {
		return nil
	}
	offset, movesWithinL1 := directionOffsets[canon]
	if !movesWithinL1 {
		// up/down are layer-transition directions, handled by the
		// enter/exit L2/L3 transitions rather than this pipeline.
		return nil
	}

	mx, my := w.Position.MX, w.Position.MY
	lx, ly := w.Position.LX+offset[0], w.Position.LY+offset[1]
	mx, my, lx, ly = w.ClampPosition(mx, my, lx, ly)
	w.Position = worldgen.Position{MX: mx, MY: my, LX: lx, LY: ly}

	b := &delta.Batch{}
	b.Set("world.position", w.Position)
	b.Append(worldgen.StreamWindow(w, mx, my, lx, ly)...)
	if mc := w.Macro[worldgen.MacroKey(mx, my)]; mc != nil {
		b.Append(worldgen.RevealSites(w, mc, cat)...)
		b.Append(worldgen.BackfillCells(w, mc, cat)...)
	}
	return b.Items()
}

func applyDrop(inv *Inventory, a Action) []delta.Delta {
	if inv == nil {
		return nil
	}
	if _, ok := inv.Remove(a.Target); !ok {
		return nil
	}
	b := &delta.Batch{}
	b.Set("player.inventory", inv.Items)
	return b.Items()
}
