package turn

import (
	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/worldgen"
)

// view adapts a State, read at the player's current position, to
// action.GameView without exposing the whole state to the validation pass.
type view struct {
	state *State
}

func (v view) currentCellKey() string {
	p := v.state.World.Position
	return worldgen.CellKey(p.MX, p.MY, p.LX, p.LY)
}

func (v view) CellItems() []action.Item {
	return v.state.CellItems[v.currentCellKey()]
}

func (v view) InventoryItems() []action.Item {
	return v.state.Player.Inventory.Items
}

func (v view) PresentNPCs() []action.NPCRef {
	return v.state.PresentNPCs[v.currentCellKey()]
}
