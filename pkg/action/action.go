// Package action implements the intent pipeline: normalizing a parsed
// player intent into a queue of actions, validating each against the
// current world view without mutating anything, and applying the
// validated queue — routing movement into worldgen, splicing inventory
// for drop, and leaving read-only actions as no-ops.
package action

// Kind names one action verb the pipeline understands.
type Kind string

const (
	KindMove           Kind = "move"
	KindTake           Kind = "take"
	KindDrop           Kind = "drop"
	KindExamine        Kind = "examine"
	KindTalk           Kind = "talk"
	KindAcceptQuest    Kind = "accept_quest"
	KindCompleteQuest  Kind = "complete_quest"
	KindAskAboutQuest  Kind = "ask_about_quest"
	KindSit            Kind = "sit"
	KindStand          Kind = "stand"
	KindWait           Kind = "wait"
	KindListen         Kind = "listen"
	KindLook           Kind = "look"
	KindInventory      Kind = "inventory"
	KindHelp           Kind = "help"
	KindCast           Kind = "cast"
	KindAttack         Kind = "attack"
	KindSneak          Kind = "sneak"
)

// alwaysAllow never fails validation regardless of world state.
var alwaysAllow = map[Kind]bool{
	KindSit: true, KindStand: true, KindWait: true, KindListen: true,
	KindLook: true, KindInventory: true, KindHelp: true,
}

// shallowAllow is valid but noted rather than mechanically resolved —
// combat and stealth are out of this core's scope (§1 non-goals).
var shallowAllow = map[Kind]bool{
	KindCast: true, KindAttack: true, KindSneak: true,
}

// Action is one queued, not-yet-applied player action.
type Action struct {
	Kind   Kind
	Target string
	Dir    string
}

// PrimaryAction is the LLM parser's top-level intent.
type PrimaryAction struct {
	Action Kind
	Target string
	Dir    string
}

// Intent is the normalized result of parsing one player utterance,
// whether from the external LLM parser or the regex fallback.
type Intent struct {
	Primary    PrimaryAction
	Secondary  []PrimaryAction
	Compound   bool
	Confidence float64
}

// Queue builds the ordered action list from an intent: the primary
// action, followed by secondary actions only when Compound is set.
func (i Intent) Queue() []Action {
	queue := []Action{{Kind: i.Primary.Action, Target: i.Primary.Target, Dir: i.Primary.Dir}}
	if i.Compound {
		for _, s := range i.Secondary {
			queue = append(queue, Action{Kind: s.Action, Target: s.Target, Dir: s.Dir})
		}
	}
	return queue
}

// ItemProps is the slot/rarity pair an inventory item's digest projection
// includes alongside its id/name/revision.
type ItemProps struct {
	Slot   string
	Rarity string
}

// Item is a named, alias-matchable object — a cell item or inventory entry.
type Item struct {
	ID               string
	Name             string
	Aliases          []string
	Props            ItemProps
	PropertyRevision int
}

// NPCRef is a minimal reference to an NPC present in the current scene,
// enough for talk/examine target resolution.
type NPCRef struct {
	ID   string
	Name string
}

// GameView is the read-only slice of session state validation needs:
// what's in the current cell, what's in the player's inventory, and who's
// present. The turn orchestrator supplies a concrete implementation
// backed by the live session state; this package never reaches into
// worldgen/npcgen state directly.
type GameView interface {
	CellItems() []Item
	InventoryItems() []Item
	PresentNPCs() []NPCRef
}

// ValidationResult is the outcome of validating one queued action.
type ValidationResult struct {
	Valid  bool
	Reason string
	Note   string
}
