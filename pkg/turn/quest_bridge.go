package turn

import (
	"context"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/quest"
)

// questValidator adapts clone's quest table to the action package's
// validation hook, checked before any quest action is applied.
func (o *Orchestrator) questValidator(clone *State) action.QuestValidator {
	return func(kind action.Kind, target string) action.ValidationResult {
		if target == "" {
			return action.ValidationResult{Reason: string(apperr.NoQuestID)}
		}
		switch kind {
		case action.KindAcceptQuest:
			if len(clone.Quests.Active) >= quest.MaxActiveQuests {
				return action.ValidationResult{Reason: string(apperr.MaxActiveQuestsReached)}
			}
			if _, done := clone.Quests.Completed[target]; done {
				return action.ValidationResult{Reason: string(apperr.QuestAlreadyCompleted)}
			}
			if _, active := clone.Quests.Active[target]; active {
				return action.ValidationResult{Reason: string(apperr.QuestAlreadyActive)}
			}
			if _, _, ok := clone.Quests.LocateAvailable(target); !ok {
				return action.ValidationResult{Reason: string(apperr.NoQuestAvailable)}
			}
			return action.ValidationResult{Valid: true}

		case action.KindCompleteQuest:
			if _, active := clone.Quests.Active[target]; !active {
				return action.ValidationResult{Reason: string(apperr.QuestNotActive)}
			}
			return action.ValidationResult{Valid: true}

		case action.KindAskAboutQuest:
			if _, active := clone.Quests.Active[target]; active {
				return action.ValidationResult{Valid: true}
			}
			if _, _, ok := clone.Quests.LocateAvailable(target); ok {
				return action.ValidationResult{Valid: true}
			}
			return action.ValidationResult{Reason: string(apperr.NoQuestAvailable)}

		default:
			return action.ValidationResult{Valid: true}
		}
	}
}

// goldItemID is the inventory item id reward gold merges into rather than
// spawning a duplicate stack.
const goldItemID = "gold"

// applyQuestAction routes a validated quest action into the quest table's
// state transitions. accept_quest carries the quest id as Target;
// complete_quest additionally needs the giver NPC id, which the queued
// Action shape has no dedicated field for, so it rides in Dir.
func (o *Orchestrator) applyQuestAction(ctx context.Context, clone *State, a action.Action) *apperr.CodedError {
	switch a.Kind {
	case action.KindAcceptQuest:
		settlementID, _, ok := clone.Quests.LocateAvailable(a.Target)
		if !ok {
			return apperr.New(apperr.NoQuestAvailable, "quest not available: "+a.Target)
		}
		_, err := clone.Quests.Accept(settlementID, a.Target)
		return err

	case action.KindCompleteQuest:
		giverNPCID := a.Dir
		return clone.Quests.Complete(a.Target, giverNPCID, questGoldSink{&clone.Player.Inventory}, noopGiverStore{})

	default:
		return nil
	}
}

// questGoldSink adapts the player's inventory to quest.RewardInventory.
// action.Item has no quantity field, so the reward amount is not recorded:
// AddGold bumps the existing gold item's PropertyRevision, or adds a gold
// item with PropertyRevision 1, whatever the amount.
type questGoldSink struct {
	inv *action.Inventory
}

func (s questGoldSink) AddGold(amount int) {
	for i := range s.inv.Items {
		if s.inv.Items[i].ID == goldItemID {
			s.inv.Items[i].PropertyRevision++
			return
		}
	}
	s.inv.Items = append(s.inv.Items, action.Item{ID: goldItemID, Name: "gold", PropertyRevision: 1})
}

// noopGiverStore stands in until NPC quest-giver ranks are attached to
// session state; there's no persistent NPC record for it to decrement yet,
// matching the merchant-expiry no-op precedent.
type noopGiverStore struct{}

func (noopGiverStore) DecrementQuestGiverRank(npcID string) {}
