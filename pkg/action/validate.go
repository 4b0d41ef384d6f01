package action

import (
	"strings"

	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
)

// QuestValidator delegates validation of the three quest-flavored actions
// to the quest package, avoiding a dependency from action on quest.
type QuestValidator func(kind Kind, target string) ValidationResult

// Validate checks a queue of actions against the current view without
// mutating anything. It stops and returns the first failure; on success
// it returns one ValidationResult per queued action, in order.
func Validate(queue []Action, view GameView, questValidate QuestValidator) (bool, []ValidationResult, *apperr.CodedError) {
	results := make([]ValidationResult, 0, len(queue))
	for _, a := range queue {
		res, failure := validateOne(a, view, questValidate)
		if failure != nil {
			return false, nil, failure
		}
		results = append(results, res)
	}
	return true, results, nil
}

func validateOne(a Action, view GameView, questValidate QuestValidator) (ValidationResult, *apperr.CodedError) {
	switch a.Kind {
	case KindMove:
		if _, ok := Canonicalize(a.Dir); !ok {
			return ValidationResult{}, apperr.New(apperr.InvalidDirection, "unrecognized direction: "+a.Dir)
		}
		return ValidationResult{Valid: true}, nil

	case KindTake:
		for _, item := range view.CellItems() {
			if Score(a.Target, item.Name, item.Aliases, 0) >= 6 {
				return ValidationResult{Valid: true}, nil
			}
		}
		return ValidationResult{}, apperr.New(apperr.TargetNotFoundInCell, "no matching item in cell: "+a.Target)

	case KindDrop:
		if _, ok := ResolveInventory(a.Target, view.InventoryItems()); ok {
			return ValidationResult{Valid: true}, nil
		}
		return ValidationResult{}, apperr.New(apperr.TargetNotInInventory, "no matching inventory item: "+a.Target)

	case KindExamine:
		if isVisible(a.Target, view) {
			return ValidationResult{Valid: true}, nil
		}
		return ValidationResult{}, apperr.New(apperr.TargetNotVisible, "target not visible: "+a.Target)

	case KindTalk:
		for _, npc := range view.PresentNPCs() {
			if strings.EqualFold(npc.Name, a.Target) {
				return ValidationResult{Valid: true}, nil
			}
		}
		return ValidationResult{}, apperr.New(apperr.NPCNotPresent, "no present NPC named: "+a.Target)

	case KindAcceptQuest, KindCompleteQuest, KindAskAboutQuest:
		if questValidate == nil {
			return ValidationResult{Valid: true, Note: "quest validator not wired"}, nil
		}
		res := questValidate(a.Kind, a.Target)
		if !res.Valid {
			return ValidationResult{}, apperr.New(apperr.Code(res.Reason), res.Reason)
		}
		return res, nil

	default:
		if alwaysAllow[a.Kind] {
			return ValidationResult{Valid: true}, nil
		}
		if shallowAllow[a.Kind] {
			return ValidationResult{Valid: true, Note: "shallow-allowed, not mechanically resolved"}, nil
		}
		return ValidationResult{Valid: true, Note: "unknown action kind, passed through"}, nil
	}
}

func isVisible(target string, view GameView) bool {
	for _, item := range view.CellItems() {
		if Score(target, item.Name, item.Aliases, 0) >= 6 {
			return true
		}
	}
	if _, ok := ResolveInventory(target, view.InventoryItems()); ok {
		return true
	}
	for _, npc := range view.PresentNPCs() {
		if strings.EqualFold(npc.Name, target) {
			return true
		}
	}
	return false
}
