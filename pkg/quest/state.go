package quest

import (
	"strings"

	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
)

// Table is the session's quest bookkeeping: what's available per
// settlement, what's active, and what's completed. The turn orchestrator
// owns the concrete instance; this package only mutates it through Accept,
// Advance and Complete.
type Table struct {
	Available map[string][]Quest // settlementID -> quests seeded there
	Active    map[string]*Quest  // questID -> quest
	Completed map[string]*Quest  // questID -> quest
}

// NewTable builds an empty quest table.
func NewTable() *Table {
	return &Table{
		Available: make(map[string][]Quest),
		Active:    make(map[string]*Quest),
		Completed: make(map[string]*Quest),
	}
}

func (t *Table) findAvailable(settlementID, questID string) (Quest, bool) {
	for _, q := range t.Available[settlementID] {
		if q.ID == questID {
			return q, true
		}
	}
	return Quest{}, false
}

// LocateAvailable searches every settlement's seed list for questID,
// returning the settlement it's offered at. Used by callers that only have
// a bare quest id, without knowing which settlement it belongs to.
func (t *Table) LocateAvailable(questID string) (settlementID string, q Quest, ok bool) {
	for sid, quests := range t.Available {
		for _, cand := range quests {
			if cand.ID == questID {
				return sid, cand, true
			}
		}
	}
	return "", Quest{}, false
}

// Accept copies a quest from the settlement's seed list into active; the
// seed list itself is left unchanged. Fails if
// the active count is already at MaxActiveQuests, the quest isn't in the
// settlement's seed list, it's already active, or already completed.
func (t *Table) Accept(settlementID, questID string) (*Quest, *apperr.CodedError) {
	if len(t.Active) >= MaxActiveQuests {
		return nil, apperr.New(apperr.MaxActiveQuestsReached, "active quest limit reached")
	}
	if _, done := t.Completed[questID]; done {
		return nil, apperr.New(apperr.QuestAlreadyCompleted, "quest already completed: "+questID)
	}
	if _, active := t.Active[questID]; active {
		return nil, apperr.New(apperr.QuestAlreadyActive, "quest already active: "+questID)
	}
	q, ok := t.findAvailable(settlementID, questID)
	if !ok {
		return nil, apperr.New(apperr.NoQuestAvailable, "quest not available at settlement: "+questID)
	}
	if len(q.Constraint.Steps) > 0 {
		q.CurrentStep = q.Constraint.Steps[0].ID
	}
	q.TotalSteps = len(q.Constraint.Steps)
	t.Active[questID] = &q
	return &q, nil
}

// Advance moves an active quest's current step forward by id, used by the
// turn orchestrator as the player resolves step choices.
func (t *Table) Advance(questID, nextStepID string) *apperr.CodedError {
	q, ok := t.Active[questID]
	if !ok {
		return apperr.New(apperr.QuestNotActive, "quest not active: "+questID)
	}
	q.CurrentStep = nextStepID
	return nil
}

// RewardInventory is the minimal view Complete needs of the inventory's
// gold item, avoiding a dependency on the action package's Item type.
type RewardInventory interface {
	AddGold(amount int)
}

// GiverRankStore lets Complete decrement a quest giver's rank without this
// package depending on npcgen directly.
type GiverRankStore interface {
	DecrementQuestGiverRank(npcID string)
}

// Complete finalizes an active quest: requires the quest be active, on its
// final step, and completed by its original giver. On success the reward
// gold is merged into inventory, the quest moves from active to completed,
// and the giver's rank is decremented (floor-clamped at 0 by the store).
func (t *Table) Complete(questID, giverNPCID string, inv RewardInventory, givers GiverRankStore) *apperr.CodedError {
	q, ok := t.Active[questID]
	if !ok {
		return apperr.New(apperr.QuestNotActive, "quest not active: "+questID)
	}
	if !strings.EqualFold(q.GiverNPCID, giverNPCID) {
		return apperr.New(apperr.WrongQuestGiver, "wrong quest giver for: "+questID)
	}
	lastStep := ""
	if n := len(q.Constraint.Steps); n > 0 {
		lastStep = q.Constraint.Steps[n-1].ID
	}
	if q.CurrentStep != lastStep {
		return apperr.New(apperr.IncompleteQuest, "quest not on final step: "+questID)
	}

	if inv != nil {
		inv.AddGold(q.Constraint.RewardGold)
	}
	if givers != nil {
		givers.DecrementQuestGiverRank(giverNPCID)
	}

	delete(t.Active, questID)
	t.Completed[questID] = q
	return nil
}
