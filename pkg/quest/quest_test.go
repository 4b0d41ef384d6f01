package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollAvailabilityProbability_WithinTierRange(t *testing.T) {
	p := RollAvailabilityProbability(7, "settle-1", "town")
	assert.GreaterOrEqual(t, p, 0.50)
	assert.LessOrEqual(t, p, 0.70)
}

func TestRollAvailabilityProbability_Deterministic(t *testing.T) {
	a := RollAvailabilityProbability(7, "settle-1", "city")
	b := RollAvailabilityProbability(7, "settle-1", "city")
	assert.Equal(t, a, b)
}

func TestRollAvailabilityProbability_UnknownTierFallsBackToHamlet(t *testing.T) {
	p := RollAvailabilityProbability(3, "settle-x", "nonsense")
	assert.GreaterOrEqual(t, p, 0.10)
	assert.LessOrEqual(t, p, 0.20)
}

func TestRollConstraint_Deterministic(t *testing.T) {
	a := RollConstraint(42, "hamlet-1", "hamlet", 0)
	b := RollConstraint(42, "hamlet-1", "hamlet", 0)
	assert.Equal(t, a, b)
}

func TestRollConstraint_HamletNeverDeadly(t *testing.T) {
	for i := 0; i < 200; i++ {
		c := RollConstraint(int32(i), "hamlet-1", "hamlet", i)
		assert.NotEqual(t, Deadly, c.Difficulty, "hamlet rolled deadly at seed %d", i)
	}
}

func TestRollConstraint_RewardWithinDifficultyRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		c := RollConstraint(int32(i), "town-1", "town", i)
		r := RewardGoldRanges[c.Difficulty]
		assert.GreaterOrEqual(t, c.RewardGold, r.Min)
		assert.LessOrEqual(t, c.RewardGold, r.Max)
	}
}

func TestRollConstraint_EnemyTypesSubsetOfAllowed(t *testing.T) {
	for i := 0; i < 200; i++ {
		c := RollConstraint(int32(i), "city-1", "city", i)
		allowed := make(map[string]bool)
		for _, t := range AllowedEnemyTypes[c.Difficulty] {
			allowed[t] = true
		}
		for _, et := range c.EnemyTypes {
			assert.True(t, allowed[et], "enemy type %q not allowed for %s", et, c.Difficulty)
		}
		assert.LessOrEqual(t, len(c.EnemyTypes), 3)
		assert.Equal(t, len(c.EnemyTypes), len(uniqueStrings(c.EnemyTypes)), "enemy types must be distinct")
	}
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func TestBuildSteps_ChoicesTargetLaterSteps(t *testing.T) {
	steps := BuildSteps(9, "quest-a", 5)
	require.Len(t, steps, 5)
	for i, step := range steps {
		if i == len(steps)-1 {
			assert.Empty(t, step.Choices)
			continue
		}
		assert.GreaterOrEqual(t, len(step.Choices), 2)
		assert.LessOrEqual(t, len(step.Choices), 3)
		for _, c := range step.Choices {
			assert.NotEqual(t, step.ID, c.NextStepID)
		}
	}
}

func TestBuildSteps_FailureTriggersCountBounded(t *testing.T) {
	steps := BuildSteps(11, "quest-b", 3)
	for _, step := range steps {
		assert.GreaterOrEqual(t, len(step.FailureTriggers), 1)
		assert.LessOrEqual(t, len(step.FailureTriggers), 2)
	}
}

func TestBuildSteps_SingleStepHasNoChoices(t *testing.T) {
	steps := BuildSteps(1, "quest-c", 1)
	require.Len(t, steps, 1)
	assert.Empty(t, steps[0].Choices)
}

func TestValidateNarrative_RejectsForbiddenKeyword(t *testing.T) {
	c := Constraint{
		Difficulty:        Trivial,
		ForbiddenKeywords: ForbiddenKeywords[Trivial],
		Steps:             []Step{{ID: "step_1"}},
	}
	reply := NarrativeReply{
		Title:             "A Small Favor",
		Description:       "A dragon has been seen nearby.",
		RewardDescription: "5 gold",
		StepNarratives:    map[string]string{"step_1": "go there"},
	}
	err := ValidateNarrative(c, reply)
	assert.Error(t, err)
}

func TestValidateNarrative_RejectsMismatchedGoldAmount(t *testing.T) {
	c := Constraint{
		Difficulty: Easy,
		RewardGold: 50,
		Steps:      []Step{{ID: "step_1"}},
	}
	reply := NarrativeReply{
		Title:             "Trouble",
		Description:       "Deal with the bandit.",
		RewardDescription: "You will receive 999 gold.",
		StepNarratives:    map[string]string{"step_1": "go there"},
	}
	err := ValidateNarrative(c, reply)
	assert.Error(t, err)
}

func TestValidateNarrative_RejectsMissingStepNarrative(t *testing.T) {
	c := Constraint{
		Difficulty: Easy,
		RewardGold: 50,
		Steps:      []Step{{ID: "step_1"}, {ID: "step_2"}},
	}
	reply := NarrativeReply{
		Title:             "Trouble",
		Description:       "Deal with the bandit.",
		RewardDescription: "50 gold.",
		StepNarratives:    map[string]string{"step_1": "go there"},
	}
	err := ValidateNarrative(c, reply)
	assert.Error(t, err)
}

func TestValidateNarrative_AcceptsCleanReply(t *testing.T) {
	c := Constraint{
		Difficulty: Easy,
		RewardGold: 50,
		EnemyTypes: []string{"bandit"},
		Steps:      []Step{{ID: "step_1"}},
	}
	reply := NarrativeReply{
		Title:             "Trouble",
		Description:       "Deal with the bandit troubling the road.",
		RewardDescription: "50 gold, paid on completion.",
		StepNarratives:    map[string]string{"step_1": "Confront the bandit."},
	}
	err := ValidateNarrative(c, reply)
	assert.NoError(t, err)
}

func TestFallbackNarrative_FillsPlaceholders(t *testing.T) {
	c := Constraint{
		Difficulty: Moderate,
		RewardGold: 120,
		EnemyTypes: []string{"cultist"},
		Steps:      []Step{{ID: "step_1"}, {ID: "step_2"}},
	}
	reply := FallbackNarrative(c, "Millbrook")
	assert.Contains(t, reply.Title, "Millbrook")
	assert.Contains(t, reply.Description, "cultist")
	assert.Contains(t, reply.RewardDescription, "120")
	assert.Len(t, reply.StepNarratives, 2)
	err := ValidateNarrative(c, reply)
	assert.NoError(t, err, "fallback narrative must itself pass validation")
}

func TestGenerateQuest_UsesFallbackByDefault(t *testing.T) {
	q := GenerateQuest(3, "hamlet-1", "hamlet", "Oakford", "npc_hamlet-1_0", 0)
	assert.True(t, q.UsedFallback)
	assert.NotEmpty(t, q.Title)
	assert.Equal(t, len(q.Constraint.Steps), q.TotalSteps)
}

type fakeInventory struct {
	gold int
}

func (f *fakeInventory) AddGold(amount int) { f.gold += amount }

type fakeGiverStore struct {
	decremented []string
}

func (f *fakeGiverStore) DecrementQuestGiverRank(npcID string) {
	f.decremented = append(f.decremented, npcID)
}

func TestTable_AcceptAndComplete(t *testing.T) {
	tbl := NewTable()
	q := GenerateQuest(5, "hamlet-1", "hamlet", "Oakford", "npc_hamlet-1_0", 0)
	tbl.Available["hamlet-1"] = []Quest{q}

	accepted, err := tbl.Accept("hamlet-1", q.ID)
	require.Nil(t, err)
	require.NotNil(t, accepted)

	lastStep := accepted.Constraint.Steps[len(accepted.Constraint.Steps)-1].ID
	accepted.CurrentStep = lastStep

	inv := &fakeInventory{}
	givers := &fakeGiverStore{}
	completeErr := tbl.Complete(q.ID, "npc_hamlet-1_0", inv, givers)
	require.Nil(t, completeErr)
	assert.Equal(t, accepted.Constraint.RewardGold, inv.gold)
	assert.Contains(t, givers.decremented, "npc_hamlet-1_0")
	_, stillActive := tbl.Active[q.ID]
	assert.False(t, stillActive)
	_, completed := tbl.Completed[q.ID]
	assert.True(t, completed)
}

func TestTable_AcceptFailsWhenNotAvailable(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Accept("hamlet-1", "nonexistent")
	require.NotNil(t, err)
	assert.Equal(t, "NO_QUEST_AVAILABLE", string(err.Code))
}

func TestTable_AcceptFailsWhenAlreadyActive(t *testing.T) {
	tbl := NewTable()
	q := GenerateQuest(5, "hamlet-1", "hamlet", "Oakford", "npc_hamlet-1_0", 0)
	tbl.Available["hamlet-1"] = []Quest{q}

	_, err := tbl.Accept("hamlet-1", q.ID)
	require.Nil(t, err)

	_, err = tbl.Accept("hamlet-1", q.ID)
	require.NotNil(t, err)
	assert.Equal(t, "QUEST_ALREADY_ACTIVE", string(err.Code))
}

func TestTable_CompleteFailsOnWrongGiver(t *testing.T) {
	tbl := NewTable()
	q := GenerateQuest(5, "hamlet-1", "hamlet", "Oakford", "npc_hamlet-1_0", 0)
	tbl.Available["hamlet-1"] = []Quest{q}
	_, err := tbl.Accept("hamlet-1", q.ID)
	require.Nil(t, err)

	completeErr := tbl.Complete(q.ID, "npc_someone_else", nil, nil)
	require.NotNil(t, completeErr)
	assert.Equal(t, "WRONG_QUEST_GIVER", string(completeErr.Code))
}

func TestTable_CompleteFailsWhenNotOnFinalStep(t *testing.T) {
	tbl := NewTable()
	q := GenerateQuest(9, "town-1", "town", "Redgate", "npc_town-1_0", 0)
	if len(q.Constraint.Steps) < 2 {
		q.Constraint.Steps = append(q.Constraint.Steps, Step{ID: "step_extra"})
	}
	tbl.Available["town-1"] = []Quest{q}
	_, err := tbl.Accept("town-1", q.ID)
	require.Nil(t, err)

	completeErr := tbl.Complete(q.ID, "npc_town-1_0", nil, nil)
	require.NotNil(t, completeErr)
	assert.Equal(t, "INCOMPLETE_QUEST", string(completeErr.Code))
}

func TestTable_AcceptFailsAtActiveLimit(t *testing.T) {
	tbl := NewTable()
	for i := 0; i < MaxActiveQuests; i++ {
		id := "filler_" + string(rune('a'+i))
		tbl.Active[id] = &Quest{ID: id}
	}
	q := GenerateQuest(5, "hamlet-1", "hamlet", "Oakford", "npc_hamlet-1_0", 0)
	tbl.Available["hamlet-1"] = []Quest{q}

	_, err := tbl.Accept("hamlet-1", q.ID)
	require.NotNil(t, err)
	assert.Equal(t, "MAX_ACTIVE_QUESTS_REACHED", string(err.Code))
}
