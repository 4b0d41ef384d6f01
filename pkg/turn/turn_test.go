package turn

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/quest"
)

func fixtureState(t *testing.T) *State {
	t.Helper()
	cat := catalogs.Load()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewState("sess-1", "player-1", 42, "a bustling city market", cat, now)
}

func TestState_Clone_IndependentCopy(t *testing.T) {
	s := fixtureState(t)
	s.Player.Inventory.Add(action.Item{ID: "torch", Name: "torch"})

	clone, err := s.Clone()
	require.NoError(t, err)

	clone.Player.Inventory.Items[0].Name = "broken torch"
	clone.World.Position.LX = 99

	assert.Equal(t, "torch", s.Player.Inventory.Items[0].Name)
	assert.NotEqual(t, 99, s.World.Position.LX)
}

func TestHexDigestStable_DeterministicForSameWorld(t *testing.T) {
	s := fixtureState(t)
	a := HexDigestStable(s)
	b := HexDigestStable(s)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestHexDigestStable_DiffersAcrossSeeds(t *testing.T) {
	s1 := fixtureState(t)
	s2 := fixtureState(t)
	s2.World.Seed = 43
	assert.NotEqual(t, HexDigestStable(s1), HexDigestStable(s2))
}

func TestHexDigestState_StableAcrossTimeOnlyMutation(t *testing.T) {
	s := fixtureState(t)
	before := HexDigestState(s)
	s.WorldTimeUTC = s.WorldTimeUTC.Add(time.Hour)
	after := HexDigestState(s)
	assert.Equal(t, before, after)
}

func TestHexDigestState_ChangesOnPositionMutation(t *testing.T) {
	s := fixtureState(t)
	before := HexDigestState(s)
	s.World.Position.LX++
	after := HexDigestState(s)
	assert.NotEqual(t, before, after)
}

func TestHexDigestState_ChangesOnInventoryMutation(t *testing.T) {
	s := fixtureState(t)
	before := HexDigestState(s)
	s.Player.Inventory.Add(action.Item{ID: "coin", Name: "coin"})
	after := HexDigestState(s)
	assert.NotEqual(t, before, after)
}

func TestRecomputeInventoryDigest_DeterministicRegardlessOfOrder(t *testing.T) {
	s1 := fixtureState(t)
	s1.Player.Inventory.Items = []action.Item{
		{ID: "a", Name: "torch"},
		{ID: "b", Name: "rope"},
	}
	s2 := fixtureState(t)
	s2.Player.Inventory.Items = []action.Item{
		{ID: "b", Name: "rope"},
		{ID: "a", Name: "torch"},
	}
	assert.Equal(t, RecomputeInventoryDigest(s1), RecomputeInventoryDigest(s2))
}

func TestOrchestrator_Process_MoveUpdatesStateAndHistory(t *testing.T) {
	s := fixtureState(t)
	o := &Orchestrator{Catalogs: catalogs.Load()}
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	res, cerr := o.Process(context.Background(), s, "go north", now)
	require.Nil(t, cerr)
	require.NotNil(t, res)

	assert.Equal(t, 1, res.State.TurnCounter)
	assert.Len(t, res.State.History, 1)
	assert.Equal(t, string(action.KindMove), res.State.History[0].Intent)
	assert.NotEmpty(t, res.State.Digests.InventoryDigest)
	assert.Greater(t, res.State.Counters.CellRev, 0)
	assert.Equal(t, 1, res.State.Counters.StateRev)
	// live (pre-turn) state must be untouched by the clone's mutation.
	assert.Equal(t, 0, s.TurnCounter)
}

func TestOrchestrator_Process_InvalidDirectionLeavesStateUnchanged(t *testing.T) {
	s := fixtureState(t)
	o := &Orchestrator{Catalogs: catalogs.Load()}
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	res, cerr := o.Process(context.Background(), s, "go sideways", now)
	require.NotNil(t, cerr)
	assert.Equal(t, "INVALID_DIRECTION", string(cerr.Code))
	assert.Same(t, s, res.State)
	assert.Equal(t, 0, res.State.TurnCounter)
}

func TestOrchestrator_Process_DropSplicesInventory(t *testing.T) {
	s := fixtureState(t)
	s.Player.Inventory.Add(action.Item{ID: "torch", Name: "torch", Aliases: []string{"torch"}})
	o := &Orchestrator{Catalogs: catalogs.Load()}
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	res, cerr := o.Process(context.Background(), s, "drop torch", now)
	require.Nil(t, cerr)
	assert.Empty(t, res.State.Player.Inventory.Items)
	require.Len(t, res.Deltas, 2)
	assert.Equal(t, "world.time_utc", res.Deltas[0].Path)
	assert.Equal(t, "player.inventory", res.Deltas[1].Path)
	assert.Equal(t, 1, res.State.Counters.InventoryRev)
}

func TestOrchestrator_Process_MerchantRegenerationEveryTenTurns(t *testing.T) {
	s := fixtureState(t)
	o := &Orchestrator{Catalogs: catalogs.Load()}
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	live := s
	for i := 0; i < 10; i++ {
		res, cerr := o.Process(context.Background(), live, "look", now)
		require.Nil(t, cerr)
		live = res.State
	}
	assert.Equal(t, 10, live.TurnCounter)
	assert.Equal(t, 1, live.Counters.MerchantStateRev)
}

func TestOrchestrator_Process_AcceptAndCompleteQuest(t *testing.T) {
	s := fixtureState(t)
	s.Quests.Available["settlement-1"] = []quest.Quest{{
		ID:         "q1",
		GiverNPCID: "npc-giver",
		Constraint: quest.Constraint{
			RewardGold: 50,
			Steps:      []quest.Step{{ID: "step-1"}},
		},
	}}
	o := &Orchestrator{Catalogs: catalogs.Load()}
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)

	acceptIntent := action.Intent{Primary: action.PrimaryAction{Action: action.KindAcceptQuest, Target: "q1"}}
	o.Normalizer = action.Normalizer{Parser: stubParser{intent: acceptIntent}}
	res, cerr := o.Process(context.Background(), s, "accept the quest", now)
	require.Nil(t, cerr)
	_, active := res.State.Quests.Active["q1"]
	assert.True(t, active)

	completeIntent := action.Intent{Primary: action.PrimaryAction{
		Action: action.KindCompleteQuest, Target: "q1", Dir: "npc-giver",
	}}
	o.Normalizer = action.Normalizer{Parser: stubParser{intent: completeIntent}}
	res2, cerr2 := o.Process(context.Background(), res.State, "turn in the quest", now)
	require.Nil(t, cerr2)
	_, completed := res2.State.Quests.Completed["q1"]
	assert.True(t, completed)
}

// stubParser feeds a fixed Intent back to Normalize with full confidence,
// standing in for the external LLM parser this pipeline never calls in
// tests.
type stubParser struct {
	intent action.Intent
}

func (p stubParser) Parse(ctx context.Context, userText, gameContext string) (action.Intent, error) {
	p.intent.Confidence = 1
	return p.intent, nil
}

