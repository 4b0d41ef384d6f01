package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/worldgen"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"n", "north", true},
		{"North", "north", true},
		{"sw", "", false},
		{"d", "down", true},
	}
	for _, tc := range tests {
		got, ok := Canonicalize(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestScore_ExactNameMatch(t *testing.T) {
	s := Score("Sword", "sword", nil, 0)
	assert.Equal(t, 10, s)
}

func TestScore_AliasMatch(t *testing.T) {
	s := Score("blade", "sword", []string{"blade", "longsword"}, 0)
	assert.Equal(t, 6, s)
}

func TestScore_FarMatchPenalized(t *testing.T) {
	s := Score("zzzzzzzzzz", "sword", nil, 0)
	assert.Equal(t, -2, s)
}

func TestResolveInventory_AcceptsClearWinner(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "sword", Aliases: []string{"sword"}},
		{ID: "2", Name: "shield"},
	}
	got, ok := ResolveInventory("sword", items)
	require.True(t, ok)
	assert.Equal(t, "1", got.ID)
}

func TestResolveInventory_RejectsAmbiguous(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "torch", Aliases: []string{"light"}},
		{ID: "2", Name: "torch2", Aliases: []string{"light"}},
	}
	_, ok := ResolveInventory("light", items)
	assert.False(t, ok)
}

func TestRegexFallback(t *testing.T) {
	tests := []struct {
		text       string
		wantKind   Kind
		wantTarget string
	}{
		{"look", KindLook, ""},
		{"take torch", KindTake, "torch"},
		{"drop sword", KindDrop, "sword"},
		{"move north", KindMove, ""},
		{"north", KindMove, ""},
		{"gibberish utterance", "noop", ""},
	}
	for _, tc := range tests {
		intent := RegexFallback(tc.text)
		assert.Equal(t, tc.wantKind, intent.Primary.Action, tc.text)
		if tc.wantTarget != "" {
			assert.Equal(t, tc.wantTarget, intent.Primary.Target, tc.text)
		}
	}
}

type fakeView struct {
	cellItems []Item
	invItems  []Item
	npcs      []NPCRef
}

func (f fakeView) CellItems() []Item      { return f.cellItems }
func (f fakeView) InventoryItems() []Item { return f.invItems }
func (f fakeView) PresentNPCs() []NPCRef  { return f.npcs }

func TestValidate_MoveInvalidDirection(t *testing.T) {
	queue := []Action{{Kind: KindMove, Dir: "sideways"}}
	ok, _, failure := Validate(queue, fakeView{}, nil)
	assert.False(t, ok)
	require.NotNil(t, failure)
	assert.Equal(t, apperr.InvalidDirection, failure.Code)
}

func TestValidate_TakeNotInCell(t *testing.T) {
	queue := []Action{{Kind: KindTake, Target: "torch"}}
	ok, _, failure := Validate(queue, fakeView{}, nil)
	assert.False(t, ok)
	assert.Equal(t, apperr.TargetNotFoundInCell, failure.Code)
}

func TestValidate_TakeFoundInCell(t *testing.T) {
	queue := []Action{{Kind: KindTake, Target: "torch"}}
	view := fakeView{cellItems: []Item{{Name: "torch"}}}
	ok, results, failure := Validate(queue, view, nil)
	assert.True(t, ok)
	assert.Nil(t, failure)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestValidate_DropNotInInventory(t *testing.T) {
	queue := []Action{{Kind: KindDrop, Target: "torch"}}
	ok, _, failure := Validate(queue, fakeView{}, nil)
	assert.False(t, ok)
	assert.Equal(t, apperr.TargetNotInInventory, failure.Code)
}

func TestValidate_TalkNPCNotPresent(t *testing.T) {
	queue := []Action{{Kind: KindTalk, Target: "Bob"}}
	ok, _, failure := Validate(queue, fakeView{}, nil)
	assert.False(t, ok)
	assert.Equal(t, apperr.NPCNotPresent, failure.Code)
}

func TestValidate_AlwaysAllowGroup(t *testing.T) {
	for _, k := range []Kind{KindSit, KindStand, KindWait, KindListen, KindLook, KindInventory, KindHelp} {
		ok, results, failure := Validate([]Action{{Kind: k}}, fakeView{}, nil)
		assert.True(t, ok, k)
		assert.Nil(t, failure, k)
		assert.True(t, results[0].Valid, k)
	}
}

func TestValidate_ShallowAllowNoted(t *testing.T) {
	ok, results, failure := Validate([]Action{{Kind: KindAttack}}, fakeView{}, nil)
	assert.True(t, ok)
	assert.Nil(t, failure)
	assert.NotEmpty(t, results[0].Note)
}

func TestValidate_QuestDelegation(t *testing.T) {
	called := false
	validator := func(kind Kind, target string) ValidationResult {
		called = true
		assert.Equal(t, KindAcceptQuest, kind)
		return ValidationResult{Valid: true}
	}
	ok, _, failure := Validate([]Action{{Kind: KindAcceptQuest, Target: "q1"}}, fakeView{}, validator)
	assert.True(t, ok)
	assert.Nil(t, failure)
	assert.True(t, called)
}

type fakeParser struct {
	intent Intent
	err    error
}

func (f fakeParser) Parse(ctx context.Context, userText, gameContext string) (Intent, error) {
	return f.intent, f.err
}

type fakeCache struct {
	store map[string]Intent
}

func (f *fakeCache) Get(key string) (Intent, bool) {
	v, ok := f.store[key]
	return v, ok
}
func (f *fakeCache) Set(key string, intent Intent, ttl time.Duration) {
	f.store[key] = intent
}

func TestNormalize_UsesParserWhenConfident(t *testing.T) {
	parser := fakeParser{intent: Intent{Primary: PrimaryAction{Action: KindLook}, Confidence: 0.9}}
	n := Normalizer{Parser: parser, Cache: &fakeCache{store: map[string]Intent{}}}
	got := Normalize(context.Background(), n, "look around", "{}")
	assert.Equal(t, KindLook, got.Primary.Action)
}

func TestNormalize_FallsBackOnLowConfidence(t *testing.T) {
	parser := fakeParser{intent: Intent{Primary: PrimaryAction{Action: KindLook}, Confidence: 0.1}}
	n := Normalizer{Parser: parser}
	got := Normalize(context.Background(), n, "take torch", "{}")
	assert.Equal(t, KindTake, got.Primary.Action)
}

func TestNormalize_FallsBackOnParserError(t *testing.T) {
	parser := fakeParser{err: errors.New("llm unavailable")}
	n := Normalizer{Parser: parser}
	got := Normalize(context.Background(), n, "drop sword", "{}")
	assert.Equal(t, KindDrop, got.Primary.Action)
}

func TestNormalize_FallsBackOnNoPrimaryAction(t *testing.T) {
	parser := fakeParser{intent: Intent{Confidence: 0.9}}
	n := Normalizer{Parser: parser}
	got := Normalize(context.Background(), n, "look", "{}")
	assert.Equal(t, KindLook, got.Primary.Action)
}

func TestNormalize_ReturnsCachedResult(t *testing.T) {
	cache := &fakeCache{store: map[string]Intent{}}
	cache.Set(cacheKey("look", "{}"), Intent{Primary: PrimaryAction{Action: KindLook}, Confidence: 1}, cacheTTL)
	n := Normalizer{Cache: cache}
	got := Normalize(context.Background(), n, "look", "{}")
	assert.Equal(t, KindLook, got.Primary.Action)
}

func TestApply_MoveUpdatesPositionAndStreams(t *testing.T) {
	cat := catalogs.Load()
	w := worldgen.New(5, "a quiet village", cat)
	w.Position = worldgen.Position{MX: 4, MY: 4, LX: 5, LY: 5}

	deltas := Apply(w, cat, nil, Action{Kind: KindMove, Dir: "n"})

	assert.NotEmpty(t, deltas)
	assert.Equal(t, 4, w.Position.LY)
}

func TestApply_DropSplicesInventory(t *testing.T) {
	inv := &Inventory{Items: []Item{{ID: "1", Name: "torch", Aliases: []string{"torch"}}, {ID: "2", Name: "rope"}}}

	deltas := Apply(nil, nil, inv, Action{Kind: KindDrop, Target: "torch"})

	assert.NotEmpty(t, deltas)
	assert.Len(t, inv.Items, 1)
	assert.Equal(t, "rope", inv.Items[0].Name)
}

func TestApply_DropMissingItemIsNoop(t *testing.T) {
	inv := &Inventory{Items: []Item{{ID: "1", Name: "torch"}}}
	deltas := Apply(nil, nil, inv, Action{Kind: KindDrop, Target: "sword"})
	assert.Empty(t, deltas)
	assert.Len(t, inv.Items, 1)
}
