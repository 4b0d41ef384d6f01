package turn

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mdunham726-coder/wyrdreach/pkg/action"
	"github.com/mdunham726-coder/wyrdreach/pkg/apperr"
	"github.com/mdunham726-coder/wyrdreach/pkg/catalogs"
	"github.com/mdunham726-coder/wyrdreach/pkg/conditionals"
	"github.com/mdunham726-coder/wyrdreach/pkg/quest"
	"github.com/mdunham726-coder/wyrdreach/pkg/textfilter"
)

// Narrator is the external narration collaborator, a black-box
// request/response contract per this core's scope.
type Narrator interface {
	Narrate(ctx context.Context, scenePrompt string) (string, error)
}

// QuestNarrator submits a rolled constraint for narrative generation,
// separate from Narrator because its payload and retry policy differ
// (3 attempts, 30s timeout, vs. the turn narrator's single attempt).
type QuestNarrator interface {
	NarrateQuest(ctx context.Context, c quest.Constraint, settlementName string) (quest.NarrativeReply, error)
}

// Orchestrator runs one turn at a time against a session's State. It holds
// no per-call state of its own — every dependency is passed in or injected
// at construction, so one Orchestrator instance serves every session.
type Orchestrator struct {
	Catalogs      *catalogs.Catalogs
	Normalizer    action.Normalizer
	Narrator      Narrator
	QuestNarrator QuestNarrator

	// Hints are narrator flavor lines surfaced alongside the scene context
	// when their ConditionalWhen clause (if any) currently holds.
	Hints []conditionals.ContingencyPrompt
	// Filter scrubs narration text before it's returned to the caller. Left
	// nil, narration passes through unfiltered.
	Filter *textfilter.ProfanityFilter

	turnSeq int
}

// Result is the caller-facing outcome of one turn: the new state (to
// replace the session's live state atomically), the narration text, and
// the accumulated deltas for the transport layer's state-delta blocks.
type Result struct {
	State      *State
	Narrative  string
	Deltas     []DeltaEntry
	TurnID     string
	Systemized bool
}

// DeltaEntry is a path/value mutation record surfaced to the transport
// layer; worldgen/action deltas are folded into this shape.
type DeltaEntry struct {
	Op    string
	Path  string
	Value any
}

// Process runs the full nine-step turn sequence against a clone of live,
// returning the clone as the new state only on success. On any validation
// or application failure, live is returned unchanged alongside the error —
// the copy-on-write barrier means the caller never sees a partial mutation.
func (o *Orchestrator) Process(ctx context.Context, live *State, rawText string, now time.Time) (*Result, *apperr.CodedError) {
	clone, err := live.Clone()
	if err != nil {
		return nil, apperr.New(apperr.InvalidGameState, "failed to clone session state: "+err.Error())
	}

	turnID := o.nextTurnID(now)
	clone.WorldTimeUTC = now
	deltas := []DeltaEntry{{Op: "set", Path: "world.time_utc", Value: now}}

	intent := action.Normalize(ctx, o.Normalizer, rawText, o.gameContext(clone))
	queue := intent.Queue()

	view := view{state: clone}
	validator := o.questValidator(clone)
	ok, _, failure := action.Validate(queue, view, validator)
	if !ok {
		return &Result{State: live}, failure
	}

	for _, a := range queue {
		ds := action.Apply(clone.World, o.Catalogs, &clone.Player.Inventory, a)
		for _, d := range ds {
			deltas = append(deltas, DeltaEntry{Op: string(d.Op), Path: d.Path, Value: d.Value})
			bumpCounters(&clone.Counters, d.Path)
		}
		if err := o.applyQuestAction(ctx, clone, a); err != nil {
			return &Result{State: live}, err
		}
	}

	clone.Digests.InventoryDigest = RecomputeInventoryDigest(clone)
	clone.Counters.StateRev++

	clone.TurnCounter++
	if clone.TurnCounter%10 == 0 {
		runMerchantRegeneration(clone)
	}

	clone.UpdatedAtUTC = now

	narrative := o.narrate(ctx, clone, intent)

	summary := fmt.Sprintf("%s -> %s", rawText, string(intent.Primary.Action))
	clone.History = append(clone.History, HistoryEntry{
		TurnID:       turnID,
		TimestampUTC: now,
		Intent:       string(intent.Primary.Action),
		Summary:      summary,
	})

	return &Result{
		State:     clone,
		Narrative: narrative,
		Deltas:    deltas,
		TurnID:    turnID,
	}, nil
}

// bumpCounters increments the revision counter tied to a mutated path.
// cell_rev and site_rev cover the streaming/reveal writes StreamWindow and
// RevealSites make under world.cells./world.sites.; inventory_rev covers
// the whole-slice rewrite drop makes under player.inventory.
func bumpCounters(c *Counters, path string) {
	switch {
	case strings.HasPrefix(path, "world.cells."):
		c.CellRev++
	case strings.HasPrefix(path, "world.sites."):
		c.SiteRev++
	case path == "player.inventory":
		c.InventoryRev++
	}
}

// nextTurnID builds a turn_id of the form t{ts}_{pid}_{seq}_{rnd} — the pid
// and rnd components are fixed per-process rather than drawn from the
// nondeterministic sources the spec's shape implies, since this core never
// calls time.Now/rand directly; the caller's now and a monotonic sequence
// are the only inputs available here.
func (o *Orchestrator) nextTurnID(now time.Time) string {
	o.turnSeq++
	return "t" + strconv.FormatInt(now.Unix(), 10) + "_0_" + strconv.Itoa(o.turnSeq) + "_0"
}

func (o *Orchestrator) gameContext(s *State) string {
	ctx := fmt.Sprintf("layer=%d;mx=%d;my=%d;lx=%d;ly=%d", s.World.CurrentLayer,
		s.World.Position.MX, s.World.Position.MY, s.World.Position.LX, s.World.Position.LY)
	for _, hint := range conditionals.FilterContingencyPrompts(o.Hints, s) {
		ctx += ";hint=" + hint
	}
	return ctx
}

// narrate requests narration for the turn, falling back to a terse
// deterministic line when no narrator is wired or the call fails — the
// LLM narrator is a black-box collaborator this core never blocks on
// indefinitely.
func (o *Orchestrator) narrate(ctx context.Context, s *State, intent action.Intent) string {
	if o.Narrator == nil {
		return string(intent.Primary.Action)
	}
	narrateCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	text, err := o.Narrator.Narrate(narrateCtx, o.gameContext(s))
	if err != nil {
		return string(intent.Primary.Action)
	}
	if o.Filter != nil {
		text = o.Filter.FilterText(text)
	}
	return text
}
