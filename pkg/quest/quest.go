// Package quest implements the constraint engine: deterministic quest
// availability, reward/enemy/travel rolls, branching step structure, and
// narrative validation with a template fallback, per the mechanical
// contract the LLM narrator's quest text must satisfy.
package quest

// Difficulty is one of the five quest difficulty tiers.
type Difficulty string

const (
	Trivial  Difficulty = "trivial"
	Easy     Difficulty = "easy"
	Moderate Difficulty = "moderate"
	Hard     Difficulty = "hard"
	Deadly   Difficulty = "deadly"
)

// Complexity names the step-count shape a quest's structure follows.
type Complexity string

const (
	ComplexitySingle  Complexity = "single"
	ComplexityShort   Complexity = "short"
	ComplexityMedium  Complexity = "medium"
	ComplexityDynamic Complexity = "dynamic"
)

// FailureTriggerKind is one of the four ways a quest step can fail.
type FailureTriggerKind string

const (
	Observability FailureTriggerKind = "observability"
	Innocence     FailureTriggerKind = "innocence"
	Destruction   FailureTriggerKind = "destruction"
	MoralChoice   FailureTriggerKind = "moral_choice"
)

// FailureConsequence is what happens to the quest when a trigger fires.
type FailureConsequence string

const (
	PermanentFailure    FailureConsequence = "permanent_failure"
	EscalatedDifficulty FailureConsequence = "escalated_difficulty"
	RedemptionAvailable FailureConsequence = "redemption_available"
)

// FailureTrigger is one way a step can go wrong.
type FailureTrigger struct {
	Kind        FailureTriggerKind
	Consequence FailureConsequence
}

// Choice is one branch out of a non-final step.
type Choice struct {
	ID         string
	NextStepID string
}

// Step is one node in a quest's structure.
type Step struct {
	ID              string
	Choices         []Choice
	FailureTriggers []FailureTrigger
}

// Constraint is the fully-determined mechanical shell of a quest, computed
// before any narrative text exists.
type Constraint struct {
	SettlementID      string
	SettlementTier    string
	Difficulty        Difficulty
	RewardGold        int
	EnemyTypes        []string
	EnemyCount        int
	TravelDistance    int
	ForbiddenKeywords []string
	RewardItemCount   int
	Complexity        Complexity
	Steps             []Step
}

// Quest is a constraint paired with its narrative and lifecycle state.
type Quest struct {
	ID                string
	GiverNPCID        string
	SettlementID      string
	Constraint        Constraint
	Title             string
	Description       string
	RewardDescription string
	StepNarratives    map[string]string
	CurrentStep       string
	TotalSteps        int
	UsedFallback      bool
}

// difficultyRange is an inclusive [min,max] integer range.
type difficultyRange struct {
	Min, Max int
}

// RewardGoldRanges is per-difficulty gold reward bounds.
var RewardGoldRanges = map[Difficulty]difficultyRange{
	Trivial:  {5, 25},
	Easy:     {25, 75},
	Moderate: {75, 250},
	Hard:     {250, 750},
	Deadly:   {750, 2000},
}

// EnemyCountRanges is per-difficulty enemy count bounds.
var EnemyCountRanges = map[Difficulty]difficultyRange{
	Trivial:  {0, 1},
	Easy:     {0, 2},
	Moderate: {1, 4},
	Hard:     {2, 6},
	Deadly:   {3, 10},
}

// TravelDistanceRanges is per-difficulty travel distance bounds.
var TravelDistanceRanges = map[Difficulty]difficultyRange{
	Trivial:  {0, 1},
	Easy:     {1, 3},
	Moderate: {2, 5},
	Hard:     {3, 8},
	Deadly:   {5, 12},
}

// AllowedEnemyTypes restricts which enemy types a difficulty may roll.
var AllowedEnemyTypes = map[Difficulty][]string{
	Trivial:  {"rat", "stray dog", "pickpocket"},
	Easy:     {"rat", "stray dog", "pickpocket", "bandit", "wolf"},
	Moderate: {"bandit", "wolf", "cultist", "bog thing", "highwayman"},
	Hard:     {"cultist", "ogre", "highwayman", "wraith", "bog thing"},
	Deadly:   {"wraith", "ogre", "lich", "wyrm", "demon"},
}

// ForbiddenKeywords restricts which words a difficulty's narrative text may
// never contain, per §4.6 — the low tiers exclude overblown stakes.
var ForbiddenKeywords = map[Difficulty][]string{
	Trivial:  {"dragon", "god", "apocalypse", "empire", "demon"},
	Easy:     {"dragon", "god", "apocalypse", "empire", "demon"},
	Moderate: {"god", "apocalypse", "empire"},
	Hard:     {"god", "apocalypse"},
	Deadly:   {},
}

// AvailabilityRanges is the per-settlement-tier quest availability
// probability range, drawn from uniformly before a quest is offered at all.
var AvailabilityRanges = map[string]difficultyRange100{
	"hamlet":  {10, 20},
	"village": {30, 40},
	"town":    {50, 70},
	"city":    {80, 100},
}

// difficultyRange100 mirrors difficultyRange but reads as a percentage,
// keeping §4.6's [0.10,0.20]-style ranges legible as integers.
type difficultyRange100 struct {
	MinPct, MaxPct int
}

// settlementSizeModifier nudges the difficulty weighting toward harder
// tiers for larger settlements.
var settlementSizeModifier = map[string]float64{
	"outpost":    0.8,
	"hamlet":     0.9,
	"village":    1.0,
	"town":       1.15,
	"city":       1.3,
	"metropolis": 1.5,
	"other":      1.0,
}

// MaxActiveQuests bounds how many quests one session may have active at once.
const MaxActiveQuests = 10
