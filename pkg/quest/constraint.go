package quest

import (
	"strconv"

	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

var difficultyWeights = []rng.Weighted[Difficulty]{
	{Value: Trivial, Weight: 0.15},
	{Value: Easy, Weight: 0.30},
	{Value: Moderate, Weight: 0.35},
	{Value: Hard, Weight: 0.15},
	{Value: Deadly, Weight: 0.05},
}

var rewardItemWeights = []rng.Weighted[int]{
	{Value: 0, Weight: 0.70},
	{Value: 1, Weight: 0.25},
	{Value: 2, Weight: 0.05},
}

var complexityWeights = []rng.Weighted[Complexity]{
	{Value: ComplexitySingle, Weight: 0.25},
	{Value: ComplexityShort, Weight: 0.30},
	{Value: ComplexityMedium, Weight: 0.25},
	{Value: ComplexityDynamic, Weight: 0.20},
}

// stepCountRanges gives the inclusive step-count bound per complexity;
// single always resolves to exactly one step.
var stepCountRanges = map[Complexity]difficultyRange{
	ComplexitySingle:  {1, 1},
	ComplexityShort:   {2, 3},
	ComplexityMedium:  {4, 6},
	ComplexityDynamic: {3, 5},
}

// RollConstraint produces the fully-determined mechanical shell of a quest
// for one settlement, drawing every value in the order §4.6 fixes: weighted
// difficulty (size-modified), reward gold, enemy types, enemy count, travel
// distance, forbidden keywords, reward item count, complexity, step count,
// then the step structure itself.
func RollConstraint(seed int32, settlementID, settlementTier string, questIndex int) Constraint {
	qi := strconv.Itoa(questIndex)

	difficulty := rollDifficulty(seed, settlementID, settlementTier, qi)

	goldRange := RewardGoldRanges[difficulty]
	rewardGold := rng.RandInt(seed, []string{settlementID, qi, "reward_gold"}, goldRange.Min, goldRange.Max)

	enemyTypes := sampleEnemyTypes(seed, settlementID, qi, difficulty)

	countRange := EnemyCountRanges[difficulty]
	enemyCount := rng.RandInt(seed, []string{settlementID, qi, "enemy_count"}, countRange.Min, countRange.Max)

	travelRange := TravelDistanceRanges[difficulty]
	travelDistance := rng.RandInt(seed, []string{settlementID, qi, "travel_distance"}, travelRange.Min, travelRange.Max)

	rewardItemCount := rng.WeightedChoice(rewardItemWeights, seed, []string{settlementID, qi, "reward_items"})

	complexity := rng.WeightedChoice(complexityWeights, seed, []string{settlementID, qi, "complexity"})
	scRange := stepCountRanges[complexity]
	stepCount := rng.RandInt(seed, []string{settlementID, qi, "step_count"}, scRange.Min, scRange.Max)

	c := Constraint{
		SettlementID:      settlementID,
		SettlementTier:    settlementTier,
		Difficulty:        difficulty,
		RewardGold:        rewardGold,
		EnemyTypes:        enemyTypes,
		EnemyCount:        enemyCount,
		TravelDistance:    travelDistance,
		ForbiddenKeywords: ForbiddenKeywords[difficulty],
		RewardItemCount:   rewardItemCount,
		Complexity:        complexity,
	}
	c.Steps = BuildSteps(seed, settlementID+"_"+qi, stepCount)
	return c
}

// maxDifficultyByTier caps the highest difficulty a settlement tier can
// ever roll: a hamlet never needs a lich-tier bounty, regardless of how the
// size modifier happens to weight the roll.
var maxDifficultyByTier = map[string]Difficulty{
	"outpost":    Moderate,
	"hamlet":     Hard,
	"village":    Hard,
	"town":       Deadly,
	"city":       Deadly,
	"metropolis": Deadly,
	"other":      Hard,
}

var difficultyRank = map[Difficulty]int{
	Trivial: 0, Easy: 1, Moderate: 2, Hard: 3, Deadly: 4,
}

func rollDifficulty(seed int32, settlementID, settlementTier, qi string) Difficulty {
	modifier := settlementSizeModifier[settlementTier]
	if modifier == 0 {
		modifier = 1.0
	}
	maxAllowed, ok := maxDifficultyByTier[settlementTier]
	if !ok {
		maxAllowed = Hard
	}
	maxRank := difficultyRank[maxAllowed]

	weighted := make([]rng.Weighted[Difficulty], 0, len(difficultyWeights))
	for _, w := range difficultyWeights {
		if difficultyRank[w.Value] > maxRank {
			continue
		}
		adj := w.Weight
		switch w.Value {
		case Hard, Deadly:
			adj *= modifier
		case Trivial, Easy:
			adj /= modifier
		}
		weighted = append(weighted, rng.Weighted[Difficulty]{Value: w.Value, Weight: adj})
	}
	return rng.WeightedChoice(weighted, seed, []string{settlementID, qi, "difficulty"})
}

func sampleEnemyTypes(seed int32, settlementID, qi string, difficulty Difficulty) []string {
	allowed := AllowedEnemyTypes[difficulty]
	if len(allowed) == 0 {
		return nil
	}
	maxTypes := 3
	if len(allowed) < maxTypes {
		maxTypes = len(allowed)
	}
	n := rng.RandInt(seed, []string{settlementID, qi, "enemy_type_count"}, 1, maxTypes)

	pool := append([]string(nil), allowed...)
	picked := make([]string, 0, n)
	for i := 0; i < n && len(pool) > 0; i++ {
		idx := rng.RandInt(seed, []string{settlementID, qi, "enemy_type", strconv.Itoa(i)}, 0, len(pool)-1)
		picked = append(picked, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return picked
}
