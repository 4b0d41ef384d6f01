package quest

import (
	"strconv"

	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

var failureTriggerKinds = []FailureTriggerKind{Observability, Innocence, Destruction, MoralChoice}

var consequenceWeights = []rng.Weighted[FailureConsequence]{
	{Value: PermanentFailure, Weight: 0.4},
	{Value: EscalatedDifficulty, Weight: 0.3},
	{Value: RedemptionAvailable, Weight: 0.3},
}

// BuildSteps constructs the steps array for a quest: every step but the
// last gets 2-3 choices each targeting a later step, and every step gets
// 1-2 failure triggers drawn from the four trigger kinds with a weighted
// consequence.
func BuildSteps(seed int32, questSeedKey string, stepCount int) []Step {
	if stepCount < 1 {
		stepCount = 1
	}
	steps := make([]Step, stepCount)
	for i := 0; i < stepCount; i++ {
		id := "step_" + strconv.Itoa(i+1)
		steps[i] = Step{ID: id}

		if i < stepCount-1 {
			steps[i].Choices = buildChoices(seed, questSeedKey, i, stepCount)
		}
		steps[i].FailureTriggers = buildFailureTriggers(seed, questSeedKey, i)
	}
	return steps
}

func buildChoices(seed int32, questSeedKey string, stepIndex, stepCount int) []Choice {
	n := rng.RandInt(seed, []string{questSeedKey, strconv.Itoa(stepIndex), "choice_count"}, 2, 3)
	choices := make([]Choice, n)
	for k := 0; k < n; k++ {
		// Every choice targets a later step, never the current or an
		// earlier one.
		minNext := stepIndex + 1
		nextIdx := rng.RandInt(seed, []string{questSeedKey, strconv.Itoa(stepIndex), "choice", strconv.Itoa(k), "target"}, minNext, stepCount-1)
		choices[k] = Choice{
			ID:         "choice_" + strconv.Itoa(stepIndex+1) + "_" + strconv.Itoa(k+1),
			NextStepID: "step_" + strconv.Itoa(nextIdx+1),
		}
	}
	return choices
}

func buildFailureTriggers(seed int32, questSeedKey string, stepIndex int) []FailureTrigger {
	n := rng.RandInt(seed, []string{questSeedKey, strconv.Itoa(stepIndex), "failure_trigger_count"}, 1, 2)
	triggers := make([]FailureTrigger, n)
	for k := 0; k < n; k++ {
		kind := rng.Choice(failureTriggerKinds, seed, []string{questSeedKey, strconv.Itoa(stepIndex), "failure_kind", strconv.Itoa(k)})
		consequence := rng.WeightedChoice(consequenceWeights, seed, []string{questSeedKey, strconv.Itoa(stepIndex), "failure_consequence", strconv.Itoa(k)})
		triggers[k] = FailureTrigger{Kind: kind, Consequence: consequence}
	}
	return triggers
}
