package quest

import "strconv"

// GenerateQuest rolls a full constraint for one settlement and seeds it
// with the deterministic fallback narrative. The turn orchestrator may
// submit the constraint to the LLM narrator afterward and, if
// ValidateNarrative accepts the reply, call ApplyNarrative to replace the
// fallback text — never the other way around.
func GenerateQuest(seed int32, settlementID, settlementTier, settlementName, giverNPCID string, questIndex int) Quest {
	c := RollConstraint(seed, settlementID, settlementTier, questIndex)
	narrative := FallbackNarrative(c, settlementName)
	return Quest{
		ID:                settlementID + "_quest_" + strconv.Itoa(questIndex),
		GiverNPCID:        giverNPCID,
		SettlementID:      settlementID,
		Constraint:        c,
		Title:             narrative.Title,
		Description:       narrative.Description,
		RewardDescription: narrative.RewardDescription,
		StepNarratives:    narrative.StepNarratives,
		TotalSteps:        len(c.Steps),
		UsedFallback:      true,
	}
}

// ApplyNarrative replaces a quest's narrative text with a validated LLM
// reply, clearing the fallback flag.
func ApplyNarrative(q *Quest, reply NarrativeReply) {
	q.Title = reply.Title
	q.Description = reply.Description
	q.RewardDescription = reply.RewardDescription
	q.StepNarratives = reply.StepNarratives
	q.UsedFallback = false
}
