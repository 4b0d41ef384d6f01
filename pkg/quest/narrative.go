package quest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NarrativeReply is the LLM narrator's proposed quest text, submitted
// against a Constraint for validation before it's accepted.
type NarrativeReply struct {
	Title             string
	Description       string
	RewardDescription string
	StepNarratives    map[string]string
}

// goldMentionRe finds a bare number immediately followed by "gold" in
// reward narrative text, used to catch a mismatched reward amount.
var goldMentionRe = regexp.MustCompile(`(?i)(\d[\d,]*)\s*gold`)

// ValidateNarrative checks reply against constraint c per §4.6: required
// fields present, no forbidden keyword anywhere, no mismatched gold amount
// in the reward description, no enemy type outside the allowed set, and
// every step narrative present for a declared step id.
func ValidateNarrative(c Constraint, reply NarrativeReply) error {
	if strings.TrimSpace(reply.Title) == "" {
		return fmt.Errorf("quest narrative missing title")
	}
	if strings.TrimSpace(reply.Description) == "" {
		return fmt.Errorf("quest narrative missing description")
	}
	if strings.TrimSpace(reply.RewardDescription) == "" {
		return fmt.Errorf("quest narrative missing reward description")
	}

	allText := []string{reply.Title, reply.Description, reply.RewardDescription}
	for _, step := range c.Steps {
		text, ok := reply.StepNarratives[step.ID]
		if !ok || strings.TrimSpace(text) == "" {
			return fmt.Errorf("quest narrative missing step narrative for %s", step.ID)
		}
		allText = append(allText, text)
	}

	for _, text := range allText {
		if kw := firstForbiddenKeyword(text, c.ForbiddenKeywords); kw != "" {
			return fmt.Errorf("quest narrative contains forbidden keyword %q", kw)
		}
		if et := firstDisallowedEnemyType(text, c.Difficulty); et != "" {
			return fmt.Errorf("quest narrative mentions disallowed enemy type %q", et)
		}
	}

	if m := goldMentionRe.FindStringSubmatch(reply.RewardDescription); m != nil {
		mentioned, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && mentioned != c.RewardGold {
			return fmt.Errorf("reward description mentions %d gold, constraint fixed %d", mentioned, c.RewardGold)
		}
	}

	return nil
}

func firstForbiddenKeyword(text string, forbidden []string) string {
	lower := strings.ToLower(text)
	for _, kw := range forbidden {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}

func firstDisallowedEnemyType(text string, difficulty Difficulty) string {
	allowed := make(map[string]bool, len(AllowedEnemyTypes[difficulty]))
	for _, t := range AllowedEnemyTypes[difficulty] {
		allowed[t] = true
	}
	lower := strings.ToLower(text)
	for _, types := range AllowedEnemyTypes {
		for _, t := range types {
			if allowed[t] {
				continue
			}
			if regexp.MustCompile(`\b` + regexp.QuoteMeta(t) + `s?\b`).MatchString(lower) {
				return t
			}
		}
	}
	return ""
}

// fallbackTemplates holds per-difficulty title/description/reward templates
// filled with ${settlement}/${reward_gold}/${antagonist} placeholders, used
// whenever the LLM's reply fails ValidateNarrative.
var fallbackTemplates = map[Difficulty]struct {
	Title       string
	Description string
	Reward      string
}{
	Trivial: {
		Title:       "A Small Favor in ${settlement}",
		Description: "Someone in ${settlement} needs a minor errand run, nothing that should trouble a capable hand.",
		Reward:      "A modest ${reward_gold} gold for the trouble.",
	},
	Easy: {
		Title:       "Trouble Near ${settlement}",
		Description: "A ${antagonist} has been causing a nuisance near ${settlement}; someone ought to deal with it.",
		Reward:      "${reward_gold} gold, paid on completion.",
	},
	Moderate: {
		Title:       "The ${settlement} Contract",
		Description: "${settlement} has put out a standing contract against a ${antagonist} that's grown bolder by the week.",
		Reward:      "A contracted ${reward_gold} gold.",
	},
	Hard: {
		Title:       "A Grave Matter for ${settlement}",
		Description: "A ${antagonist} has made ${settlement} its hunting ground, and the watch is out of its depth.",
		Reward:      "${reward_gold} gold, and the settlement's gratitude.",
	},
	Deadly: {
		Title:       "${settlement}'s Last Resort",
		Description: "Only a fool or a desperate ${settlement} would post a bounty on a ${antagonist} this size.",
		Reward:      "${reward_gold} gold — if you live to collect it.",
	},
}

// FallbackNarrative fills the deterministic template for constraint c,
// substituting the settlement's display name and reusing its first rolled
// enemy type as the antagonist. Step narratives are filled with a terse,
// generic line naming the step number; no step-specific prose is invented.
func FallbackNarrative(c Constraint, settlementName string) NarrativeReply {
	tmpl, ok := fallbackTemplates[c.Difficulty]
	if !ok {
		tmpl = fallbackTemplates[Moderate]
	}
	antagonist := "threat"
	if len(c.EnemyTypes) > 0 {
		antagonist = c.EnemyTypes[0]
	}

	fill := func(s string) string {
		s = strings.ReplaceAll(s, "${settlement}", settlementName)
		s = strings.ReplaceAll(s, "${reward_gold}", strconv.Itoa(c.RewardGold))
		s = strings.ReplaceAll(s, "${antagonist}", antagonist)
		return s
	}

	steps := make(map[string]string, len(c.Steps))
	for i, step := range c.Steps {
		steps[step.ID] = fmt.Sprintf("Step %d: make progress against the %s.", i+1, antagonist)
	}

	return NarrativeReply{
		Title:             fill(tmpl.Title),
		Description:       fill(tmpl.Description),
		RewardDescription: fill(tmpl.Reward),
		StepNarratives:    steps,
	}
}
